package sample

// Selection records, per Kind, whether the caller asked for it.
type Selection map[Kind]bool

// Request is the ordered, duplicate-free list of metrics to sample.
type Request struct {
	kinds []Kind
}

// NewRequest keeps exactly the selected kinds, in canonical order.
func NewRequest(sel Selection) Request {
	kinds := make([]Kind, 0, len(sel))
	for _, k := range AllKinds() {
		if sel[k] {
			kinds = append(kinds, k)
		}
	}
	return Request{kinds: kinds}
}

// Kinds returns a copy of the requested kinds in report order.
func (r Request) Kinds() []Kind {
	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

func (r Request) Len() int { return len(r.kinds) }

func (r Request) Empty() bool { return len(r.kinds) == 0 }

// InstantKinds returns the requested kinds that need a single read.
func (r Request) InstantKinds() []Kind {
	return r.filter(func(k Kind) bool { return !k.IsRate() })
}

// RateKinds returns the requested kinds that need the shared wait.
func (r Request) RateKinds() []Kind {
	return r.filter(Kind.IsRate)
}

func (r Request) filter(keep func(Kind) bool) []Kind {
	var out []Kind
	for _, k := range r.kinds {
		if keep(k) {
			out = append(out, k)
		}
	}
	return out
}
