package sample

// Value is the native payload of a successful sample. It is one of
// PerCPU, Percent, MemoryUsage or Throughput.
type Value interface {
	isValue()
}

// PerCPU holds the load of each core, in percent.
type PerCPU []float64

// Percent is an aggregate load, in percent.
type Percent float64

// MemoryUsage is in bytes. Shared is always zero for swap.
type MemoryUsage struct {
	Used   uint64 `json:"used_bytes" yaml:"used_bytes"`
	Shared uint64 `json:"shared_bytes" yaml:"shared_bytes"`
	Total  uint64 `json:"total_bytes" yaml:"total_bytes"`
}

// Throughput is in kilobytes per second.
type Throughput struct {
	UploadKBps   float64 `json:"upload_kbps" yaml:"upload_kbps"`
	DownloadKBps float64 `json:"download_kbps" yaml:"download_kbps"`
}

func (PerCPU) isValue()      {}
func (Percent) isValue()     {}
func (MemoryUsage) isValue() {}
func (Throughput) isValue()  {}

// Result is either a sampled Value or an unavailable marker carrying the
// reason in Err.
type Result struct {
	Kind  Kind
	Value Value
	Err   error
}

func Sampled(kind Kind, v Value) Result {
	return Result{Kind: kind, Value: v}
}

func Unavailable(kind Kind, err error) Result {
	if err == nil {
		err = newError(ErrCodeNoData, kind, "no value", nil)
	}
	return Result{Kind: kind, Err: err}
}

func (r Result) Available() bool {
	return r.Err == nil && r.Value != nil
}

// Results maps each sampled Kind to its outcome.
type Results map[Kind]Result

// Available returns the result for kind only if it holds a value.
func (r Results) Available(kind Kind) (Result, bool) {
	res, ok := r[kind]
	if !ok || !res.Available() {
		return Result{}, false
	}
	return res, true
}
