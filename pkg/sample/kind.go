// Package sample decides how each host metric is read, runs the single
// shared wait needed by counter-based metrics, and collects one Result per
// requested metric.
package sample

import "fmt"

// Kind identifies one reportable metric. The declaration order is the
// canonical report order.
type Kind int

const (
	KindPerCPU Kind = iota
	KindAvgCPU
	KindVirtualMemory
	KindSwapMemory
	KindDiskIO
	KindNetIO
)

var kindNames = [...]string{
	KindPerCPU:        "per_cpu",
	KindAvgCPU:        "avg_cpu",
	KindVirtualMemory: "memory",
	KindSwapMemory:    "swap",
	KindDiskIO:        "disk_io",
	KindNetIO:         "net_io",
}

var kindFlags = [...]string{
	KindPerCPU:        "p",
	KindAvgCPU:        "a",
	KindVirtualMemory: "m",
	KindSwapMemory:    "w",
	KindDiskIO:        "i",
	KindNetIO:         "k",
}

// AllKinds returns every Kind in canonical order.
func AllKinds() []Kind {
	return []Kind{KindPerCPU, KindAvgCPU, KindVirtualMemory, KindSwapMemory, KindDiskIO, KindNetIO}
}

func (k Kind) Valid() bool {
	return k >= KindPerCPU && k <= KindNetIO
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Flag returns the one-letter command line flag that selects k.
func (k Kind) Flag() string {
	if !k.Valid() {
		return ""
	}
	return kindFlags[k]
}

// IsRate reports whether k is derived from two counter reads separated by
// the shared wait.
func (k Kind) IsRate() bool {
	return k == KindDiskIO || k == KindNetIO
}
