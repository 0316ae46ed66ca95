package sample

import (
	"sort"
	"strings"
)

// Counter is a pair of cumulative byte counters. Up is disk read or
// network sent; Down is disk written or network received.
type Counter struct {
	Up   uint64
	Down uint64
}

// CounterSnapshot maps a device or interface name to its counters at one
// instant.
type CounterSnapshot map[string]Counter

// Delta returns next - prev per field. A field that went backwards means
// the counter was reset or wrapped.
func Delta(prev, next Counter) (Counter, bool) {
	if next.Up < prev.Up || next.Down < prev.Down {
		return Counter{}, false
	}
	return Counter{Up: next.Up - prev.Up, Down: next.Down - prev.Down}, true
}

// virtualPrefixes name block devices that sit on top of, or beside, the
// physical disks. Their traffic is either already counted on a disk
// (dm-*, md*) or never reaches one (loop*, ram*, zram*).
var virtualPrefixes = []string{"loop", "ram", "zram", "dm-", "md"}

// wholeDevices keeps the physical disks of snap, sorted by name. Partitions
// whose parent disk is also reported and virtual devices are dropped, so
// summing the result counts every byte once.
func wholeDevices(snap CounterSnapshot) []string {
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		if isVirtualDevice(name) || isPartition(name, snap) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func isVirtualDevice(name string) bool {
	for _, prefix := range virtualPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// isPartition follows kernel naming: a disk whose name ends in a letter
// takes a plain number (sda1), one that ends in a digit takes p and a
// number (nvme0n1p1, mmcblk0p2).
func isPartition(name string, snap CounterSnapshot) bool {
	for parent := range snap {
		if parent == name || !strings.HasPrefix(name, parent) {
			continue
		}
		suffix := name[len(parent):]
		if endsInDigit(parent) {
			rest, ok := strings.CutPrefix(suffix, "p")
			if ok && allDigits(rest) {
				return true
			}
			continue
		}
		if allDigits(suffix) {
			return true
		}
	}
	return false
}

func endsInDigit(s string) bool {
	return s != "" && isDigit(s[len(s)-1])
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
