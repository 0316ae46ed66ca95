// Package report renders sampled metrics as the one-line status text and as
// a structured summary.
package report

import (
	"fmt"
	"strings"

	"github.com/jguan/hoststat/pkg/sample"
)

// Separator joins segments. The line also starts with one Separator, which
// status bars consuming the output rely on.
const Separator = " "

const bytesPerGB = 1024 * 1024 * 1024

// Format renders the available results in request order. Kinds without an
// available result are skipped; with nothing to show the line is just the
// leading Separator.
func Format(req sample.Request, results sample.Results) string {
	segments := make([]string, 0, req.Len())
	for _, kind := range req.Kinds() {
		res, ok := results.Available(kind)
		if !ok {
			continue
		}
		if seg, ok := Segment(res); ok {
			segments = append(segments, seg)
		}
	}
	return Separator + strings.Join(segments, Separator)
}

// Segment renders one result. It reports false when the result is
// unavailable or its value does not match its kind.
func Segment(res sample.Result) (string, bool) {
	if !res.Available() {
		return "", false
	}

	switch v := res.Value.(type) {
	case sample.PerCPU:
		if res.Kind != sample.KindPerCPU || len(v) == 0 {
			return "", false
		}
		cores := make([]string, len(v))
		for i, p := range v {
			cores[i] = fmt.Sprintf("%.1f%%", p)
		}
		return strings.Join(cores, Separator), true

	case sample.Percent:
		if res.Kind != sample.KindAvgCPU {
			return "", false
		}
		return fmt.Sprintf("avgCPU: %.2f%%", float64(v)), true

	case sample.MemoryUsage:
		switch res.Kind {
		case sample.KindVirtualMemory:
			return fmt.Sprintf("MEM: %.2f/%.2f GB", gigabytes(v.Used+v.Shared), gigabytes(v.Total)), true
		case sample.KindSwapMemory:
			return fmt.Sprintf("Swap: %.2f/%.2f GB", gigabytes(v.Used), gigabytes(v.Total)), true
		}

	case sample.Throughput:
		switch res.Kind {
		case sample.KindDiskIO:
			return fmt.Sprintf("IO: %.2f %.2f kB/s", v.UploadKBps, v.DownloadKBps), true
		case sample.KindNetIO:
			return fmt.Sprintf("NET: %.2f %.2f kB/s", v.UploadKBps, v.DownloadKBps), true
		}
	}

	return "", false
}

func gigabytes(b uint64) float64 {
	return float64(b) / bytesPerGB
}
