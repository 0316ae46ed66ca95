package report

import "github.com/jguan/hoststat/pkg/sample"

// Summary is the structured form of a report, used for json and yaml
// output. Unlike the text line it lists unavailable metrics too.
type Summary struct {
	Line    string          `json:"line" yaml:"line"`
	Metrics []MetricSummary `json:"metrics" yaml:"metrics"`
}

type MetricSummary struct {
	Metric    string       `json:"metric" yaml:"metric"`
	Flag      string       `json:"flag" yaml:"flag"`
	Available bool         `json:"available" yaml:"available"`
	Text      string       `json:"text,omitempty" yaml:"text,omitempty"`
	Value     sample.Value `json:"value,omitempty" yaml:"value,omitempty"`
	Error     string       `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorCode string       `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// Summarize lists every requested metric in request order.
func Summarize(req sample.Request, results sample.Results) Summary {
	s := Summary{
		Line:    Format(req, results),
		Metrics: make([]MetricSummary, 0, req.Len()),
	}

	for _, kind := range req.Kinds() {
		m := MetricSummary{Metric: kind.String(), Flag: kind.Flag()}

		res, ok := results[kind]
		switch {
		case !ok:
			m.Error = "not sampled"
		case !res.Available():
			m.Error = "no value"
			if res.Err != nil {
				m.Error = res.Err.Error()
				m.ErrorCode = string(sample.CodeOf(res.Err))
			}
		default:
			text, rendered := Segment(res)
			m.Available = rendered
			m.Text = text
			m.Value = res.Value
		}

		s.Metrics = append(s.Metrics, m)
	}

	return s
}
