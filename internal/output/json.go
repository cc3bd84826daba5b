package output

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter serializes the annual report for downstream tooling.
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Name() string { return "json" }

func (jf *JSONFormatter) Format(report *AnnualReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	if jf.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
