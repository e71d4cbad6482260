package driver

import (
	"encoding/json"
	"fmt"

	"basedef/internal/diag"
	"basedef/internal/observ"
	"basedef/internal/source"
)

type timingPayload struct {
	Kind     string                 `json:"kind"`
	TotalMS  float64                `json:"total_ms"`
	Phases   []observ.PhaseReport   `json:"phases"`
	Counters []observ.CounterReport `json:"counters,omitempty"`
}

func appendTimingDiagnostic(bag *diag.Bag, report observ.Report) {
	if bag == nil {
		return
	}
	payload := timingPayload{
		Kind:     "pipeline",
		TotalMS:  report.TotalMS,
		Phases:   report.Phases,
		Counters: report.Counters,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{},
		fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)).
		WithNote(source.Span{}, string(data))

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
