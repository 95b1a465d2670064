package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/motion"
)

type ExportData struct {
	Category string                          `json:"category"`
	Variant  string                          `json:"variant"`
	Yoyo     bool                            `json:"yoyo"`
	Edited   bool                            `json:"edited"`
	Dt       float64                         `json:"dt"`
	Duration float64                         `json:"duration"`
	Steps    int                             `json:"steps"`
	Times    []float64                       `json:"times"`
	Targets  []string                        `json:"targets"`
	Series   map[string]map[string][]float64 `json:"series"`
	Colors   map[string][]string             `json:"colors,omitempty"`
	Metrics  map[string]float64              `json:"metrics"`
}

// NewExportData keeps only what a capture animates: numeric series per
// target and property, and the fill colour of targets whose colour changes.
func NewExportData(res *capture.Result) ExportData {
	data := ExportData{
		Category: res.Category,
		Variant:  res.Variant,
		Yoyo:     res.Yoyo,
		Edited:   res.Edited,
		Dt:       res.Dt,
		Duration: res.Duration(),
		Steps:    len(res.Frames),
		Times:    res.Times(),
		Targets:  res.Targets,
		Series:   make(map[string]map[string][]float64),
		Metrics:  res.Metrics,
	}

	animated := res.Animated()
	for _, ti := range res.AnimatedTargets() {
		name := res.Targets[ti]
		for _, k := range animated {
			if k == motion.KeyBackgroundColor {
				if data.Colors == nil {
					data.Colors = make(map[string][]string)
				}
				colors := make([]string, len(res.Frames))
				for i, f := range res.Frames {
					colors[i] = f.Styles[ti].Get(k).Text
				}
				data.Colors[name] = colors
				continue
			}
			if k.Textual() {
				continue
			}
			if data.Series[name] == nil {
				data.Series[name] = make(map[string][]float64)
			}
			data.Series[name][string(k)] = res.Series(ti, k)
		}
	}
	return data
}

func ExportJSON(path string, res *capture.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, res)
}

func WriteJSON(w io.Writer, res *capture.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(res))
}

func ExportCSV(path string, res *capture.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, res)
}
