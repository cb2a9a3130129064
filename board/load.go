//go:build !baremetal

package board

import (
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"co2gateway-go/errcode"
	"co2gateway-go/hw"
)

// planDoc is the YAML shape. Durations and the LF source are written as
// strings ("250ms", "xtal").
type planDoc struct {
	Plan         `yaml:",inline"`
	LFSource     string `yaml:"lf_source"`
	BlinkPeriod  string `yaml:"blink_period"`
	SamplePeriod string `yaml:"sample_period"`
}

// LoadPlan decodes a YAML plan on top of base. Fields absent from the
// document keep base's values; defaults are applied last.
func LoadPlan(r io.Reader, base Plan) (Plan, error) {
	doc := planDoc{Plan: base}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return Plan{}, &errcode.E{C: errcode.InvalidParams, Op: "board.LoadPlan", Err: err}
	}
	p := doc.Plan
	if doc.LFSource != "" {
		src, ok := parseLFSource(doc.LFSource)
		if !ok {
			return Plan{}, &errcode.E{C: errcode.InvalidParams, Op: "board.LoadPlan", Msg: "lf_source " + doc.LFSource}
		}
		p.LFSource = src
	}
	var err error
	if p.BlinkPeriod, err = parseDuration(doc.BlinkPeriod, p.BlinkPeriod); err != nil {
		return Plan{}, &errcode.E{C: errcode.InvalidParams, Op: "board.LoadPlan", Msg: "blink_period", Err: err}
	}
	if p.SamplePeriod, err = parseDuration(doc.SamplePeriod, p.SamplePeriod); err != nil {
		return Plan{}, &errcode.E{C: errcode.InvalidParams, Op: "board.LoadPlan", Msg: "sample_period", Err: err}
	}
	return p.WithDefaults(), nil
}

func parseLFSource(s string) (hw.LFSource, bool) {
	switch strings.ToLower(s) {
	case "rc":
		return hw.LFSourceRC, true
	case "xtal":
		return hw.LFSourceXtal, true
	case "synth":
		return hw.LFSourceSynth, true
	}
	return 0, false
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

// WritePlan encodes p in the shape LoadPlan reads.
func WritePlan(w io.Writer, p Plan) error {
	doc := planDoc{
		Plan:         p,
		LFSource:     p.LFSource.String(),
		BlinkPeriod:  p.BlinkPeriod.String(),
		SamplePeriod: p.SamplePeriod.String(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}
