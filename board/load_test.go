//go:build !baremetal

package board

import (
	"strings"
	"testing"
	"time"

	"co2gateway-go/errcode"
	"co2gateway-go/hw"
)

func TestWithDefaults(t *testing.T) {
	p := Plan{}.WithDefaults()
	if p.SensorHz != DefaultSensorHz || p.LFAccuracyPPM != 50 || p.HFAccuracyPPM != 30 {
		t.Fatalf("defaults not applied: %+v", p)
	}
	if p.HostName != DefaultHostName || p.MAC != DefaultMAC {
		t.Fatalf("identity defaults not applied: %+v", p)
	}
	if p.BlinkPeriod != time.Second || p.SamplePeriod != 5*time.Second {
		t.Fatalf("period defaults not applied: %+v", p)
	}
}

func TestLoadPlanOverridesBase(t *testing.T) {
	doc := `
name: bench
led_pin: 6
sensor_hz: 400000
lf_source: synth
hf_accuracy_ppm: 20
blink_period: 250ms
`
	p, err := LoadPlan(strings.NewReader(doc), Selected)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "bench" || p.LEDPin != 6 || p.SensorHz != 400000 {
		t.Fatalf("unexpected plan %+v", p)
	}
	if p.LFSource != hw.LFSourceSynth || p.HFAccuracyPPM != 20 {
		t.Fatalf("oscillator fields %+v", p)
	}
	if p.BlinkPeriod != 250*time.Millisecond {
		t.Fatalf("blink=%v", p.BlinkPeriod)
	}
	// Untouched fields come from the base plan.
	if p.SensorSDA != Selected.SensorSDA || p.SamplePeriod != Selected.SamplePeriod {
		t.Fatalf("base fields lost: %+v", p)
	}
}

func TestLoadPlanEmptyDocumentKeepsBase(t *testing.T) {
	p, err := LoadPlan(strings.NewReader(""), Selected)
	if err != nil {
		t.Fatal(err)
	}
	if p != Selected {
		t.Fatalf("got %+v want %+v", p, Selected)
	}
}

func TestLoadPlanRejectsBadInput(t *testing.T) {
	cases := []string{
		"lf_source: plasma\n",
		"blink_period: soon\n",
		"no_such_field: 1\n",
	}
	for _, doc := range cases {
		_, err := LoadPlan(strings.NewReader(doc), Selected)
		if errcode.Of(err) != errcode.InvalidParams {
			t.Errorf("%q: err=%v, want invalid_params", doc, err)
		}
	}
}

func TestWritePlanRoundTrips(t *testing.T) {
	in := Selected
	in.Name = "bench"
	in.LFSource = hw.LFSourceRC
	in.BlinkPeriod = 300 * time.Millisecond

	var sb strings.Builder
	if err := WritePlan(&sb, in); err != nil {
		t.Fatal(err)
	}
	out, err := LoadPlan(strings.NewReader(sb.String()), Plan{})
	if err != nil {
		t.Fatalf("%v\n%s", err, sb.String())
	}
	// MAC is not part of the document.
	out.MAC = in.MAC
	if out != in {
		t.Fatalf("got %+v want %+v", out, in)
	}
}
