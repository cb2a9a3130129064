package clock

import (
	"testing"

	"co2gateway-go/errcode"
)

func TestTransitionTable(t *testing.T) {
	type step func(State) (State, error)
	req := func(f func(State) State) step { return func(s State) (State, error) { return f(s), nil } }

	tests := []struct {
		name string
		op   step
		from State
		want State
		err  error
	}{
		{"request_lf/OffOff", req(RequestLF), OffOff, OffOn, nil},
		{"request_lf/OnOff", req(RequestLF), OnOff, OnOn, nil},
		{"request_lf/OffOn", req(RequestLF), OffOn, OffOn, nil},
		{"request_lf/OnOn", req(RequestLF), OnOn, OnOn, nil},
		{"release_lf/OffOn", ReleaseLF, OffOn, OffOff, nil},
		{"release_lf/OnOn", ReleaseLF, OnOn, OnOff, nil},
		{"release_lf/OffOff", ReleaseLF, OffOff, OffOff, errcode.OverRelease},
		{"request_hf/OffOff", req(RequestHF), OffOff, OnOff, nil},
		{"request_hf/OffOn", req(RequestHF), OffOn, OnOn, nil},
		{"request_hf/OnOn", req(RequestHF), OnOn, OnOn, nil},
		{"release_hf/OnOff", ReleaseHF, OnOff, OffOff, nil},
		{"release_hf/OnOn", ReleaseHF, OnOn, OffOn, nil},
		{"release_hf/OffOn", ReleaseHF, OffOn, OffOn, errcode.OverRelease},
	}
	for _, tt := range tests {
		got, err := tt.op(tt.from)
		if err != tt.err {
			t.Errorf("%s: err=%v want %v", tt.name, err, tt.err)
		}
		if got != tt.want {
			t.Errorf("%s: %s want %s", tt.name, got, tt.want)
		}
		if !got.Valid() {
			t.Errorf("%s: produced invalid state %d", tt.name, got)
		}
	}
}

func TestStateAxes(t *testing.T) {
	tests := []struct {
		s      State
		hf, lf bool
	}{
		{OffOff, false, false},
		{OffOn, false, true},
		{OnOff, true, false},
		{OnOn, true, true},
	}
	for _, tt := range tests {
		if tt.s.HF() != tt.hf || tt.s.LF() != tt.lf {
			t.Errorf("%s: hf=%v lf=%v", tt.s, tt.s.HF(), tt.s.LF())
		}
	}
	if State(4).Valid() || State(4).String() != "invalid" {
		t.Fatal("state 4 must be invalid")
	}
}
