package main

import (
	"strings"
	"testing"

	"co2gateway-go/errcode"
)

func TestReplayPrintsTransitions(t *testing.T) {
	var sb strings.Builder
	err := replay(&sb, []string{"request-hf", "request-lf", "release-lf", "release-hf"})
	if err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		"OffOff -> OnOff",
		"OnOff -> OnOn",
		"OnOn -> OnOff",
		"OnOff -> OffOff",
		"final OffOff lf=0 hf=0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestReplayRejectsBadOps(t *testing.T) {
	var sb strings.Builder
	if err := replay(&sb, []string{"release-lf"}); errcode.Of(err) != errcode.OverRelease {
		t.Fatalf("err=%v", err)
	}
	if err := replay(&sb, []string{"warp"}); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("err=%v", err)
	}
}

func TestDescribeClassifies(t *testing.T) {
	var sb strings.Builder
	err := replay(&sb, []string{"release-hf"})
	if got, want := describe(err), "programming: release-hf: over_release: no HF token held"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
