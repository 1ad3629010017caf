package core

import (
	"errors"
	"testing"
)

func TestTierForAverageViews(t *testing.T) {
	cases := []struct {
		avg  int64
		want CompetitionTier
	}{
		{0, TierLow},
		{99999, TierLow},
		{100000, TierMedium},
		{499999, TierMedium},
		{500000, TierHigh},
		{5000000, TierHigh},
	}

	for _, tc := range cases {
		if got := TierForAverageViews(tc.avg); got != tc.want {
			t.Errorf("TierForAverageViews(%d) = %s, want %s", tc.avg, got, tc.want)
		}
	}
}

func TestAnalysisRequestWithDefaults(t *testing.T) {
	req := AnalysisRequest{Title: "How to sharpen a chisel"}
	out := req.WithDefaults()

	if out.Description != DefaultDescription {
		t.Errorf("Description = %q, want %q", out.Description, DefaultDescription)
	}
	if out.Audience != DefaultAudience {
		t.Errorf("Audience = %q, want %q", out.Audience, DefaultAudience)
	}
	if out.Geo != DefaultGeo {
		t.Errorf("Geo = %q, want %q", out.Geo, DefaultGeo)
	}
	if out.Title != req.Title {
		t.Errorf("Title changed: %q", out.Title)
	}
}

func TestAnalysisRequestWithDefaultsKeepsProvidedFields(t *testing.T) {
	req := AnalysisRequest{
		Title:       "t",
		Description: "a woodworking tutorial",
		Audience:    "beginners",
		Geo:         "US",
	}
	out := req.WithDefaults()

	if out != req {
		t.Errorf("WithDefaults modified provided fields: %+v", out)
	}
}

func TestStageErrorEnvelope(t *testing.T) {
	var err error = &StageError{
		Kind:    ErrKindUnparsableCompletion,
		Message: "no JSON object found in completion",
		Raw:     "not json at all",
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatal("expected errors.As to unwrap *StageError")
	}

	env := stageErr.Envelope()
	if env.Status != "error" {
		t.Errorf("Status = %q, want error", env.Status)
	}
	if env.Message != "no JSON object found in completion" {
		t.Errorf("Message = %q", env.Message)
	}
	if env.Raw != "not json at all" {
		t.Errorf("Raw = %q", env.Raw)
	}
}
