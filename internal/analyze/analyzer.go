// Package analyze orchestrates the SEO analysis pipeline. Stages run
// strictly in order: competitor aggregation, prompt assembly, completion,
// extraction, score normalization, result assembly. The first failing
// stage aborts the run with a classified error.
package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tubelens/internal/competitors"
	"tubelens/internal/core"
	"tubelens/internal/extract"
	"tubelens/internal/logger"
	"tubelens/internal/normalize"
	"tubelens/internal/prompt"
)

// Completer produces a raw text completion for a prompt. Satisfied by
// llm.Client; tests substitute their own.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Analyzer runs the full pipeline for one request.
type Analyzer struct {
	aggregator *competitors.Aggregator
	completer  Completer
}

// NewAnalyzer creates an analyzer over the given stages.
func NewAnalyzer(aggregator *competitors.Aggregator, completer Completer) *Analyzer {
	return &Analyzer{aggregator: aggregator, completer: completer}
}

// Analyze validates the request and runs it through the pipeline. On
// failure the returned error is a *core.StageError whose Envelope() is
// the caller-facing shape.
func (a *Analyzer) Analyze(ctx context.Context, req core.AnalysisRequest) (*core.AnalysisResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	summary, err := a.aggregator.Aggregate(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	raw, err := a.completer.Complete(ctx, prompt.Build(req, summary))
	if err != nil {
		return nil, err
	}

	doc, err := extract.Object(raw)
	if err != nil {
		return nil, err
	}

	normalize.Report(doc)

	report, err := decodeReport(doc)
	if err != nil {
		return nil, err
	}

	logger.Info("Analysis completed",
		"title", req.Title,
		"competitors", len(summary.Competitors),
		"tier", string(summary.CompetitionTier))

	return &core.AnalysisResult{
		Status:          "success",
		Data:            report,
		Competitors:     summary.Competitors,
		AverageViews:    summary.AverageViews,
		CompetitionTier: summary.CompetitionTier,
	}, nil
}

// ValidateRequest checks the request boundary rules: title required,
// length capped after trimming.
func ValidateRequest(req core.AnalysisRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > core.MaxTitleLength {
		return fmt.Errorf("title exceeds %d characters", core.MaxTitleLength)
	}
	return nil
}

// decodeReport checks the normalized document for the required sections
// and decodes it into the typed report. A document missing sections is
// treated the same as one that never parsed.
func decodeReport(doc map[string]any) (*core.SeoReport, error) {
	var missing []string
	for _, section := range core.ReportSections {
		if _, ok := doc[section]; !ok {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		raw, _ := json.Marshal(doc)
		return nil, &core.StageError{
			Kind:    core.ErrKindUnparsableCompletion,
			Message: fmt.Sprintf("completion is missing required sections: %s", strings.Join(missing, ", ")),
			Raw:     string(raw),
		}
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, &core.StageError{
			Kind:    core.ErrKindUnparsableCompletion,
			Message: fmt.Sprintf("completion document could not be re-encoded: %v", err),
		}
	}

	var report core.SeoReport
	if err := json.Unmarshal(encoded, &report); err != nil {
		return nil, &core.StageError{
			Kind:    core.ErrKindUnparsableCompletion,
			Message: fmt.Sprintf("completion does not match the report schema: %v", err),
			Raw:     string(encoded),
		}
	}

	return &report, nil
}

// EnvelopeFor maps any pipeline error onto the caller-facing error
// shape. Non-stage errors get a generic envelope with no raw payload.
func EnvelopeFor(err error) core.ErrorEnvelope {
	var stageErr *core.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Envelope()
	}
	return core.ErrorEnvelope{Status: "error", Message: err.Error()}
}
