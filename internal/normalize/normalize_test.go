package normalize

import "testing"

func TestReportScalesFractions(t *testing.T) {
	doc := map[string]any{
		"seoScoreBreakdown": map[string]any{
			"titleScore":   0.85,
			"overallScore": 0.5,
		},
	}

	Report(doc)

	breakdown := doc["seoScoreBreakdown"].(map[string]any)
	if breakdown["titleScore"] != 85 {
		t.Errorf("Expected 0.85 to become 85, got %v", breakdown["titleScore"])
	}
	if breakdown["overallScore"] != 50 {
		t.Errorf("Expected 0.5 to become 50, got %v", breakdown["overallScore"])
	}
}

func TestReportClampsOutOfRange(t *testing.T) {
	doc := map[string]any{
		"seoScoreBreakdown": map[string]any{
			"titleScore":       float64(150),
			"descriptionScore": float64(-5),
			"tagsScore":        float64(42),
		},
	}

	Report(doc)

	breakdown := doc["seoScoreBreakdown"].(map[string]any)
	if breakdown["titleScore"] != 100 {
		t.Errorf("Expected 150 clamped to 100, got %v", breakdown["titleScore"])
	}
	if breakdown["descriptionScore"] != 0 {
		t.Errorf("Expected -5 clamped to 0, got %v", breakdown["descriptionScore"])
	}
	if breakdown["tagsScore"] != 42 {
		t.Errorf("Expected 42 unchanged, got %v", breakdown["tagsScore"])
	}
}

func TestReportLeavesOtherSectionsAlone(t *testing.T) {
	doc := map[string]any{
		"keywordResearch": map[string]any{
			"difficulty": "Medium",
			"weight":     0.5,
		},
		"seoScoreBreakdown": map[string]any{
			"titleScore": 0.9,
		},
	}

	Report(doc)

	research := doc["keywordResearch"].(map[string]any)
	if research["weight"] != 0.5 {
		t.Errorf("Expected numeric value outside breakdown untouched, got %v", research["weight"])
	}
}

func TestReportIgnoresNonNumericLeaves(t *testing.T) {
	doc := map[string]any{
		"seoScoreBreakdown": map[string]any{
			"titleScore": "high",
			"nested": map[string]any{
				"subScore": 0.75,
			},
		},
	}

	Report(doc)

	breakdown := doc["seoScoreBreakdown"].(map[string]any)
	if breakdown["titleScore"] != "high" {
		t.Errorf("Expected non-numeric leaf untouched, got %v", breakdown["titleScore"])
	}
	nested := breakdown["nested"].(map[string]any)
	if nested["subScore"] != 75 {
		t.Errorf("Expected nested numeric leaf normalized, got %v", nested["subScore"])
	}
}

func TestReportMissingSection(t *testing.T) {
	doc := map[string]any{"titleVariants": []any{"a"}}

	result := Report(doc)
	if result == nil {
		t.Fatal("Expected document returned unchanged")
	}

	Report(nil) // must not panic
}
