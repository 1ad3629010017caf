// Package normalize repairs the score scale of a completed report.
// Models asked for 0-100 integers still return 0-1 fractions often
// enough that the scores need a pass before decoding.
package normalize

import "math"

// Report normalizes every numeric leaf under the seoScoreBreakdown
// section in place: fractions at or below 1 are scaled to percentages,
// everything is rounded and clamped to [0,100]. Other sections and
// non-numeric values pass through untouched. Normalization never fails;
// a document without the section is returned as-is.
func Report(doc map[string]any) map[string]any {
	if doc == nil {
		return doc
	}
	if breakdown, ok := doc["seoScoreBreakdown"].(map[string]any); ok {
		normalizeScores(breakdown)
	}
	return doc
}

// normalizeScores walks the breakdown subtree, rewriting numeric leaves.
func normalizeScores(node map[string]any) {
	for key, value := range node {
		switch v := value.(type) {
		case float64:
			node[key] = scoreValue(v)
		case map[string]any:
			normalizeScores(v)
		}
	}
}

// scoreValue maps a raw model score onto the 0-100 integer scale.
func scoreValue(v float64) int {
	if v <= 1 {
		v *= 100
	}
	score := int(math.Round(v))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
