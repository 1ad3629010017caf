// Package prompt renders the single analysis prompt sent to the
// completion provider. Rendering is pure: the same request and summary
// always produce byte-identical output.
package prompt

import (
	"fmt"
	"strings"

	"tubelens/internal/core"
)

// analysisPromptTemplate is the full instruction set. The JSON schema
// block must stay in lockstep with core.SeoReport; the extractor and
// normalizer downstream assume exactly these keys.
const analysisPromptTemplate = `You are a YouTube SEO strategist. Analyze the following video concept and produce a complete optimization report.

VIDEO CONCEPT:
Title: %s
Description: %s
Target audience: %s
Target geography: %s

COMPETITOR LANDSCAPE:
%s
Average competitor views: %d
Competition tier: %s

Respond with a single JSON object matching EXACTLY this schema. Fill in every field; do not add, rename, or omit keys:

{
  "optimizedMetadata": {
    "title": "",
    "description": "",
    "tags": [],
    "hashtags": []
  },
  "keywordResearch": {
    "primaryKeywords": [],
    "longTailKeywords": [],
    "searchIntent": "",
    "difficulty": ""
  },
  "competitorAnalysis": {
    "commonPatterns": [],
    "contentGaps": [],
    "differentiators": []
  },
  "thumbnailOptimizer": {
    "concept": "",
    "textOverlay": "",
    "colorScheme": "",
    "composition": ""
  },
  "seoScoreBreakdown": {
    "titleScore": 0,
    "descriptionScore": 0,
    "tagsScore": 0,
    "hashtagsScore": 0,
    "overallScore": 0
  },
  "trendsAndTopics": {
    "currentTrends": [],
    "relatedTopics": [],
    "seasonalOpportunities": []
  },
  "titleVariants": []
}

RULES:
- Never leave a string field empty and never omit array items; infer anything the concept does not state.
- optimizedMetadata.title: at most 70 characters, front-load the primary keyword.
- optimizedMetadata.description: 150-300 words, first two sentences must stand alone above the fold.
- optimizedMetadata.tags: 15-25 tags mixing broad and specific terms.
- optimizedMetadata.hashtags: 12-20 unique lowercase hashtags, each starting with #, no spaces, mixing broad, niche, platform and engagement tags.
- keywordResearch.difficulty: one of "Low", "Medium", "High".
- seoScoreBreakdown: every score is an integer from 0 to 100; overallScore is the weighted combination of the other four, not their plain average. Score each dimension on its own merits; do not give every dimension the same score.
- titleVariants: exactly 5 alternative titles, each under 70 characters, none identical to optimizedMetadata.title.
- Ground competitorAnalysis in the competitor landscape above; if it is empty, reason from the concept alone.
- Output the JSON object only. No markdown fences, no commentary before or after.`

// Build renders the analysis prompt. The request's optional fields are
// defaulted here so callers can pass it through untouched.
func Build(req core.AnalysisRequest, summary *core.CompetitorSummary) string {
	req = req.WithDefaults()

	return fmt.Sprintf(analysisPromptTemplate,
		req.Title,
		req.Description,
		req.Audience,
		req.Geo,
		competitorBlock(summary),
		summary.AverageViews,
		summary.CompetitionTier,
	)
}

// competitorBlock renders the ranked competitor list, one line per video,
// or a fixed placeholder line when there are none.
func competitorBlock(summary *core.CompetitorSummary) string {
	if len(summary.Competitors) == 0 {
		return "No competitor data available.\n"
	}

	var sb strings.Builder
	for i, video := range summary.Competitors {
		sb.WriteString(fmt.Sprintf("%d. %q by %s (%d views)\n", i+1, video.Title, video.Channel, video.ViewCount))
	}
	return sb.String()
}
