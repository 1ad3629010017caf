package core

// CompetitorVideo is one ranked competitor recovered from the search provider.
// Only entries whose view count resolved to a positive integer become
// CompetitorVideos; everything else is dropped during aggregation.
type CompetitorVideo struct {
	Title     string `json:"title"`   // Video title ("Unknown" when the provider omits it)
	Channel   string `json:"channel"` // Channel name ("Unknown" when the provider omits it)
	ViewCount int64  `json:"viewCount"`
}

// CompetitionTier is a coarse classification of how hard it is to rank
// given average competitor view counts.
type CompetitionTier string

const (
	TierLow    CompetitionTier = "Low"
	TierMedium CompetitionTier = "Medium"
	TierHigh   CompetitionTier = "High"
)

// Tier thresholds on average competitor views. These values come from the
// original scoring model and are intentionally not derived from anything.
const (
	MediumTierMinViews = 100000
	HighTierMinViews   = 500000
)

// TierForAverageViews maps an average view count onto a CompetitionTier.
// The boundaries are inclusive upward: 100000 is Medium, 500000 is High.
func TierForAverageViews(avg int64) CompetitionTier {
	switch {
	case avg < MediumTierMinViews:
		return TierLow
	case avg < HighTierMinViews:
		return TierMedium
	default:
		return TierHigh
	}
}

// CompetitorSummary is the cleaned aggregate of noisy provider results.
// Competitors keep provider order and are capped at ten entries;
// AverageViews is the rounded mean of their view counts (0 when empty).
type CompetitorSummary struct {
	Competitors     []CompetitorVideo `json:"competitors"`
	AverageViews    int64             `json:"averageViews"`
	CompetitionTier CompetitionTier   `json:"competitionTier"`
}

// Default values substituted for missing optional request fields before
// prompt rendering.
const (
	DefaultDescription = "Not provided"
	DefaultAudience    = "General viewers"
	DefaultGeo         = "Global"
)

// MaxTitleLength is the upper bound on AnalysisRequest.Title enforced at
// the request boundary.
const MaxTitleLength = 255

// AnalysisRequest describes the content the caller wants analyzed.
// Title is required; the other fields default downstream.
type AnalysisRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Audience    string `json:"audience,omitempty"`
	Geo         string `json:"geo,omitempty"`
}

// WithDefaults returns a copy of the request with the documented defaults
// substituted for empty optional fields.
func (r AnalysisRequest) WithDefaults() AnalysisRequest {
	out := r
	if out.Description == "" {
		out.Description = DefaultDescription
	}
	if out.Audience == "" {
		out.Audience = DefaultAudience
	}
	if out.Geo == "" {
		out.Geo = DefaultGeo
	}
	return out
}

// SeoReport is the fixed-shape report the completion provider fills in.
// The prompt's schema template and this type are kept in lockstep:
//
//	{
//	  "optimizedMetadata":  { "title": "", "description": "", "tags": [], "hashtags": [] },
//	  "keywordResearch":    { "primaryKeywords": [], "longTailKeywords": [], "searchIntent": "", "difficulty": "" },
//	  "competitorAnalysis": { "commonPatterns": [], "contentGaps": [], "differentiators": [] },
//	  "thumbnailOptimizer": { "concept": "", "textOverlay": "", "colorScheme": "", "composition": "" },
//	  "seoScoreBreakdown":  { "titleScore": 0, "descriptionScore": 0, "tagsScore": 0, "hashtagsScore": 0, "overallScore": 0 },
//	  "trendsAndTopics":    { "currentTrends": [], "relatedTopics": [], "seasonalOpportunities": [] },
//	  "titleVariants":      []
//	}
type SeoReport struct {
	OptimizedMetadata  OptimizedMetadata  `json:"optimizedMetadata"`
	KeywordResearch    KeywordResearch    `json:"keywordResearch"`
	CompetitorAnalysis CompetitorAnalysis `json:"competitorAnalysis"`
	ThumbnailOptimizer ThumbnailOptimizer `json:"thumbnailOptimizer"`
	SeoScoreBreakdown  ScoreBreakdown     `json:"seoScoreBreakdown"`
	TrendsAndTopics    TrendsAndTopics    `json:"trendsAndTopics"`
	TitleVariants      []string           `json:"titleVariants"`
}

// OptimizedMetadata holds the upload-ready metadata block.
type OptimizedMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Hashtags    []string `json:"hashtags"`
}

// KeywordResearch holds the keyword strategy block.
type KeywordResearch struct {
	PrimaryKeywords  []string `json:"primaryKeywords"`
	LongTailKeywords []string `json:"longTailKeywords"`
	SearchIntent     string   `json:"searchIntent"`
	Difficulty       string   `json:"difficulty"`
}

// CompetitorAnalysis holds the model's read on the competitor landscape.
type CompetitorAnalysis struct {
	CommonPatterns  []string `json:"commonPatterns"`
	ContentGaps     []string `json:"contentGaps"`
	Differentiators []string `json:"differentiators"`
}

// ThumbnailOptimizer holds the thumbnail concept block.
type ThumbnailOptimizer struct {
	Concept     string `json:"concept"`
	TextOverlay string `json:"textOverlay"`
	ColorScheme string `json:"colorScheme"`
	Composition string `json:"composition"`
}

// ScoreBreakdown holds the per-dimension SEO scores. All values are
// integers in [0,100] after normalization.
type ScoreBreakdown struct {
	TitleScore       int `json:"titleScore"`
	DescriptionScore int `json:"descriptionScore"`
	TagsScore        int `json:"tagsScore"`
	HashtagsScore    int `json:"hashtagsScore"`
	OverallScore     int `json:"overallScore"`
}

// TrendsAndTopics holds the discovery block.
type TrendsAndTopics struct {
	CurrentTrends         []string `json:"currentTrends"`
	RelatedTopics         []string `json:"relatedTopics"`
	SeasonalOpportunities []string `json:"seasonalOpportunities"`
}

// ReportSections lists the required top-level keys of a SeoReport, in
// schema order. The assembler checks these once on the normalized
// document before decoding.
var ReportSections = []string{
	"optimizedMetadata",
	"keywordResearch",
	"competitorAnalysis",
	"thumbnailOptimizer",
	"seoScoreBreakdown",
	"trendsAndTopics",
	"titleVariants",
}

// AnalysisResult is the success envelope returned to the caller.
type AnalysisResult struct {
	Status          string            `json:"status"`
	Data            *SeoReport        `json:"data"`
	Competitors     []CompetitorVideo `json:"competitors"`
	AverageViews    int64             `json:"averageViews"`
	CompetitionTier CompetitionTier   `json:"competitionTier"`
}

// ErrorEnvelope is the single error shape returned to the caller when any
// stage fails. Raw carries the diagnostic payload (cleaned completion
// text or provider body) and may be empty.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Raw     string `json:"raw,omitempty"`
}
