package domain

// ContentType tells the guardrail which prompt template fits the content
// under inspection.
type ContentType string

const (
	ContentTypeDescription    ContentType = "description"
	ContentTypeMovieTitle     ContentType = "movie_title"
	ContentTypeRecommendation ContentType = "recommendation"
)

// RiskLevel grades how dangerous the classifier considers the content.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether the level is one of the three recognized grades.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// ClassificationVerdict is the result of one guardrail check.
type ClassificationVerdict struct {
	IsAppropriate     bool      `json:"isAppropriate"`
	Confidence        float64   `json:"confidence"`
	FlaggedCategories []string  `json:"flaggedCategories"`
	Reasoning         string    `json:"reasoning"`
	Suggestions       []string  `json:"suggestions"`
	RiskLevel         RiskLevel `json:"riskLevel"`
}

// FailClosedVerdict is returned whenever the classifier's reply cannot be
// parsed or validated. Malformed safety output must block, never allow.
func FailClosedVerdict() ClassificationVerdict {
	return ClassificationVerdict{
		IsAppropriate:     false,
		Confidence:        0.5,
		FlaggedCategories: []string{"parsing_error"},
		Reasoning:         "failed to parse content validation response - blocking for safety",
		RiskLevel:         RiskHigh,
	}
}

// AllowAllVerdict is returned when the guardrail is disabled by configuration.
func AllowAllVerdict() ClassificationVerdict {
	return ClassificationVerdict{
		IsAppropriate: true,
		Confidence:    1.0,
		Reasoning:     "guardrail disabled",
		RiskLevel:     RiskLow,
	}
}
