package domain

// OutcomeKind discriminates the terminal states of one recommendation run.
type OutcomeKind string

const (
	OutcomeRecommendation  OutcomeKind = "recommendation"
	OutcomeCycleReset      OutcomeKind = "cycle_reset"
	OutcomeSecurityBlocked OutcomeKind = "security_blocked"
	OutcomeContentBlocked  OutcomeKind = "content_blocked"
)

// RecommendationOutcome is the tagged union produced by the orchestrator.
// Exactly one variant applies; Kind names it and the variant's fields are
// populated while the others stay zero.
type RecommendationOutcome struct {
	Kind OutcomeKind

	// OutcomeRecommendation
	Title     string
	Reasoning string
	Genre     string
	Year      string

	// OutcomeCycleReset
	AllTitles []string

	// OutcomeContentBlocked / OutcomeSecurityBlocked
	BlockedItems []string
	Suggestions  []string
}

// NewRecommendation builds the happy-path variant with the fixed metadata the
// short-answer protocol leaves unspecified.
func NewRecommendation(title string) *RecommendationOutcome {
	return &RecommendationOutcome{
		Kind:      OutcomeRecommendation,
		Title:     title,
		Reasoning: "Selected randomly among not-yet-recommended movies.",
		Genre:     "Various",
		Year:      "Various",
	}
}

// NewCycleReset builds the exhaustion variant carrying the full title list the
// model echoed back.
func NewCycleReset(allTitles []string) *RecommendationOutcome {
	return &RecommendationOutcome{
		Kind:      OutcomeCycleReset,
		AllTitles: allTitles,
	}
}

// NewSecurityBlocked builds the exploit-detected variant.
func NewSecurityBlocked(blockedItems, suggestions []string) *RecommendationOutcome {
	return &RecommendationOutcome{
		Kind:         OutcomeSecurityBlocked,
		BlockedItems: blockedItems,
		Suggestions:  suggestions,
	}
}

// NewContentBlocked builds the guardrail-rejection variant.
func NewContentBlocked(reasoning string, blockedItems, suggestions []string) *RecommendationOutcome {
	return &RecommendationOutcome{
		Kind:         OutcomeContentBlocked,
		Reasoning:    reasoning,
		BlockedItems: blockedItems,
		Suggestions:  suggestions,
	}
}
