package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"reelguard/internal/domain"
	"reelguard/internal/jsonscan"
)

const guardrailTemperature = 0.1

// GuardrailRequest identifies one content string to classify.
type GuardrailRequest struct {
	Content     string
	ContentType domain.ContentType
	UserID      string
	SessionID   string
}

// GuardrailUsecase runs one content-safety classification per call. A
// successful upstream call always yields a verdict: malformed classifier
// output degrades to the fail-closed default instead of an error. Errors are
// reserved for infrastructure problems (missing credential, transport
// failure, upstream error payload).
type GuardrailUsecase interface {
	Check(ctx context.Context, req GuardrailRequest) (domain.ClassificationVerdict, error)
}

type guardrailUsecase struct {
	llm       domain.LLMClient
	enabled   bool
	maxTokens int
	logger    *slog.Logger
}

// NewGuardrailUsecase wires the classifier against the generative backend.
func NewGuardrailUsecase(llm domain.LLMClient, enabled bool, maxTokens int, logger *slog.Logger) GuardrailUsecase {
	return &guardrailUsecase{
		llm:       llm,
		enabled:   enabled,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

func (u *guardrailUsecase) Check(ctx context.Context, req GuardrailRequest) (domain.ClassificationVerdict, error) {
	if !u.enabled {
		return domain.AllowAllVerdict(), nil
	}

	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: safetyRubric},
		{Role: domain.RoleUser, Content: buildGuardrailPrompt(req)},
	}

	resp, err := u.llm.Chat(ctx, messages, domain.ChatOptions{
		Temperature: guardrailTemperature,
		MaxTokens:   u.maxTokens,
	})
	if err != nil {
		return domain.ClassificationVerdict{}, fmt.Errorf("content validation failed: %w", err)
	}

	verdict := u.parseVerdict(resp.Text)
	if !verdict.IsAppropriate {
		u.logger.Info("guardrail blocked content",
			"content_type", req.ContentType,
			"risk_level", verdict.RiskLevel,
			"flagged", verdict.FlaggedCategories)
	}
	return verdict, nil
}

// rawVerdict mirrors the JSON shape the rubric demands. Pointer fields let
// us tell a missing field from a zero value.
type rawVerdict struct {
	IsAppropriate     *bool    `json:"isAppropriate"`
	Confidence        *float64 `json:"confidence"`
	FlaggedCategories []string `json:"flaggedCategories"`
	Reasoning         *string  `json:"reasoning"`
	Suggestions       []string `json:"suggestions"`
	RiskLevel         *string  `json:"riskLevel"`
}

// parseVerdict scans the reply for its first balanced JSON object and
// validates every field. Any violation, including no JSON at all, falls back
// to the fail-closed verdict; once the transport succeeded this never errors.
func (u *guardrailUsecase) parseVerdict(text string) domain.ClassificationVerdict {
	obj, ok := jsonscan.FirstObject(text)
	if !ok {
		u.logger.Warn("no JSON object in classifier reply", "reply", text)
		return domain.FailClosedVerdict()
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		u.logger.Warn("failed to parse classifier reply", "error", err)
		return domain.FailClosedVerdict()
	}

	if raw.IsAppropriate == nil || raw.Confidence == nil || raw.Reasoning == nil || raw.RiskLevel == nil {
		u.logger.Warn("classifier reply missing required field")
		return domain.FailClosedVerdict()
	}
	if *raw.Confidence < 0 || *raw.Confidence > 1 {
		u.logger.Warn("classifier confidence out of range", "confidence", *raw.Confidence)
		return domain.FailClosedVerdict()
	}
	if raw.FlaggedCategories == nil {
		u.logger.Warn("classifier reply missing flaggedCategories")
		return domain.FailClosedVerdict()
	}
	level := domain.RiskLevel(*raw.RiskLevel)
	if !level.Valid() {
		u.logger.Warn("classifier risk level unrecognized", "risk_level", *raw.RiskLevel)
		return domain.FailClosedVerdict()
	}

	return domain.ClassificationVerdict{
		IsAppropriate:     *raw.IsAppropriate,
		Confidence:        *raw.Confidence,
		FlaggedCategories: raw.FlaggedCategories,
		Reasoning:         *raw.Reasoning,
		Suggestions:       raw.Suggestions,
		RiskLevel:         level,
	}
}
