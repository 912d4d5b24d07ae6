package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"reelguard/internal/domain"
	"reelguard/internal/state"
)

const recommendTemperature = 0.1

// ErrRequestTimeout is returned when the orchestration does not finish within
// its budget. In-flight sub-calls are abandoned, not cancelled.
var ErrRequestTimeout = errors.New("request timeout")

// MetadataExtractor is the capability to turn one canonical reference URL
// into scraped movie facts. Implementations never fail; they degrade to an
// empty record.
type MetadataExtractor interface {
	MovieInfo(ctx context.Context, url string) domain.MovieInfo
}

// URLNormalizer validates a raw reference string and returns its canonical
// form, or false when it is not a supported movie-page URL.
type URLNormalizer func(raw string) (string, bool)

// RecommendInput carries one end-to-end recommendation request.
type RecommendInput struct {
	Description string
	IMDbURLs    []string
	SessionID   string
}

// ValidationResult is the outcome of the standalone guardrail check exposed
// at the API edge.
type ValidationResult struct {
	IsValid        bool
	Reasoning      string
	BlockedContent []string
	Suggestions    []string
	MovieInfos     []domain.MovieInfoWithURL
}

// RecommendUsecase composes validation, enrichment, classification, and the
// recommendation call into one request/response cycle.
type RecommendUsecase interface {
	Execute(ctx context.Context, input RecommendInput) (*domain.RecommendationOutcome, error)
	Validate(ctx context.Context, input RecommendInput) (*ValidationResult, error)
}

type recommendUsecase struct {
	guard       GuardrailUsecase
	extractor   MetadataExtractor
	normalize   URLNormalizer
	llm         domain.LLMClient
	recommended *state.RecommendedSet
	catalog     []string
	maxTokens   int
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
}

// NewRecommendUsecase wires the orchestrator. catalog is the curated baseline
// list every prompt includes; recommended is the injected process-wide
// already-recommended store.
func NewRecommendUsecase(
	guard GuardrailUsecase,
	extractor MetadataExtractor,
	normalize URLNormalizer,
	llm domain.LLMClient,
	recommended *state.RecommendedSet,
	catalog []string,
	maxTokens int,
	timeout time.Duration,
	concurrency int,
	logger *slog.Logger,
) RecommendUsecase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &recommendUsecase{
		guard:       guard,
		extractor:   extractor,
		normalize:   normalize,
		llm:         llm,
		recommended: recommended,
		catalog:     catalog,
		maxTokens:   maxTokens,
		timeout:     timeout,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Execute races the pipeline against the whole-request budget. Losing the
// race abandons work in flight; the context is deliberately not cancelled.
func (u *recommendUsecase) Execute(ctx context.Context, input RecommendInput) (*domain.RecommendationOutcome, error) {
	type result struct {
		outcome *domain.RecommendationOutcome
		err     error
	}
	done := make(chan result, 1)

	go func() {
		outcome, err := u.run(ctx, input)
		done <- result{outcome, err}
	}()

	select {
	case r := <-done:
		return r.outcome, r.err
	case <-time.After(u.timeout):
		u.logger.Error("recommendation request exceeded budget", "timeout", u.timeout)
		return nil, ErrRequestTimeout
	}
}

func (u *recommendUsecase) run(ctx context.Context, input RecommendInput) (*domain.RecommendationOutcome, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return domain.NewContentBlocked(
			"Description is required.",
			nil,
			[]string{"Please provide a description."},
		), nil
	}

	verdict, err := u.guard.Check(ctx, GuardrailRequest{
		Content:     input.Description,
		ContentType: domain.ContentTypeDescription,
		SessionID:   input.SessionID,
	})
	if err != nil {
		return nil, err
	}
	if !verdict.IsAppropriate {
		return domain.NewContentBlocked(
			fmt.Sprintf("Content blocked: %s", verdict.Reasoning),
			[]string{input.Description},
			orDefault(verdict.Suggestions, DefaultContentSuggestions),
		), nil
	}

	enriched, blocked := u.enrichReferences(ctx, input.IMDbURLs, input.SessionID)
	if len(blocked) > 0 {
		return domain.NewContentBlocked(
			"Some movies were blocked by content filter",
			blocked,
			BlockedReferenceSuggestions,
		), nil
	}

	catalog := append([]string(nil), u.catalog...)
	for _, info := range enriched {
		catalog = append(catalog, info.CatalogEntry())
	}

	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: recommenderSystemPrompt},
		{Role: domain.RoleUser, Content: buildRecommendPrompt(description, catalog, u.recommended.Snapshot())},
	}

	resp, err := u.llm.Chat(ctx, messages, domain.ChatOptions{
		Temperature: recommendTemperature,
		MaxTokens:   u.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("recommendation generation failed: %w", err)
	}

	return u.interpret(input.Description, resp.Text), nil
}

// Validate runs the guardrail pipeline without the recommendation call; it
// backs the standalone validation endpoint.
func (u *recommendUsecase) Validate(ctx context.Context, input RecommendInput) (*ValidationResult, error) {
	verdict, err := u.guard.Check(ctx, GuardrailRequest{
		Content:     input.Description,
		ContentType: domain.ContentTypeDescription,
		SessionID:   input.SessionID,
	})
	if err != nil {
		return nil, err
	}
	if !verdict.IsAppropriate {
		return &ValidationResult{
			IsValid:        false,
			Reasoning:      verdict.Reasoning,
			BlockedContent: []string{input.Description},
			Suggestions:    orDefault(verdict.Suggestions, DefaultContentSuggestions),
		}, nil
	}

	enriched, blocked := u.enrichReferences(ctx, input.IMDbURLs, input.SessionID)
	if len(blocked) > 0 {
		return &ValidationResult{
			IsValid:        false,
			Reasoning:      "Some movies were blocked by content filter",
			BlockedContent: blocked,
			Suggestions:    BlockedReferenceSuggestions,
			MovieInfos:     enriched,
		}, nil
	}

	return &ValidationResult{
		IsValid:    true,
		MovieInfos: enriched,
	}, nil
}

// enrichReferences normalizes, scrapes, and classifies each supplied URL.
// Invalid URLs and references yielding no scrapeable text are skipped
// silently; per-reference classification failures drop that reference so one
// bad link never aborts the rest. Results keep the input order.
func (u *recommendUsecase) enrichReferences(ctx context.Context, urls []string, sessionID string) ([]domain.MovieInfoWithURL, []string) {
	if len(urls) == 0 {
		return nil, nil
	}

	type refResult struct {
		info    *domain.MovieInfoWithURL
		blocked string
	}
	results := make([]refResult, len(urls))

	var g errgroup.Group
	g.SetLimit(u.concurrency)

	for i, raw := range urls {
		g.Go(func() error {
			canonical, ok := u.normalize(raw)
			if !ok {
				return nil
			}

			info := u.extractor.MovieInfo(ctx, canonical)
			text := info.ClassifierText()
			if text == "" {
				u.logger.Info("reference yielded no metadata, skipping", "url", canonical)
				return nil
			}

			verdict, err := u.guard.Check(ctx, GuardrailRequest{
				Content:     text,
				ContentType: domain.ContentTypeMovieTitle,
				SessionID:   sessionID,
			})
			if err != nil {
				u.logger.Warn("reference classification failed, dropping reference",
					"url", canonical, "error", err)
				return nil
			}

			if !verdict.IsAppropriate {
				name := info.Title
				if name == "" {
					name = raw
				}
				results[i] = refResult{blocked: name}
				return nil
			}

			results[i] = refResult{info: &domain.MovieInfoWithURL{MovieInfo: info, URL: canonical}}
			return nil
		})
	}
	_ = g.Wait()

	var enriched []domain.MovieInfoWithURL
	var blocked []string
	for _, r := range results {
		if r.blocked != "" {
			blocked = append(blocked, r.blocked)
		}
		if r.info != nil {
			enriched = append(enriched, *r.info)
		}
	}
	return enriched, blocked
}

// interpret maps the trimmed model reply onto the outcome union and applies
// the already-recommended bookkeeping.
func (u *recommendUsecase) interpret(description, reply string) *domain.RecommendationOutcome {
	content := strings.TrimSpace(reply)

	if strings.HasPrefix(content, securityBlockedPrefix) {
		u.logger.Warn("model flagged security exploit attempt")
		return domain.NewSecurityBlocked([]string{description}, SecurityBlockedSuggestions)
	}

	if strings.HasPrefix(content, allRecommendedPrefix) {
		rest := strings.TrimPrefix(content, allRecommendedPrefix)
		var titles []string
		for _, t := range strings.Split(rest, ",") {
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				titles = append(titles, trimmed)
			}
		}
		u.recommended.Clear()
		return domain.NewCycleReset(titles)
	}

	u.recommended.Add(content)
	return domain.NewRecommendation(content)
}

func orDefault(suggestions, fallback []string) []string {
	if len(suggestions) > 0 {
		return suggestions
	}
	return fallback
}
