package di

import (
	"log/slog"
	"time"

	"reelguard/internal/adapter/imdb"
	"reelguard/internal/adapter/openai"
	"reelguard/internal/adapter/rest"
	"reelguard/internal/domain"
	"reelguard/internal/infra/config"
	"reelguard/internal/infra/httpclient"
	"reelguard/internal/state"
	"reelguard/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	// External clients
	LLMClient domain.LLMClient
	Extractor *imdb.Extractor

	// Usecases
	Guardrail usecase.GuardrailUsecase
	Recommend usecase.RecommendUsecase

	// Process-wide state
	Recommended *state.RecommendedSet
	Registry    *state.MovieRegistry

	// REST surface
	Handler *rest.Handler
}

// NewApplicationComponents wires all dependencies from config.
func NewApplicationComponents(cfg *config.Config, log *slog.Logger) *ApplicationComponents {
	// Shared HTTP clients with connection pooling
	openaiHTTP := httpclient.NewPooledClient(time.Duration(cfg.OpenAI.Timeout) * time.Second)
	scrapeHTTP := httpclient.NewPooledClient(time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second)

	// External clients
	llmClient := openai.NewClient(cfg.OpenAI.URL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, openaiHTTP, log)
	extractor := imdb.NewExtractor(
		scrapeHTTP,
		cfg.Scrape.CacheSize,
		time.Duration(cfg.Scrape.CacheTTLHours)*time.Hour,
		cfg.Scrape.RatePerSecond,
		log,
	)

	// Process-wide state
	recommended := state.NewRecommendedSet()
	registry := state.NewMovieRegistry(domain.BaselineMovies)

	// Usecases
	guardrail := usecase.NewGuardrailUsecase(llmClient, cfg.Guard.Enabled, cfg.Guard.MaxTokens, log)
	recommend := usecase.NewRecommendUsecase(
		guardrail,
		extractor,
		imdb.NormalizeURL,
		llmClient,
		recommended,
		domain.BaselineMovies,
		cfg.Reco.MaxTokens,
		time.Duration(cfg.Reco.TimeoutSeconds)*time.Second,
		cfg.Reco.Concurrency,
		log,
	)

	handler := rest.NewHandler(recommend, extractor, registry, log)

	return &ApplicationComponents{
		LLMClient:   llmClient,
		Extractor:   extractor,
		Guardrail:   guardrail,
		Recommend:   recommend,
		Recommended: recommended,
		Registry:    registry,
		Handler:     handler,
	}
}
