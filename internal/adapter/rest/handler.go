package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reelguard/internal/domain"
	"reelguard/internal/infra/logger"
	"reelguard/internal/state"
	"reelguard/internal/usecase"
)

// Handler exposes the recommendation pipeline over HTTP.
type Handler struct {
	recommendUsecase usecase.RecommendUsecase
	extractor        usecase.MetadataExtractor
	registry         *state.MovieRegistry
	logger           *slog.Logger
}

// NewHandler wires the REST surface.
func NewHandler(
	recommendUsecase usecase.RecommendUsecase,
	extractor usecase.MetadataExtractor,
	registry *state.MovieRegistry,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		recommendUsecase: recommendUsecase,
		extractor:        extractor,
		registry:         registry,
		logger:           logger,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/health", h.Health)
	e.POST("/v1/recommend", h.Recommend)
	e.POST("/v1/guardrail", h.Guardrail)
	e.POST("/v1/scrape", h.Scrape)
	e.GET("/v1/movies", h.ListMovies)
	e.POST("/v1/movies", h.AddMovies)
}

// Health reports service liveness.
func (h *Handler) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type recommendRequest struct {
	Description string   `json:"description"`
	IMDbURLs    []string `json:"imdbUrls"`
}

// Recommend runs the full pipeline for one request.
// (POST /v1/recommend)
func (h *Handler) Recommend(ctx echo.Context) error {
	var req recommendRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest,
			newErrorResponse("Invalid JSON in request body", CodeInvalidJSON, nil))
	}

	if strings.TrimSpace(req.Description) == "" {
		return ctx.JSON(http.StatusBadRequest,
			newErrorResponse("Description is required", CodeMissingDescription, nil))
	}

	sessionID := uuid.NewString()
	reqCtx := context.WithValue(ctx.Request().Context(), logger.SessionIDKey, sessionID)
	ctx.SetRequest(ctx.Request().WithContext(reqCtx))

	outcome, err := h.recommendUsecase.Execute(reqCtx, usecase.RecommendInput{
		Description: req.Description,
		IMDbURLs:    req.IMDbURLs,
		SessionID:   sessionID,
	})
	if err != nil {
		h.logger.Error("recommendation request failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError,
			newErrorResponse("Failed to generate recommendation", CodeInternalError, nil))
	}

	switch outcome.Kind {
	case domain.OutcomeContentBlocked:
		return ctx.JSON(http.StatusForbidden,
			newErrorResponse(outcome.Reasoning, CodeContentBlocked, &ErrorDetails{
				BlockedContent: outcome.BlockedItems,
				Suggestions:    outcome.Suggestions,
			}))

	case domain.OutcomeSecurityBlocked:
		return ctx.JSON(http.StatusForbidden,
			newErrorResponse("Security threat detected: User attempting to exploit system",
				CodeSecurityBlocked, &ErrorDetails{
					BlockedContent: outcome.BlockedItems,
					Suggestions:    outcome.Suggestions,
				}))

	case domain.OutcomeCycleReset:
		return ctx.JSON(http.StatusOK, newSuccessResponse(RecommendationData{
			Recommendation: fmt.Sprintf("All movies have been recommended! Starting fresh with: %s",
				strings.Join(outcome.AllTitles, ", ")),
			Reasoning: "All available movies have been recommended. Starting a new cycle.",
			Genre:     "Various",
			Year:      "Various",
		}))

	default:
		return ctx.JSON(http.StatusOK, newSuccessResponse(RecommendationData{
			Recommendation: outcome.Title,
			Reasoning:      outcome.Reasoning,
			Genre:          outcome.Genre,
			Year:           outcome.Year,
		}))
	}
}

type guardrailRequest struct {
	Description string   `json:"description"`
	IMDbURLs    []string `json:"imdbUrls"`
}

type guardrailResponse struct {
	IsValid        bool                      `json:"isValid"`
	Reasoning      string                    `json:"reasoning,omitempty"`
	BlockedContent []string                  `json:"blockedContent,omitempty"`
	Suggestions    []string                  `json:"suggestions,omitempty"`
	MovieInfos     []domain.MovieInfoWithURL `json:"movieInfos,omitempty"`
}

// Guardrail validates a description plus references without producing a
// recommendation.
// (POST /v1/guardrail)
func (h *Handler) Guardrail(ctx echo.Context) error {
	var req guardrailRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest,
			newErrorResponse("Invalid JSON in request body", CodeInvalidJSON, nil))
	}

	if strings.TrimSpace(req.Description) == "" && len(req.IMDbURLs) == 0 {
		return ctx.JSON(http.StatusBadRequest, guardrailResponse{
			IsValid:        false,
			Reasoning:      "Description is required.",
			BlockedContent: []string{"description"},
			Suggestions:    []string{"Please provide a description."},
		})
	}

	sessionID := uuid.NewString()
	reqCtx := context.WithValue(ctx.Request().Context(), logger.SessionIDKey, sessionID)
	ctx.SetRequest(ctx.Request().WithContext(reqCtx))

	result, err := h.recommendUsecase.Validate(reqCtx, usecase.RecommendInput{
		Description: req.Description,
		IMDbURLs:    req.IMDbURLs,
		SessionID:   sessionID,
	})
	if err != nil {
		h.logger.Error("guardrail validation failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError,
			newErrorResponse("Content validation failed", CodeInternalError, nil))
	}

	if !result.IsValid {
		return ctx.JSON(http.StatusForbidden, guardrailResponse{
			IsValid:        false,
			Reasoning:      result.Reasoning,
			BlockedContent: result.BlockedContent,
			Suggestions:    result.Suggestions,
		})
	}

	return ctx.JSON(http.StatusOK, guardrailResponse{
		IsValid:    true,
		MovieInfos: result.MovieInfos,
	})
}

type scrapeRequest struct {
	URL  string   `json:"url"`
	URLs []string `json:"urls"`
}

// Scrape extracts movie facts for one URL or a batch.
// (POST /v1/scrape)
func (h *Handler) Scrape(ctx echo.Context) error {
	var req scrapeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest,
			newErrorResponse("Invalid JSON in request body", CodeInvalidJSON, nil))
	}

	reqCtx := ctx.Request().Context()

	if len(req.URLs) > 0 {
		results := make([]domain.MovieInfoWithURL, 0, len(req.URLs))
		for _, u := range req.URLs {
			if u == "" {
				continue
			}
			info := h.extractor.MovieInfo(reqCtx, u)
			if info.Title == "" {
				continue
			}
			results = append(results, domain.MovieInfoWithURL{MovieInfo: info, URL: u})
		}
		return ctx.JSON(http.StatusOK, results)
	}

	if req.URL == "" {
		return ctx.JSON(http.StatusBadRequest,
			newErrorResponse("URL is required", CodeInvalidRequest, nil))
	}

	info := h.extractor.MovieInfo(reqCtx, req.URL)
	if info.Title == "" {
		return ctx.JSON(http.StatusNotFound,
			newErrorResponse("Failed to extract movie info from IMDB URL", CodeInvalidRequest, nil))
	}
	return ctx.JSON(http.StatusOK, info)
}

// ListMovies returns the curated baseline merged with session titles.
// (GET /v1/movies)
func (h *Handler) ListMovies(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string][]string{"movies": h.registry.List()})
}

type addMoviesRequest struct {
	IMDbMovies []string `json:"imdbMovies"`
}

// AddMovies unions user-contributed titles into the session registry.
// (POST /v1/movies)
func (h *Handler) AddMovies(ctx echo.Context) error {
	var req addMoviesRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest,
			newErrorResponse("Invalid request", CodeInvalidRequest, nil))
	}

	h.registry.Add(req.IMDbMovies...)
	return ctx.JSON(http.StatusOK, map[string]any{
		"success": true,
		"movies":  h.registry.Session(),
	})
}
