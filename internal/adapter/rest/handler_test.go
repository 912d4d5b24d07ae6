package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelguard/internal/adapter/rest"
	"reelguard/internal/domain"
	"reelguard/internal/state"
	"reelguard/internal/usecase"
)

type stubRecommend struct {
	outcome    *domain.RecommendationOutcome
	execErr    error
	validation *usecase.ValidationResult
	valErr     error
	lastInput  usecase.RecommendInput
}

func (s *stubRecommend) Execute(ctx context.Context, input usecase.RecommendInput) (*domain.RecommendationOutcome, error) {
	s.lastInput = input
	return s.outcome, s.execErr
}

func (s *stubRecommend) Validate(ctx context.Context, input usecase.RecommendInput) (*usecase.ValidationResult, error) {
	s.lastInput = input
	return s.validation, s.valErr
}

type stubExtractor struct {
	infos map[string]domain.MovieInfo
}

func (s *stubExtractor) MovieInfo(ctx context.Context, url string) domain.MovieInfo {
	return s.infos[url]
}

func newTestServer(uc usecase.RecommendUsecase, extractor usecase.MetadataExtractor) *echo.Echo {
	e := echo.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := state.NewMovieRegistry([]string{"Inception", "Up"})
	rest.RegisterRoutes(e, rest.NewHandler(uc, extractor, registry, logger))
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func TestHealth(t *testing.T) {
	e := newTestServer(&stubRecommend{}, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", payload["status"])
}

func TestRecommend_InvalidJSON(t *testing.T) {
	e := newTestServer(&stubRecommend{}, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/recommend", `{"description": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, payload["success"])
	errBody := payload["error"].(map[string]any)
	assert.Equal(t, rest.CodeInvalidJSON, errBody["code"])
}

func TestRecommend_MissingDescription(t *testing.T) {
	e := newTestServer(&stubRecommend{}, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/recommend", `{"description": "  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := payload["error"].(map[string]any)
	assert.Equal(t, rest.CodeMissingDescription, errBody["code"])
	assert.Equal(t, "Description is required", errBody["message"])
}

func TestRecommend_Success(t *testing.T) {
	uc := &stubRecommend{outcome: domain.NewRecommendation("Paddington")}
	e := newTestServer(uc, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/recommend",
		`{"description": "a cozy family movie", "imdbUrls": ["https://www.imdb.com/title/tt1109624/"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	data := payload["data"].(map[string]any)
	assert.Equal(t, "Paddington", data["recommendation"])
	assert.Equal(t, "Various", data["genre"])
	assert.Equal(t, "Various", data["year"])

	assert.Equal(t, "a cozy family movie", uc.lastInput.Description)
	assert.Equal(t, []string{"https://www.imdb.com/title/tt1109624/"}, uc.lastInput.IMDbURLs)
	assert.NotEmpty(t, uc.lastInput.SessionID, "each request gets a generated session id")
}

func TestRecommend_ContentBlocked(t *testing.T) {
	uc := &stubRecommend{outcome: domain.NewContentBlocked(
		"Content blocked: too violent",
		[]string{"gore movies"},
		[]string{"Try a family movie instead."},
	)}
	e := newTestServer(uc, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/recommend", `{"description": "gore movies"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	errBody := payload["error"].(map[string]any)
	assert.Equal(t, rest.CodeContentBlocked, errBody["code"])
	assert.Equal(t, "Content blocked: too violent", errBody["message"])
	details := errBody["details"].(map[string]any)
	assert.Equal(t, []any{"gore movies"}, details["blockedContent"])
	assert.Equal(t, []any{"Try a family movie instead."}, details["suggestions"])
}

func TestRecommend_SecurityBlocked(t *testing.T) {
	uc := &stubRecommend{outcome: domain.NewSecurityBlocked(
		[]string{"drop table movies"},
		usecase.SecurityBlockedSuggestions,
	)}
	e := newTestServer(uc, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/recommend", `{"description": "drop table movies"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	errBody := payload["error"].(map[string]any)
	assert.Equal(t, rest.CodeSecurityBlocked, errBody["code"])
	assert.Equal(t, "Security threat detected: User attempting to exploit system", errBody["message"])
}

func TestRecommend_CycleReset(t *testing.T) {
	uc := &stubRecommend{outcome: domain.NewCycleReset([]string{"Inception", "Up"})}
	e := newTestServer(uc, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/recommend", `{"description": "anything"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "All movies have been recommended! Starting fresh with: Inception, Up", data["recommendation"])
	assert.Equal(t, "All available movies have been recommended. Starting a new cycle.", data["reasoning"])
}

func TestRecommend_UsecaseError(t *testing.T) {
	uc := &stubRecommend{execErr: errors.New("upstream unavailable")}
	e := newTestServer(uc, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/recommend", `{"description": "anything"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errBody := payload["error"].(map[string]any)
	assert.Equal(t, rest.CodeInternalError, errBody["code"])
	assert.Equal(t, "Failed to generate recommendation", errBody["message"],
		"internal detail must not leak to the client")
}

func TestGuardrail_MissingEverything(t *testing.T) {
	e := newTestServer(&stubRecommend{}, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/guardrail", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, payload["isValid"])
	assert.Equal(t, "Description is required.", payload["reasoning"])
	assert.Equal(t, []any{"description"}, payload["blockedContent"])
	assert.Equal(t, []any{"Please provide a description."}, payload["suggestions"])
}

func TestGuardrail_Valid(t *testing.T) {
	uc := &stubRecommend{validation: &usecase.ValidationResult{
		IsValid: true,
		MovieInfos: []domain.MovieInfoWithURL{{
			MovieInfo: domain.MovieInfo{Title: "Paddington"},
			URL:       "https://www.imdb.com/title/tt1109624/",
		}},
	}}
	e := newTestServer(uc, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/guardrail",
		`{"description": "a cozy family movie", "imdbUrls": ["https://www.imdb.com/title/tt1109624/"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["isValid"])
	infos := payload["movieInfos"].([]any)
	require.Len(t, infos, 1)
	assert.Equal(t, "Paddington", infos[0].(map[string]any)["title"])
}

func TestGuardrail_Blocked(t *testing.T) {
	uc := &stubRecommend{validation: &usecase.ValidationResult{
		IsValid:        false,
		Reasoning:      "Some movies were blocked by content filter",
		BlockedContent: []string{"Kill"},
		Suggestions:    usecase.BlockedReferenceSuggestions,
	}}
	e := newTestServer(uc, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/guardrail", `{"description": "action movies"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, false, payload["isValid"])
	assert.Equal(t, []any{"Kill"}, payload["blockedContent"])
}

func TestScrape_Single(t *testing.T) {
	url := "https://www.imdb.com/title/tt0088846/"
	extractor := &stubExtractor{infos: map[string]domain.MovieInfo{
		url: {Title: "Brazil", Year: "1985"},
	}}
	e := newTestServer(&stubRecommend{}, extractor)

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/scrape", `{"url": "`+url+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Brazil", payload["title"])
	assert.Equal(t, "1985", payload["year"])
}

func TestScrape_SingleNotFound(t *testing.T) {
	e := newTestServer(&stubRecommend{}, &stubExtractor{})

	rec, _ := doJSON(t, e, http.MethodPost, "/v1/scrape",
		`{"url": "https://www.imdb.com/title/tt9999999/"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScrape_MissingURL(t *testing.T) {
	e := newTestServer(&stubRecommend{}, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodPost, "/v1/scrape", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := payload["error"].(map[string]any)
	assert.Equal(t, rest.CodeInvalidRequest, errBody["code"])
}

func TestScrape_BatchFiltersFailures(t *testing.T) {
	good := "https://www.imdb.com/title/tt0088846/"
	bad := "https://www.imdb.com/title/tt9999999/"
	extractor := &stubExtractor{infos: map[string]domain.MovieInfo{
		good: {Title: "Brazil"},
	}}
	e := newTestServer(&stubRecommend{}, extractor)

	req := httptest.NewRequest(http.MethodPost, "/v1/scrape",
		strings.NewReader(`{"urls": ["`+good+`", "`+bad+`"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var results []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Brazil", results[0]["title"])
	assert.Equal(t, good, results[0]["url"])
}

func TestMovies_ListAndAdd(t *testing.T) {
	e := newTestServer(&stubRecommend{}, &stubExtractor{})

	rec, payload := doJSON(t, e, http.MethodGet, "/v1/movies", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"Inception", "Up"}, payload["movies"])

	rec, payload = doJSON(t, e, http.MethodPost, "/v1/movies",
		`{"imdbMovies": ["Paddington", "Inception", "Paddington"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, []any{"Paddington", "Inception"}, payload["movies"])

	rec, payload = doJSON(t, e, http.MethodGet, "/v1/movies", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"Inception", "Up", "Paddington"}, payload["movies"])
}
