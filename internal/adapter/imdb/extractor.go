package imdb

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"

	"reelguard/internal/domain"
)

const (
	// Realistic browser user-agent; IMDb serves a reduced page to unknown
	// clients.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// Allow intermediaries to reuse a response for a day; the markup we
	// scrape does not change often enough to matter.
	cacheControl = "max-age=86400"

	maxPageBytes = 4 << 20
)

var (
	h1Pattern       = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)
	ogTitlePattern  = regexp.MustCompile(`(?i)<meta[^>]*property="og:title"[^>]*content="([^"]+)"`)
	titleTagPattern = regexp.MustCompile(`(?i)<title>(.*?)</title>`)
	siteSuffix      = regexp.MustCompile(`(?i)\s*-\s*IMDb.*$`)
	trailingYear    = regexp.MustCompile(`\s*\(\d{4}\).*$`)
	parenYear       = regexp.MustCompile(`\((\d{4})\)`)
	fourDigits      = regexp.MustCompile(`\d{4}`)
	runtimeListItem = regexp.MustCompile(`(?i)<li[^>]*>\s*<span[^>]*>Runtime</span>\s*<span[^>]*>([^<]+)</span>`)
)

// Extractor scrapes structured movie facts out of IMDb title pages. Every
// extraction is best effort: network and parse failures degrade to an empty
// record, never an error, so callers can always proceed.
type Extractor struct {
	client    *http.Client
	limiter   *rate.Limiter
	cache     *expirable.LRU[string, domain.MovieInfo]
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewExtractor constructs an extractor with an in-process result cache and an
// outbound politeness limiter shared across all calls.
func NewExtractor(client *http.Client, cacheSize int, cacheTTL time.Duration, perSecond float64, logger *slog.Logger) *Extractor {
	return &Extractor{
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), 1),
		cache:     expirable.NewLRU[string, domain.MovieInfo](cacheSize, nil, cacheTTL),
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// MovieInfo fetches the page behind one canonical URL and extracts whatever
// facts the markup yields. A prior result within the cache TTL is reused so
// repeated enrichment of the same reference does not hammer the site.
func (e *Extractor) MovieInfo(ctx context.Context, url string) domain.MovieInfo {
	if cached, ok := e.cache.Get(url); ok {
		return cached
	}

	raw, ok := e.fetch(ctx, url)
	if !ok {
		return domain.MovieInfo{}
	}

	info := e.parse(raw)
	e.cache.Add(url, info)
	return info
}

// Title is the cheap title-only variant: plain regex scanning, no DOM pass.
// Used where nothing but the title is needed.
func (e *Extractor) Title(ctx context.Context, url string) string {
	raw, ok := e.fetch(ctx, url)
	if !ok {
		return ""
	}

	title := ""
	if m := h1Pattern.FindStringSubmatch(raw); m != nil {
		title = strings.TrimSpace(m[1])
	}
	if title == "" {
		if m := ogTitlePattern.FindStringSubmatch(raw); m != nil {
			title = strings.TrimSpace(m[1])
		}
	}
	if title == "" {
		if m := titleTagPattern.FindStringSubmatch(raw); m != nil {
			title = siteSuffix.ReplaceAllString(strings.TrimSpace(m[1]), "")
		}
	}
	return strings.TrimSpace(trailingYear.ReplaceAllString(title, ""))
}

func (e *Extractor) fetch(ctx context.Context, url string) (string, bool) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		e.logger.Warn("failed to build scrape request", "url", url, "error", err)
		return "", false
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Cache-Control", cacheControl)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("failed to fetch movie page", "url", url, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.logger.Warn("movie page returned non-success status", "url", url, "status", resp.StatusCode)
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		e.logger.Warn("failed to read movie page", "url", url, "error", err)
		return "", false
	}
	return string(body), true
}

// page bundles the per-fetch parse state every field strategy draws from.
type page struct {
	doc *goquery.Document
	raw string
	ld  *linkedData
}

// fieldStrategy is one independent attempt at extracting a field. Strategies
// run in order; the first non-empty result wins.
type fieldStrategy func(*page) string

func firstNonEmpty(p *page, strategies ...fieldStrategy) string {
	for _, s := range strategies {
		if v := strings.TrimSpace(s(p)); v != "" {
			return v
		}
	}
	return ""
}

func (e *Extractor) parse(raw string) domain.MovieInfo {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		e.logger.Warn("failed to parse movie page", "error", err)
		return domain.MovieInfo{}
	}

	p := &page{doc: doc, raw: raw, ld: parseLinkedData(doc)}

	info := domain.MovieInfo{
		Title:       extractTitle(p),
		Year:        extractYear(p),
		Genre:       extractGenres(p),
		Description: e.clean(extractDescription(p)),
		Rating:      extractRating(p),
		Runtime:     extractRuntime(p),
		Director:    extractDirector(p),
		Cast:        extractCast(p),
	}
	return info
}

// clean strips residual markup and entities from scraped free text before it
// is folded into prompts.
func (e *Extractor) clean(s string) string {
	if s == "" {
		return ""
	}
	return normalizeWS(stripTags(e.sanitizer.Sanitize(s)))
}

func extractTitle(p *page) string {
	title := firstNonEmpty(p,
		func(p *page) string { return p.doc.Find("h1").First().Text() },
		func(p *page) string {
			content, _ := p.doc.Find(`meta[property="og:title"]`).Attr("content")
			return content
		},
		func(p *page) string {
			return siteSuffix.ReplaceAllString(strings.TrimSpace(p.doc.Find("title").First().Text()), "")
		},
	)
	return strings.TrimSpace(trailingYear.ReplaceAllString(title, ""))
}

func extractYear(p *page) string {
	return firstNonEmpty(p,
		func(p *page) string {
			text := strings.TrimSpace(p.doc.Find(`a[href^='/title/tt'][href*='releaseinfo']`).First().Text())
			return fourDigits.FindString(text)
		},
		func(p *page) string {
			if m := parenYear.FindStringSubmatch(p.raw); m != nil {
				return m[1]
			}
			return ""
		},
		func(p *page) string {
			if p.ld == nil || len(p.ld.DatePublished) < 4 {
				return ""
			}
			return p.ld.DatePublished[:4]
		},
	)
}

func extractGenres(p *page) []string {
	seen := make(map[string]struct{})
	var genres []string
	p.doc.Find(`a[href^='/search/title?genres=']`).Each(func(_ int, s *goquery.Selection) {
		g := strings.TrimSpace(s.Text())
		if g == "" {
			return
		}
		if _, ok := seen[g]; ok {
			return
		}
		seen[g] = struct{}{}
		genres = append(genres, g)
	})
	if len(genres) == 0 && p.ld != nil {
		genres = p.ld.genres()
	}
	return genres
}

func extractDescription(p *page) string {
	return firstNonEmpty(p,
		func(p *page) string { return p.doc.Find(`span[data-testid="plot-l"]`).First().Text() },
		func(p *page) string {
			content, _ := p.doc.Find(`meta[name="description"]`).Attr("content")
			return content
		},
		func(p *page) string {
			content, _ := p.doc.Find(`meta[property="og:description"]`).Attr("content")
			return content
		},
	)
}

func extractRating(p *page) string {
	return firstNonEmpty(p,
		func(p *page) string {
			return p.doc.Find(`span[data-testid="hero-rating-bar__aggregate-rating__score"]`).First().Text()
		},
		func(p *page) string { return p.doc.Find(`span[aria-label*="rating"]`).First().Text() },
	)
}

// runtimeSelectors are tried in order; IMDb has shuffled this markup more
// than once.
var runtimeSelectors = []string{
	`li[data-testid="title-techspec_runtime"] span:last-child`,
	`li[data-testid="title-techspec_runtime"] div:last-child`,
	`li[data-testid="title-techspec_runtime"] .ipc-metadata-list-item__content-container`,
	`li:contains("Runtime") span:last-child`,
	`li:contains("Runtime") div:last-child`,
}

func extractRuntime(p *page) string {
	return firstNonEmpty(p,
		func(p *page) string {
			for _, sel := range runtimeSelectors {
				v := strings.TrimSpace(p.doc.Find(sel).First().Text())
				if v != "" && v != "Runtime" {
					return v
				}
			}
			return ""
		},
		func(p *page) string {
			if p.ld == nil {
				return ""
			}
			return p.ld.Duration
		},
		func(p *page) string {
			if m := runtimeListItem.FindStringSubmatch(p.raw); m != nil {
				return m[1]
			}
			return ""
		},
	)
}

func extractDirector(p *page) string {
	return firstNonEmpty(p,
		func(p *page) string {
			return p.doc.Find(`a[data-testid="title-pc-principal-credit"]`).First().Text()
		},
		func(p *page) string {
			if p.ld == nil {
				return ""
			}
			return p.ld.directorName()
		},
	)
}

func extractCast(p *page) []string {
	seen := make(map[string]struct{})
	var cast []string
	p.doc.Find(`a[data-testid='title-cast-item__actor']`).Each(func(_ int, s *goquery.Selection) {
		actor := strings.TrimSpace(s.Text())
		if actor == "" {
			return
		}
		if _, ok := seen[actor]; ok {
			return
		}
		seen[actor] = struct{}{}
		cast = append(cast, actor)
	})
	if len(cast) == 0 && p.ld != nil {
		cast = p.ld.actorNames()
	}
	return cast
}

// linkedData is the subset of IMDb's embedded schema.org block we fall back
// to when the visible markup yields nothing. Several fields switch between
// single-object and array form, hence the untyped members.
type linkedData struct {
	Genre         any    `json:"genre"`
	Duration      string `json:"duration"`
	DatePublished string `json:"datePublished"`
	Director      any    `json:"director"`
	Actor         any    `json:"actor"`
}

func parseLinkedData(doc *goquery.Document) *linkedData {
	script := doc.Find(`script[type="application/ld+json"]`).First().Text()
	if strings.TrimSpace(script) == "" {
		return nil
	}
	var ld linkedData
	if err := json.Unmarshal([]byte(script), &ld); err != nil {
		return nil
	}
	return &ld
}

func (ld *linkedData) genres() []string {
	switch v := ld.Genre.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (ld *linkedData) directorName() string {
	switch v := ld.Director.(type) {
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
	case []any:
		if len(v) > 0 {
			if obj, ok := v[0].(map[string]any); ok {
				if name, ok := obj["name"].(string); ok {
					return name
				}
			}
		}
	}
	return ""
}

func (ld *linkedData) actorNames() []string {
	list, ok := ld.Actor.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			if name, ok := obj["name"].(string); ok && name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}
