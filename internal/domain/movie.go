package domain

import "strings"

// MovieInfo carries the facts scraped from one external movie page.
// Extraction is best-effort per field: any subset may be empty.
type MovieInfo struct {
	Title       string   `json:"title"`
	Year        string   `json:"year"`
	Genre       []string `json:"genre"`
	Description string   `json:"description"`
	Rating      string   `json:"rating"`
	Runtime     string   `json:"runtime"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
}

// MovieInfoWithURL pairs scraped facts with the canonical URL they came from.
type MovieInfoWithURL struct {
	MovieInfo
	URL string `json:"url"`
}

// IsZero reports whether no field was extracted at all.
func (m MovieInfo) IsZero() bool {
	return m.Title == "" && m.Year == "" && len(m.Genre) == 0 &&
		m.Description == "" && m.Rating == "" && m.Runtime == "" &&
		m.Director == "" && len(m.Cast) == 0
}

// ClassifierText folds title, genres, and description into the single blob
// the guardrail inspects. Empty fields are skipped.
func (m MovieInfo) ClassifierText() string {
	parts := make([]string, 0, len(m.Genre)+2)
	if m.Title != "" {
		parts = append(parts, m.Title)
	}
	for _, g := range m.Genre {
		if g != "" {
			parts = append(parts, g)
		}
	}
	if m.Description != "" {
		parts = append(parts, m.Description)
	}
	return strings.Join(parts, ". ")
}

// CatalogEntry renders the movie as one line of the recommendation catalog,
// e.g. `Inception [Sci-Fi, Thriller]: A thief who steals corporate secrets...`.
func (m MovieInfoWithURL) CatalogEntry() string {
	var sb strings.Builder
	if m.Title != "" {
		sb.WriteString(m.Title)
	} else {
		sb.WriteString(m.URL)
	}
	if len(m.Genre) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(m.Genre, ", "))
		sb.WriteString("]")
	}
	if m.Description != "" {
		sb.WriteString(": ")
		sb.WriteString(m.Description)
	}
	return sb.String()
}

// BaselineMovies is the curated catalog every recommendation draws from,
// independent of session-contributed titles.
var BaselineMovies = []string{
	"The Silence of the Lambs",
	"Pulp Fiction",
	"The Shawshank Redemption",
	"Inception",
	"Jurassic Park",
	"The Lord of the Rings: The Fellowship of the Ring",
	"Fight Club",
	"Titanic",
	"The Matrix",
	"Forrest Gump",
}
