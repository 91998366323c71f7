package handler

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"

	"specfinder/internal/client"
	"specfinder/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler serves the search and results pages. Results are fetched
// through the search client against the configured endpoint, so the pages
// inherit its fallback behavior when the endpoint is down.
type PageHandler struct {
	search *client.Client
	tmpl   *template.Template
}

// NewPageHandler parses the embedded templates and wires the search client.
func NewPageHandler(search *client.Client) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{search: search, tmpl: tmpl}, nil
}

// resultRow is one rendered specialist card. Fields are precomputed so the
// template stays free of fallback logic.
type resultRow struct {
	Name        string
	Specialty   string
	Institution string
	Location    string
	Interests   string
	Conditions  []string
	Email       string
	Phone       string
	Website     string
}

// searchPage is the view model for both the idle search page and the
// results view.
type searchPage struct {
	Query    string
	Searched bool
	Error    string
	Fallback bool
	Rows     []resultRow
	Total    int
}

// SearchPage answers GET / with the idle search form.
func (h *PageHandler) SearchPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, searchPage{})
}

// Results answers GET /search?q=... with the rendered result list. A blank
// query redirects back to the idle page instead of searching.
//
// Each request runs in its own short-lived session, so the supersession
// check can never fire on this path; the session exists for long-lived
// interactive views that reuse it across searches, and the page goes
// through it so both paths share one state machine.
func (h *PageHandler) Results(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if domain.NormalizeQuery(query) == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session := client.NewSession(h.search)
	res, err := session.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, client.ErrEmptyQuery) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		// Context cancellation: the browser is gone, nothing to render.
		return
	}

	page := searchPage{
		Query:    res.Query,
		Searched: true,
		Error:    res.ErrorMessage,
		Fallback: res.Fallback,
		Total:    res.Total,
	}
	for i := range res.Specialists {
		page.Rows = append(page.Rows, buildRow(&res.Specialists[i]))
	}

	h.render(w, page)
}

func buildRow(s *domain.Specialist) resultRow {
	institution := s.Institution
	if institution == "" {
		institution = "N/A"
	}
	return resultRow{
		Name:        s.DisplayName(),
		Specialty:   s.Specialty,
		Institution: institution,
		Location:    s.Location(),
		Interests:   s.ResearchInterests,
		Conditions:  s.Conditions,
		Email:       s.Email,
		Phone:       s.Phone,
		Website:     s.Website,
	}
}

func (h *PageHandler) render(w http.ResponseWriter, page searchPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "search.html", page); err != nil {
		log.Printf("Failed to render page: %v", err)
	}
}
