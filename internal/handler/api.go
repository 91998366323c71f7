package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"specfinder/internal/domain"
	"specfinder/internal/service"
)

// maxImportBytes bounds the size of an import request body.
const maxImportBytes = 16 << 20

// DirectoryHandler handles directory API requests
type DirectoryHandler struct {
	svc *service.DirectoryService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(svc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// ErrorResponse is the JSON shape of non-search error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SearchSpecialists answers GET /api/specialists/search?q=...&limit=...
// with a search envelope. The envelope always has success set; failures
// carry a message in error instead of results.
func (h *DirectoryHandler) SearchSpecialists(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeJSON(w, domain.ErrorEnvelope("limit must be a number"), http.StatusBadRequest)
			return
		}
		limit = n
	}

	results, err := h.svc.Search(r.Context(), query, limit)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			h.writeJSON(w, domain.ErrorEnvelope("search query is required"), http.StatusBadRequest)
			return
		}
		log.Printf("Search failed: %v", err)
		h.writeJSON(w, domain.ErrorEnvelope("search failed"), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, domain.OKEnvelope(domain.NormalizeQuery(query), results), http.StatusOK)
}

// ListSpecialties returns the distinct specialties in the directory.
func (h *DirectoryHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.svc.ListSpecialties(r.Context())
	if err != nil {
		log.Printf("Failed to list specialties: %v", err)
		h.writeError(w, "Failed to list specialties", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]any{"specialties": specialties}, http.StatusOK)
}

// ListSpecialists returns all specialists, optionally filtered by the
// specialty and country query parameters.
func (h *DirectoryHandler) ListSpecialists(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")
	country := r.URL.Query().Get("country")

	specialists, err := h.svc.ListSpecialists(r.Context(), specialty, country)
	if err != nil {
		log.Printf("Failed to list specialists: %v", err)
		h.writeError(w, "Failed to list specialists", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, specialists, http.StatusOK)
}

// GetSpecialist returns a single specialist
func (h *DirectoryHandler) GetSpecialist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid specialist ID", "Specialist ID is required", http.StatusBadRequest)
		return
	}

	spec, err := h.svc.GetSpecialist(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to get specialist: %v", err)
		h.writeError(w, "Failed to get specialist", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, spec, http.StatusOK)
}

// CreateSpecialist creates a new specialist
func (h *DirectoryHandler) CreateSpecialist(w http.ResponseWriter, r *http.Request) {
	var spec domain.Specialist
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.CreateSpecialist(r.Context(), &spec); err != nil {
		h.writeError(w, "Failed to create specialist", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, spec, http.StatusCreated)
}

// UpdateSpecialist updates an existing specialist
func (h *DirectoryHandler) UpdateSpecialist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid specialist ID", "Specialist ID is required", http.StatusBadRequest)
		return
	}

	var spec domain.Specialist
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	spec.ID = id

	if err := h.svc.UpdateSpecialist(r.Context(), &spec); err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		h.writeError(w, "Failed to update specialist", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, spec, http.StatusOK)
}

// DeleteSpecialist removes a specialist
func (h *DirectoryHandler) DeleteSpecialist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid specialist ID", "Specialist ID is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteSpecialist(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to delete specialist: %v", err)
		h.writeError(w, "Failed to delete specialist", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]string{"status": "deleted", "id": id}, http.StatusOK)
}

// ImportYAML replaces the dataset from a YAML request body
func (h *DirectoryHandler) ImportYAML(w http.ResponseWriter, r *http.Request) {
	h.importDataset(w, r, h.svc.ImportYAML, "YAML")
}

// ImportJSON replaces the dataset from a JSON request body
func (h *DirectoryHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	h.importDataset(w, r, h.svc.ImportJSON, "JSON")
}

func (h *DirectoryHandler) importDataset(w http.ResponseWriter, r *http.Request,
	parse func(ctx context.Context, data []byte) (*service.ImportResult, error), format string) {

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		h.writeError(w, "Failed to read request body", err.Error(), http.StatusBadRequest)
		return
	}

	result, err := parse(r.Context(), data)
	if err != nil {
		h.writeError(w, "Failed to import "+format, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, result, http.StatusOK)
}

// ExportJSON exports the dataset as JSON
func (h *DirectoryHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ExportJSON(r.Context())
	if err != nil {
		log.Printf("Failed to export JSON: %v", err)
		h.writeError(w, "Failed to export JSON", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=specialists.json")
	w.Write(data)
}

// ExportYAML exports the dataset as YAML
func (h *DirectoryHandler) ExportYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", "attachment; filename=specialists.yaml")

	if err := h.svc.ExportYAML(r.Context(), w); err != nil {
		log.Printf("Failed to export YAML: %v", err)
		// Can't write error response as we already set headers
		return
	}
}

// ExportCSV exports the dataset as CSV
func (h *DirectoryHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=specialists.csv")

	if err := h.svc.ExportCSV(r.Context(), w); err != nil {
		log.Printf("Failed to export CSV: %v", err)
		return
	}
}

// Health answers liveness checks.
func (h *DirectoryHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Count(r.Context())
	if err != nil {
		h.writeError(w, "Database unavailable", err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.writeJSON(w, map[string]any{"status": "ok", "specialists": count}, http.StatusOK)
}

// Helper methods

func (h *DirectoryHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *DirectoryHandler) writeError(w http.ResponseWriter, msg, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
