package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"minebrief/internal/core"
	"minebrief/internal/export"
	"minebrief/internal/sources"
	"minebrief/internal/synthesis"
)

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// APIInfoResponse describes the available endpoints.
type APIInfoResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// ParaphraseRequest carries the articles to synthesize.
type ParaphraseRequest struct {
	Articles []core.Article `json:"articles"`
}

// NewsSearchResponse carries search results for one commodity query.
type NewsSearchResponse struct {
	Query        string             `json:"query"`
	TotalResults int                `json:"total_results"`
	Articles     []core.NewsArticle `json:"articles"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleAPIInfo(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, APIInfoResponse{
		Message: "Commodity News API",
		Endpoints: map[string]string{
			"/news/search":     "Search for commodity news",
			"/news/paraphrase": "Paraphrase news articles",
			"/export/docx":     "Export article to DOCX",
			"/export/pdf":      "Export article to PDF",
		},
	})
}

// handleSearchNews handles GET /news/search. Results are always restricted to
// the last seven days.
func (s *Server) handleSearchNews(w http.ResponseWriter, r *http.Request) {
	commodity := r.URL.Query().Get("commodity")
	if commodity == "" {
		s.respondError(w, http.StatusBadRequest, "Query parameter 'commodity' is required")
		return
	}

	providerName := r.URL.Query().Get("provider")
	provider, err := s.providers.For(providerName)
	if err != nil {
		if errors.Is(err, sources.ErrUnknownProvider) || errors.Is(err, sources.ErrMissingAPIKey) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, "Failed to resolve search provider")
		return
	}

	query := fmt.Sprintf("%s commodity news", commodity)
	s.log.Info("Searching for commodity news", "query", query, "provider", provider.Name())

	articles, err := provider.Search(r.Context(), query)
	if err != nil {
		s.log.Error("News search failed", "provider", provider.Name(), "error", err)
		s.respondError(w, http.StatusServiceUnavailable, fmt.Sprintf("Search service unavailable: %s", err))
		return
	}

	if articles == nil {
		articles = []core.NewsArticle{}
	}

	s.respondJSON(w, http.StatusOK, NewsSearchResponse{
		Query:        fmt.Sprintf("%s (last 7 days)", query),
		TotalResults: len(articles),
		Articles:     articles,
	})
}

// handleParaphrase handles POST /news/paraphrase.
func (s *Server) handleParaphrase(w http.ResponseWriter, r *http.Request) {
	var req ParaphraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.log.Info("Synthesizing articles", "count", len(req.Articles))

	result, err := s.synthesizer.Synthesize(r.Context(), req.Articles)
	if err != nil {
		var relErr *synthesis.RelevanceError
		switch {
		case errors.Is(err, synthesis.ErrNoArticles):
			s.respondError(w, http.StatusBadRequest, "At least one article is required")
		case errors.As(err, &relErr):
			s.respondError(w, http.StatusBadRequest, relErr.Message)
		default:
			s.log.Error("Article synthesis failed", "error", err)
			s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Article synthesis failed: %s", err))
		}
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleExportDOCX(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, export.DOCX, export.DOCXContentType, export.DOCXFilename)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, export.PDF, export.PDFContentType, export.PDFFilename)
}

// handleExport decodes a synthesis result from the body and streams the
// rendered document back as an attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, render func(core.SynthesisResult) ([]byte, error), contentType, filename string) {
	var result core.SynthesisResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	data, err := render(result)
	if err != nil {
		s.log.Error("Document export failed", "filename", filename, "error", err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Export failed: %s", err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log.Error("Failed to write document response", "error", err)
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes an error response in a consistent shape
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"status":  status,
			"message": message,
		},
	})
}
