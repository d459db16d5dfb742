package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/naka-gawa/repo-detective/internal/api"
	"github.com/naka-gawa/repo-detective/internal/domain"
)

// RepositoryAnalyzer analyzes a single resolved repository.
type RepositoryAnalyzer interface {
	AnalyzeRepository(ctx context.Context, target domain.Target) (*domain.AnalysisResult, error)
}

// AnalyzeHandler serves POST /api/analyze.
type AnalyzeHandler struct {
	analyzer     RepositoryAnalyzer
	credentialed bool
	logger       *log.Logger
}

// NewAnalyzeHandler creates the handler. credentialed reports whether a
// GitHub token is configured; without one every request fails with 500.
func NewAnalyzeHandler(analyzer RepositoryAnalyzer, credentialed bool, logger *log.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:     analyzer,
		credentialed: credentialed,
		logger:       logger,
	}
}

// Analyze resolves the posted target and returns its analysis.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req api.AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Target == "" {
		SendError(w, `Missing "target" (owner/repo or full URL)`, http.StatusBadRequest)
		return
	}
	if !h.credentialed {
		err := &domain.ConfigurationError{Setting: "GITHUB_TOKEN"}
		logError(h.logger, r, err)
		SendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	target, err := domain.ResolveTarget(req.Target)
	if err != nil {
		SendError(w, err.Error(), statusFor(err))
		return
	}
	if !target.IsRepository() {
		SendError(w, "Use format owner/repo", http.StatusBadRequest)
		return
	}

	result, err := h.analyzer.AnalyzeRepository(r.Context(), target)
	if err != nil {
		logError(h.logger, r, err)
		SendError(w, err.Error(), statusFor(err))
		return
	}
	SendJSON(w, http.StatusOK, api.NewAnalyzeResponse(result))
}
