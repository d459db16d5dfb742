package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/naka-gawa/repo-detective/internal/api"
	"github.com/naka-gawa/repo-detective/internal/usecase"
)

// FixApplier runs a fix job for a repository.
type FixApplier interface {
	ApplyFixes(ctx context.Context, repoFullName string, improvements []string) (*usecase.FixResult, error)
}

// AdminHandler serves the admin endpoints.
type AdminHandler struct {
	fixer  FixApplier
	logger *log.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(fixer FixApplier, logger *log.Logger) *AdminHandler {
	return &AdminHandler{fixer: fixer, logger: logger}
}

// ApplyFixes serves POST /api/admin/fixes.
func (h *AdminHandler) ApplyFixes(w http.ResponseWriter, r *http.Request) {
	var req api.FixRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	result, err := h.fixer.ApplyFixes(r.Context(), req.Repository, req.Improvements)
	if err != nil {
		logError(h.logger, r, err)
		SendError(w, err.Error(), statusFor(err))
		return
	}
	SendJSON(w, http.StatusOK, result)
}
