package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/entrygroup/gallery/internal/domain"
	"github.com/entrygroup/gallery/internal/groupcode"
	"github.com/entrygroup/gallery/internal/service"
)

// Handler holds the HTTP handlers for the gallery
type Handler struct {
	groups service.GroupService
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(groups service.GroupService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		groups: groups,
		logger: logger,
	}
}

// Index handles GET / - the group submission form
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	if err := pageTemplates.ExecuteTemplate(w, "index", nil); err != nil {
		h.logger.Error("failed to render index page", zap.Error(err))
	}
}

// CreateGroup handles POST /create - the HTML form submission
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	created, err := h.groups.CreateGroup(r.Context(), r.PostFormValue("urls"))
	if errors.Is(err, service.ErrNoValidURLs) {
		http.Error(w, "No valid project URLs submitted", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("failed to create group", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	if err := pageTemplates.ExecuteTemplate(w, "created", created); err != nil {
		h.logger.Error("failed to render created page", zap.Error(err))
	}
}

// ViewGroup handles GET /{code} - the resolved gallery page
func (h *Handler) ViewGroup(w http.ResponseWriter, r *http.Request, code string) {
	record, err := h.groups.GetGroup(r.Context(), code)
	if errors.Is(err, service.ErrGroupNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("failed to load group", zap.String("code", code), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	view := domain.GroupView{
		Code:    code,
		Results: h.groups.ResolveGroup(r.Context(), record),
	}

	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	if err := pageTemplates.ExecuteTemplate(w, "group", view); err != nil {
		h.logger.Error("failed to render group page", zap.String("code", code), zap.Error(err))
	}
}

// Root dispatches GET / and GET /{code}
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		h.Index(w, r)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/")
	if r.Method == http.MethodGet && groupcode.Pattern.MatchString(code) {
		h.ViewGroup(w, r, code)
		return
	}

	http.NotFound(w, r)
}

// CreateGroupAPI handles POST /api/groups
func (h *Handler) CreateGroupAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	created, err := h.groups.CreateGroup(r.Context(), strings.Join(req.URLs, "\n"))
	if errors.Is(err, service.ErrNoValidURLs) {
		http.Error(w, "No valid project URLs submitted", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("failed to create group", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(created); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// GetGroupAPI handles GET /api/groups/{code} - resolves the group and
// returns the ordered result list as JSON
func (h *Handler) GetGroupAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/api/groups/")
	if code == "" {
		http.Error(w, "Group code is required", http.StatusBadRequest)
		return
	}

	record, err := h.groups.GetGroup(r.Context(), code)
	if errors.Is(err, service.ErrGroupNotFound) {
		http.Error(w, "Group not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load group", zap.String("code", code), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	view := domain.GroupView{
		Code:    code,
		Results: h.groups.ResolveGroup(r.Context(), record),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}
