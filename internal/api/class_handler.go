package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shutter-safari/api/internal/api/shared"
	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassHandler handles class listing requests.
type ClassHandler struct {
	classService service.ClassService
	logger       *slog.Logger
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService service.ClassService, logger *slog.Logger) *ClassHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ClassHandler")
	}
	return &ClassHandler{
		classService: classService,
		logger:       logger.With(slog.String("component", "class_handler")),
	}
}

// ListApproved handles GET /classes.
func (h *ClassHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classService.ListApproved(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list classes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, classes)
}

// CreateClass handles POST /classes. The document is stored as sent.
func (h *ClassHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var class domain.Class
	if err := shared.DecodeJSON(w, r, &class); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	class.ID = primitive.NilObjectID
	class.SameEmailCount = 0

	result, err := h.classService.CreateClass(r.Context(), &class)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create class")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ListPopular handles GET /popular.
func (h *ClassHandler) ListPopular(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classService.ListPopular(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list popular classes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, classes)
}

// ListByInstructor handles GET /my-classes/{email}.
func (h *ClassHandler) ListByInstructor(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classService.ListByInstructor(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list classes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, classes)
}
