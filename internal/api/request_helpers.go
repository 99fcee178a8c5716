package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shutter-safari/api/internal/api/middleware"
	"github.com/shutter-safari/api/internal/api/shared"
	"github.com/shutter-safari/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// getPathObjectID extracts and parses a hex ObjectID path parameter.
func getPathObjectID(r *http.Request, paramName string) (primitive.ObjectID, error) {
	return domain.ParseID(paramName, chi.URLParam(r, paramName))
}

// decodeAndValidate decodes the JSON body into v and validates it, writing a
// 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// callerEmail returns the email of the authenticated caller, or "" for
// unauthenticated routes.
func callerEmail(r *http.Request) string {
	email, _ := middleware.GetEmail(r)
	return email
}
