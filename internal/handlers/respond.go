package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"doctrone-backend/internal/apperr"
	"doctrone-backend/internal/middleware"
)

const maxBodyBytes = 1 << 20

var (
	errInvalidBody  = &apperr.ValidationError{Message: "Invalid request body"}
	errAccessDenied = &apperr.ForbiddenError{Message: "Access denied"}
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// pathID parses the chi URL parameter param, e.g. "Invalid user ID" on error.
func pathID(r *http.Request, param, label string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, &apperr.ValidationError{Message: "Invalid " + label + " ID"}
	}
	return id, nil
}

// ownerFromPath reads the {userID} parameter and checks it against the
// authenticated caller.
func ownerFromPath(r *http.Request) (int64, error) {
	userID, err := pathID(r, "userID", "user")
	if err != nil {
		return 0, err
	}
	if !canAccess(r, userID) {
		return 0, errAccessDenied
	}
	return userID, nil
}

// canAccess reports whether the authenticated caller, if any, is userID.
// Requests without authentication are allowed.
func canAccess(r *http.Request, userID int64) bool {
	authID, ok := middleware.GetUserID(r.Context())
	return !ok || authID == userID
}
