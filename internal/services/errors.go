package services

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"doctrone-backend/internal/apperr"
)

var (
	errUserNotFound = &apperr.NotFoundError{Message: "User not found"}
	errChatNotFound = &apperr.NotFoundError{Message: "Chat not found"}
)

// notFoundOr maps pgx.ErrNoRows to nf and passes any other error through.
func notFoundOr(err error, nf *apperr.NotFoundError) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nf
	}
	return err
}
