package services

import (
	stderrors "errors"
	"fmt"

	"github.com/vytor/mathsprout/internal/aggregate"
	"github.com/vytor/mathsprout/internal/errors"
	"github.com/vytor/mathsprout/internal/progression"
)

// domainError turns an error from the aggregate or progression packages into
// an AppError. Anything unrecognised is internal.
func domainError(err error) *errors.AppError {
	var (
		malformed *aggregate.MalformedRecordError
		invalid   *progression.InvalidCriterionError
		missing   *progression.MissingCriterionError
	)
	switch {
	case stderrors.As(err, &malformed):
		return errors.NewMalformedRecordError(err)
	case stderrors.As(err, &invalid):
		return errors.NewInvalidCriterionError(err)
	case stderrors.As(err, &missing):
		return errors.NewNotFoundError("level criterion", fmt.Sprintf("%s level %d", missing.GameType, missing.Level))
	default:
		return errors.NewInternalError(err)
	}
}
