// internal/services/errors.go
package services

import (
	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/utils"
)

func validationError(err error) error {
	return apperror.Wrap(apperror.CodeValidation, err, "validation failed").
		WithDetails(utils.GetValidationErrors(err))
}

func persistenceError(err error, message string) *apperror.Error {
	return apperror.Wrap(apperror.CodePersistenceFailure, err, message)
}
