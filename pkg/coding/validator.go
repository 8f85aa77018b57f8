package coding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
)

var (
	errEmptyText       = errors.New("text is required")
	errBadThreshold    = errors.New("threshold must be between 0 and 1")
	errBadTopK         = errors.New("top_k must not be negative")
	errBadCodeType     = errors.New("code_type must be icd10, cpt or both")
	errEmptyCode       = errors.New("code is required")
	errEmptyEntityText = errors.New("text is required")
)

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func validatePredictRequest(req models.PredictRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return ValidationError{reason: errEmptyText}
	}
	if req.Threshold < 0 || req.Threshold > 1 {
		return ValidationError{reason: fmt.Errorf("threshold %.2f out of range: %w", req.Threshold, errBadThreshold)}
	}
	if req.TopK < 0 {
		return ValidationError{reason: errBadTopK}
	}
	switch req.CodeType {
	case "", models.SelectICD10, models.SelectCPT, models.SelectBoth:
	default:
		return ValidationError{reason: fmt.Errorf("code_type '%s' not supported: %w", req.CodeType, errBadCodeType)}
	}
	return nil
}

func validateExplainRequest(req models.ExplainRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return ValidationError{reason: errEmptyText}
	}
	if strings.TrimSpace(req.Code) == "" {
		return ValidationError{reason: errEmptyCode}
	}
	return nil
}

func validateEntityRequest(req models.EntityRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return ValidationError{reason: errEmptyEntityText}
	}
	return nil
}
