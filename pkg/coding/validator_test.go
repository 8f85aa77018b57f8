package coding

import (
	"errors"
	"testing"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
)

func TestValidatePredictRequest(t *testing.T) {
	ok := models.PredictRequest{Text: "chest pain", Threshold: 0.5, TopK: 5, CodeType: "both"}
	if err := validatePredictRequest(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []models.PredictRequest{
		{Text: "   "},
		{Text: "note", Threshold: 1.5},
		{Text: "note", Threshold: -0.1},
		{Text: "note", TopK: -1},
		{Text: "note", CodeType: "hcpcs"},
	}
	for _, req := range bad {
		err := validatePredictRequest(req)
		if err == nil {
			t.Fatalf("expected validation error for %+v", req)
		}
		if !IsValidationError(err) {
			t.Fatalf("expected a ValidationError, got %T", err)
		}
	}
}

func TestValidateExplainRequest(t *testing.T) {
	if err := validateExplainRequest(models.ExplainRequest{Text: "note", Code: "I10"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateExplainRequest(models.ExplainRequest{Code: "I10"}); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := validateExplainRequest(models.ExplainRequest{Text: "note"}); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidationErrorUnwraps(t *testing.T) {
	err := validatePredictRequest(models.PredictRequest{Text: "note", Threshold: 2})
	if !errors.Is(err, errBadThreshold) {
		t.Fatalf("expected errBadThreshold in chain, got %v", err)
	}
}
