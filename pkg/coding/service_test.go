package coding

import (
	"context"
	"testing"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/config"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
	"github.com/PaulCertified/medical-code-prediction/pkg/terminology"
)

func testService() *Service {
	cfg := config.Load()
	cfg.ICD10CodesPath = ""
	cfg.CPTCodesPath = ""

	icd10 := terminology.NewCodebook(models.CodeTypeICD10, map[string]string{
		"I10":   "Essential (primary) hypertension",
		"R07.9": "Chest pain, unspecified",
	})
	cpt := terminology.NewCodebook(models.CodeTypeCPT, map[string]string{
		"93000": "Electrocardiogram complete",
	})
	return NewService(cfg, icd10, cpt)
}

func TestPredictServesLocalRules(t *testing.T) {
	svc := testService()

	resp, err := svc.Predict(context.Background(), models.PredictRequest{
		Text: "Patient presents with chest pain. History of hypertension. An ECG was performed.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Source != SourceLocal {
		t.Fatalf("expected local source, got %q", resp.Source)
	}
	if len(resp.Predictions) == 0 {
		t.Fatal("expected predictions")
	}
	if len(resp.Predictions) > 5 {
		t.Fatalf("default top-k not applied: %d predictions", len(resp.Predictions))
	}
	for i := 1; i < len(resp.Predictions); i++ {
		if resp.Predictions[i].Confidence > resp.Predictions[i-1].Confidence {
			t.Fatalf("predictions not ranked: %v", resp.Predictions)
		}
	}

	codes := map[string]bool{}
	for _, p := range resp.Predictions {
		codes[p.Code] = true
		if p.Confidence < 0.5 {
			t.Fatalf("prediction below default threshold: %v", p)
		}
	}
	for _, want := range []string{"R07.9", "I10", "93000"} {
		if !codes[want] {
			t.Fatalf("expected code %s, got %v", want, codes)
		}
	}

	if resp.Entities == nil {
		t.Fatal("expected entities in response")
	}
}

func TestPredictRejectsEmptyText(t *testing.T) {
	svc := testService()

	_, err := svc.Predict(context.Background(), models.PredictRequest{Text: "  "})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPredictCodeTypeFilter(t *testing.T) {
	svc := testService()

	resp, err := svc.Predict(context.Background(), models.PredictRequest{
		Text:     "Hypertension. An ECG was performed.",
		CodeType: models.SelectICD10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range resp.Predictions {
		if p.Type != models.CodeTypeICD10 {
			t.Fatalf("non ICD-10 prediction in filtered response: %v", p)
		}
	}
}

func TestExplainService(t *testing.T) {
	svc := testService()

	exp, err := svc.Explain(context.Background(), models.ExplainRequest{
		Text: "An ECG was performed for chest pain.",
		Code: "93000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp.Type != models.CodeTypeCPT {
		t.Fatalf("expected CPT type, got %q", exp.Type)
	}
	if len(exp.RelevantText) == 0 {
		t.Fatal("expected relevant text")
	}

	if _, err := svc.Explain(context.Background(), models.ExplainRequest{Text: "note"}); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExtractEntitiesService(t *testing.T) {
	svc := testService()

	resp, err := svc.ExtractEntities(context.Background(), models.EntityRequest{
		Text:        "Patient presented with severe chest pain.",
		EntityTypes: []string{"SEVERITY"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Entities["SEVERITY"]) == 0 {
		t.Fatal("expected a severity entity")
	}
	if _, ok := resp.Entities["DIAGNOSIS"]; ok {
		t.Fatal("unrequested label present in response")
	}
}

func TestLookupCode(t *testing.T) {
	svc := testService()

	info := svc.LookupCode("I10")
	if info.Type != models.CodeTypeICD10 || info.Description != "Essential (primary) hypertension" {
		t.Fatalf("unexpected lookup result: %+v", info)
	}
	if info.Category != "Diseases of the circulatory system" {
		t.Fatalf("unexpected category: %q", info.Category)
	}

	info = svc.LookupCode("93000")
	if info.Type != models.CodeTypeCPT || info.Category != "Medicine" {
		t.Fatalf("unexpected lookup result: %+v", info)
	}

	// valid format but not in any codebook
	info = svc.LookupCode("Z99.9")
	if info.Type != models.CodeTypeICD10 || info.Description != terminology.UnknownDescription {
		t.Fatalf("unexpected lookup result: %+v", info)
	}

	info = svc.LookupCode("not-a-code")
	if info.Type != models.CodeTypeUnknown {
		t.Fatalf("unexpected lookup result: %+v", info)
	}
}
