package preprocessing

import "testing"

func TestExtractEntitiesDiagnosis(t *testing.T) {
	entities := ExtractEntities("Patient presented with chest pain and shortness of breath.", nil)

	diagnoses := entities[LabelDiagnosis]
	if len(diagnoses) != 1 {
		t.Fatalf("expected 1 diagnosis entity, got %v", diagnoses)
	}
	if diagnoses[0] != "chest pain and shortness of breath" {
		t.Fatalf("unexpected diagnosis entity: %q", diagnoses[0])
	}
}

func TestExtractEntitiesSeverityAndDuration(t *testing.T) {
	entities := ExtractEntities("Severe chest pain lasting two hours.", nil)

	if len(entities[LabelSeverity]) == 0 {
		t.Fatal("expected a severity entity")
	}
	if entities[LabelSeverity][0] != "Severe" {
		t.Fatalf("unexpected severity entity: %q", entities[LabelSeverity][0])
	}
	if len(entities[LabelDuration]) == 0 {
		t.Fatal("expected a duration entity")
	}
}

func TestExtractEntitiesRespectsRequestedLabels(t *testing.T) {
	entities := ExtractEntities("Patient diagnosed with severe pneumonia.", []string{"DIAGNOSIS"})

	if _, ok := entities[LabelSeverity]; ok {
		t.Fatal("severity label extracted despite not being requested")
	}
	if len(entities[LabelDiagnosis]) == 0 {
		t.Fatal("expected a diagnosis entity")
	}
}

func TestExtractEntitiesEmptyText(t *testing.T) {
	entities := ExtractEntities("", []string{"DIAGNOSIS"})
	if entities[LabelDiagnosis] == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entities[LabelDiagnosis]) != 0 {
		t.Fatalf("expected no entities, got %v", entities[LabelDiagnosis])
	}
}

func TestFilterEntities(t *testing.T) {
	filtered := FilterEntities(map[string][]string{
		LabelDiagnosis: {"the", "pneumonia", "x"},
	}, 2)

	if len(filtered[LabelDiagnosis]) != 1 || filtered[LabelDiagnosis][0] != "pneumonia" {
		t.Fatalf("expected only pneumonia to survive, got %v", filtered[LabelDiagnosis])
	}
}

func TestNormalizeEntities(t *testing.T) {
	normalized := NormalizeEntities(map[string][]string{
		LabelDiagnosis: {"The Pneumonia.", "pneumonia"},
	})

	list := normalized[LabelDiagnosis]
	if len(list) != 1 || list[0] != "pneumonia" {
		t.Fatalf("expected deduplicated lowercase entity, got %v", list)
	}
}
