package terminology

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCodebookCSV(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codes.csv")
	if err := os.WriteFile(path, []byte(rows), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadCodebook(t *testing.T) {
	path := writeCodebookCSV(t, "code,description\nI10,Essential (primary) hypertension\nI50.9,\"Heart failure, unspecified\"\n")

	cb := LoadCodebook("ICD-10", path)
	if cb.Len() != 2 {
		t.Fatalf("expected 2 codes, got %d", cb.Len())
	}

	desc, ok := cb.Lookup("I10")
	if !ok || desc != "Essential (primary) hypertension" {
		t.Fatalf("unexpected lookup result: %q, %v", desc, ok)
	}

	// quoted field with an embedded comma
	desc, ok = cb.Lookup("I50.9")
	if !ok || desc != "Heart failure, unspecified" {
		t.Fatalf("unexpected lookup result: %q, %v", desc, ok)
	}

	if _, ok := cb.Lookup("Z99.99"); ok {
		t.Fatal("lookup of absent code succeeded")
	}
}

func TestLoadCodebookMissingFileFailsOpen(t *testing.T) {
	cb := LoadCodebook("ICD-10", filepath.Join(t.TempDir(), "missing.csv"))
	if cb == nil {
		t.Fatal("expected an empty codebook, got nil")
	}
	if cb.Len() != 0 {
		t.Fatalf("expected empty codebook, got %d codes", cb.Len())
	}
}

func TestDescribeAcrossCodebooks(t *testing.T) {
	icd10 := NewCodebook("ICD-10", map[string]string{"I10": "Essential (primary) hypertension"})
	cpt := NewCodebook("CPT", map[string]string{"93000": "Electrocardiogram complete"})

	if got := Describe("93000", icd10, cpt); got != "Electrocardiogram complete" {
		t.Fatalf("unexpected description: %q", got)
	}
	if got := Describe("Z99.99", icd10, cpt); got != UnknownDescription {
		t.Fatalf("expected unknown fallback, got %q", got)
	}
}

func TestDescribeOr(t *testing.T) {
	cb := NewCodebook("ICD-10", nil)
	if got := cb.DescribeOr("I10", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestCodeFormatValidators(t *testing.T) {
	valid := []string{"I10", "I21.4", "N18.2"}
	for _, code := range valid {
		if !IsValidICD10(code) {
			t.Fatalf("expected %s to be valid ICD-10", code)
		}
	}

	invalid := []string{"93000", "i10", "I1", "I10.", "ABC"}
	for _, code := range invalid {
		if IsValidICD10(code) {
			t.Fatalf("expected %s to be invalid ICD-10", code)
		}
	}

	if !IsValidCPT("93000") {
		t.Fatal("expected 93000 to be valid CPT")
	}
	for _, code := range []string{"9300", "930000", "I21.4", "93O00"} {
		if IsValidCPT(code) {
			t.Fatalf("expected %s to be invalid CPT", code)
		}
	}
}

func TestCategorizeICD10(t *testing.T) {
	if got := CategorizeICD10("I21.4"); got != "Diseases of the circulatory system" {
		t.Fatalf("unexpected chapter: %q", got)
	}
	if got := CategorizeICD10("E11.9"); got != "Endocrine, nutritional and metabolic diseases" {
		t.Fatalf("unexpected chapter: %q", got)
	}
	if got := CategorizeICD10("93000"); got != "Invalid ICD-10 code" {
		t.Fatalf("unexpected result for invalid code: %q", got)
	}
}

func TestCategorizeCPT(t *testing.T) {
	if got := CategorizeCPT("93000"); got != "Medicine" {
		t.Fatalf("unexpected section: %q", got)
	}
	if got := CategorizeCPT("80053"); got != "Pathology and Laboratory" {
		t.Fatalf("unexpected section: %q", got)
	}
	if got := CategorizeCPT("71046"); got != "Radiology" {
		t.Fatalf("unexpected section: %q", got)
	}
	if got := CategorizeCPT("I10"); got != "Invalid CPT code" {
		t.Fatalf("unexpected result for invalid code: %q", got)
	}
}
