package preprocessing

import "testing"

func TestCleanCollapsesWhitespace(t *testing.T) {
	got := Clean("  Patient   admitted\n\twith chest pain  ", true, false)
	want := "patient admitted with chest pain"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCleanRemovesPunctuation(t *testing.T) {
	got := Clean("BP: 140/90, HR 88.", false, true)
	want := "BP 14090 HR 88"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPreprocessExpandsAbbreviations(t *testing.T) {
	got := Preprocess("Pt c/o SOB and HTN.", DefaultOptions())
	want := "patient complains of shortness of breath and hypertension."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPreprocessZeroOptionsOnlyCleans(t *testing.T) {
	got := Preprocess("  Pt with DM  ", Options{})
	want := "Pt with DM"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSegmentSentences(t *testing.T) {
	sentences := SegmentSentences("Patient admitted with chest pain. Started on aspirin. Stable overnight.")
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "Patient admitted with chest pain." {
		t.Fatalf("unexpected first sentence: %q", sentences[0])
	}
}

func TestSegmentSentencesGuardsInitials(t *testing.T) {
	sentences := SegmentSentences("Seen by J. Smith today. Follow up next week.")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "Seen by J. Smith today." {
		t.Fatalf("initial was split: %q", sentences[0])
	}
}

func TestTokenizePreservesHyphenatedTerms(t *testing.T) {
	tokens := Tokenize("chest x-ray shows non-specific findings")
	found := false
	for _, tok := range tokens {
		if tok == "x-ray" {
			found = true
		}
		if tok == "hyph" {
			t.Fatalf("guard marker leaked into tokens: %v", tokens)
		}
	}
	if !found {
		t.Fatalf("expected x-ray as a single token, got %v", tokens)
	}
}

func TestExpandAbbreviationsPrefersLongestMatch(t *testing.T) {
	// "cp" must not fire inside longer words
	got := ExpandAbbreviations("recap of visit")
	if got != "recap of visit" {
		t.Fatalf("abbreviation expanded inside a word: %q", got)
	}
}

func TestAbbreviationCount(t *testing.T) {
	if AbbreviationCount() < 100 {
		t.Fatalf("expected a substantial abbreviation table, got %d entries", AbbreviationCount())
	}
}
