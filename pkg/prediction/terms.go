// Package prediction implements the rule-based billing code engine: key-term
// extraction, condition-to-code rules with randomized confidence intervals,
// ranking, and per-code explanations.
package prediction

import "strings"

// medicalTerms is the fixed vocabulary scanned during key-term extraction.
// Matching is plain case-insensitive containment; overlapping terms (e.g.
// "diabetes" and "type 2 diabetes") match independently.
var medicalTerms = []string{
	"myocardial infarction", "heart attack", "mi", "nstemi", "stemi",
	"acute coronary syndrome", "acs",
	"hypertension", "high blood pressure", "htn",
	"diabetes", "diabetes mellitus", "type 2 diabetes", "t2dm",
	"chronic kidney disease", "ckd",
	"heart failure", "hf", "chf",
	"coronary artery disease", "cad",
	"chest pain", "angina",
	"shortness of breath", "sob", "dyspnea",
	"gerd", "gastroesophageal reflux disease",
	"hyperlipidemia", "high cholesterol",
	"echocardiogram", "echo",
	"electrocardiogram", "ecg", "ekg",
	"cardiac catheterization", "cath",
	"coronary angiography", "angiogram",
	"chest x-ray", "cxr",
	"aspirin", "clopidogrel", "plavix",
	"atorvastatin", "lipitor",
	"metoprolol", "lopressor", "toprol",
	"lisinopril", "prinivil", "zestril",
	"metformin", "glucophage",
	"insulin",
	"heparin",
	"troponin", "ck-mb", "cardiac enzymes",
	"lipid panel", "cholesterol", "lipid",
	"complete blood count", "cbc",
	"basic metabolic panel", "bmp",
	"comprehensive metabolic panel", "cmp",
	"ccu", "cardiac care unit",
	"iv", "intravenous",
}

// KeyTermSet is the set of vocabulary terms found in a note, keyed by the
// lowercase term.
type KeyTermSet map[string]struct{}

// Has reports whether term is in the set.
func (s KeyTermSet) Has(term string) bool {
	_, ok := s[term]
	return ok
}

// HasAny reports whether any of the given terms is in the set.
func (s KeyTermSet) HasAny(terms ...string) bool {
	for _, t := range terms {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Terms returns the matched terms in vocabulary order.
func (s KeyTermSet) Terms() []string {
	out := make([]string, 0, len(s))
	for _, term := range medicalTerms {
		if s.Has(term) {
			out = append(out, term)
		}
	}
	return out
}

// ExtractKeyTerms scans text for the fixed medical vocabulary. Deterministic:
// identical text always produces the identical set.
func ExtractKeyTerms(text string) KeyTermSet {
	lower := strings.ToLower(text)
	set := make(KeyTermSet)
	for _, term := range medicalTerms {
		if strings.Contains(lower, term) {
			set[term] = struct{}{}
		}
	}
	return set
}
