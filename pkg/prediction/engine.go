package prediction

import (
	"math/rand"
	"strings"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
	"github.com/PaulCertified/medical-code-prediction/pkg/terminology"
)

// Engine evaluates the diagnosis and procedure rule tables against a note.
// It holds only immutable codebooks after construction and is safe for
// concurrent use; the confidence draws go through math/rand's locked global
// source.
type Engine struct {
	icd10 *terminology.Codebook
	cpt   *terminology.Codebook
}

// NewEngine builds an engine over the loaded codebooks. Either book may be
// empty; descriptions then fall back to the rule defaults.
func NewEngine(icd10, cpt *terminology.Codebook) *Engine {
	return &Engine{icd10: icd10, cpt: cpt}
}

// Predict evaluates the selected rule tables and returns every fired rule as
// an unranked candidate. Confidence is sampled uniformly from the rule's
// interval on every call, so repeated calls with identical input yield
// different confidences for the same code. No trigger hits yields an empty
// slice, never an error.
func (e *Engine) Predict(text string, keyTerms KeyTermSet, codeType string) []models.Prediction {
	lower := strings.ToLower(text)

	var out []models.Prediction
	if codeType == models.SelectICD10 || codeType == models.SelectBoth || codeType == "" {
		out = append(out, e.evaluate(icd10Rules, e.icd10, keyTerms, lower)...)
	}
	if codeType == models.SelectCPT || codeType == models.SelectBoth || codeType == "" {
		out = append(out, e.evaluate(cptRules, e.cpt, keyTerms, lower)...)
	}
	return out
}

func (e *Engine) evaluate(rules []rule, book *terminology.Codebook, keyTerms KeyTermSet, lowerText string) []models.Prediction {
	var preds []models.Prediction
	for _, r := range rules {
		if !r.fires(keyTerms, lowerText) {
			continue
		}
		preds = append(preds, models.Prediction{
			Code:        r.code,
			Type:        r.codeType,
			Description: book.DescribeOr(r.code, r.defaultDesc),
			Confidence:  uniform(r.lo, r.hi),
		})
	}
	return preds
}

// confidenceInterval reports the sampling interval for a known code, checking
// the diagnosis table first. Used by the explainer to re-sample confidence.
func confidenceInterval(code string) (lo, hi float64, ok bool) {
	for _, r := range icd10Rules {
		if r.code == code {
			return r.lo, r.hi, true
		}
	}
	for _, r := range cptRules {
		if r.code == code {
			return r.lo, r.hi, true
		}
	}
	return 0, 0, false
}

// uniform draws from [lo, hi). rand's global source is safe for concurrent
// callers.
func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func containsSubstring(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}
