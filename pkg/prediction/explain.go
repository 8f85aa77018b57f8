package prediction

import (
	"strings"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
	"github.com/PaulCertified/medical-code-prediction/pkg/terminology"
)

const maxRelevantSentences = 3

// codeEvidence holds the hand-authored keyword list and feature-importance
// breakdown for a code the explainer knows how to justify.
type codeEvidence struct {
	keywords   []string
	importance map[string]float64
}

var knownEvidence = map[string]codeEvidence{
	"I21.4": {
		keywords: []string{"nstemi", "non-st elevation", "acute coronary syndrome", "myocardial infarction", "troponin", "chest pain"},
		importance: map[string]float64{
			"troponin elevation":    0.35,
			"chest pain":            0.25,
			"ECG changes":           0.20,
			"clinical presentation": 0.15,
			"risk factors":          0.05,
		},
	},
	"I10": {
		keywords: []string{"hypertension", "high blood pressure", "htn", "elevated blood pressure"},
		importance: map[string]float64{
			"blood pressure readings": 0.40,
			"medication history":      0.30,
			"clinical history":        0.20,
			"risk factors":            0.10,
		},
	},
	"E11.9": {
		keywords: []string{"diabetes", "type 2", "t2dm", "hyperglycemia", "glucose", "hba1c"},
		importance: map[string]float64{
			"diabetes history": 0.35,
			"glucose levels":   0.25,
			"HbA1c":            0.20,
			"medications":      0.15,
			"symptoms":         0.05,
		},
	},
	"93000": {
		keywords: []string{"ecg", "ekg", "electrocardiogram"},
		importance: map[string]float64{
			"procedure mention":   0.60,
			"clinical indication": 0.30,
			"context":             0.10,
		},
	},
	"93454": {
		keywords: []string{"coronary angiography", "angiogram", "cardiac catheterization", "cath"},
		importance: map[string]float64{
			"procedure mention":   0.50,
			"clinical indication": 0.30,
			"context":             0.20,
		},
	},
	"80053": {
		keywords: []string{"comprehensive metabolic panel", "cmp", "metabolic panel"},
		importance: map[string]float64{
			"test mention":        0.60,
			"clinical indication": 0.25,
			"context":             0.15,
		},
	},
}

// Explainer justifies a predicted code against the note it came from.
type Explainer struct {
	icd10 *terminology.Codebook
	cpt   *terminology.Codebook
}

// NewExplainer builds an explainer over the loaded codebooks.
func NewExplainer(icd10, cpt *terminology.Codebook) *Explainer {
	return &Explainer{icd10: icd10, cpt: cpt}
}

// Explain produces a human-readable justification for code given the original
// note text. Unknown codes yield a generic low-confidence explanation with a
// single catch-all factor, never an error. The returned confidence is
// re-sampled from the rule interval, not copied from any earlier prediction.
func (e *Explainer) Explain(text, code string) models.Explanation {
	exp := models.Explanation{
		Code:         code,
		RelevantText: []string{},
	}

	if desc, ok := e.icd10.Lookup(code); ok {
		exp.Description = desc
		exp.Type = models.CodeTypeICD10
	} else if desc, ok := e.cpt.Lookup(code); ok {
		exp.Description = desc
		exp.Type = models.CodeTypeCPT
	} else {
		exp.Description = terminology.UnknownDescription
		exp.Type = models.CodeTypeUnknown
	}

	evidence, known := knownEvidence[code]
	if known {
		lo, hi, ok := confidenceInterval(code)
		if !ok {
			lo, hi = 0.60, 0.70
		}
		exp.Confidence = uniform(lo, hi)
		exp.FeatureImportance = cloneImportance(evidence.importance)
	} else {
		exp.Confidence = uniform(0.60, 0.70)
		exp.FeatureImportance = map[string]float64{"unknown factors": 1.0}
	}

	// Simple period split; the explainer is deliberately cruder than the
	// abbreviation-aware segmentation used for entity extraction.
	for _, raw := range strings.Split(text, ".") {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, kw := range evidence.keywords {
			if strings.Contains(lower, kw) {
				exp.RelevantText = append(exp.RelevantText, sentence)
				break
			}
		}
		if len(exp.RelevantText) == maxRelevantSentences {
			break
		}
	}

	return exp
}

func cloneImportance(src map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
