package prediction

import (
	"sort"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
)

// Rank orders candidate predictions for presentation: optional code-type
// pre-filter, stable sort descending by confidence (ties keep input order),
// threshold filter, then truncation to topK. topK <= 0 yields an empty list.
func Rank(preds []models.Prediction, threshold float64, topK int, codeType string) []models.Prediction {
	filtered := make([]models.Prediction, 0, len(preds))
	for _, p := range preds {
		switch codeType {
		case models.SelectICD10:
			if p.Type != models.CodeTypeICD10 {
				continue
			}
		case models.SelectCPT:
			if p.Type != models.CodeTypeCPT {
				continue
			}
		}
		filtered = append(filtered, p)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})

	out := make([]models.Prediction, 0, len(filtered))
	for _, p := range filtered {
		if p.Confidence >= threshold {
			out = append(out, p)
		}
	}

	if topK < 0 {
		topK = 0
	}
	if len(out) > topK {
		out = out[:topK]
	}
	return out
}
