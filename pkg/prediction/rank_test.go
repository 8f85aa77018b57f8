package prediction

import (
	"testing"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
)

func rankInput() []models.Prediction {
	return []models.Prediction{
		{Code: "R07.9", Type: models.CodeTypeICD10, Confidence: 0.72},
		{Code: "I21.4", Type: models.CodeTypeICD10, Confidence: 0.91},
		{Code: "93000", Type: models.CodeTypeCPT, Confidence: 0.85},
		{Code: "96365", Type: models.CodeTypeCPT, Confidence: 0.45},
	}
}

func TestRankOrdersByConfidenceDescending(t *testing.T) {
	ranked := Rank(rankInput(), 0, 10, models.SelectBoth)

	if len(ranked) != 4 {
		t.Fatalf("expected 4 predictions, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Confidence > ranked[i-1].Confidence {
			t.Fatalf("predictions out of order at %d: %v", i, ranked)
		}
	}
	if ranked[0].Code != "I21.4" {
		t.Fatalf("expected I21.4 first, got %s", ranked[0].Code)
	}
}

func TestRankAppliesThreshold(t *testing.T) {
	ranked := Rank(rankInput(), 0.5, 10, models.SelectBoth)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 predictions above threshold, got %d", len(ranked))
	}
	for _, p := range ranked {
		if p.Confidence < 0.5 {
			t.Fatalf("prediction below threshold survived: %v", p)
		}
	}
}

func TestRankTruncatesToTopK(t *testing.T) {
	ranked := Rank(rankInput(), 0, 2, models.SelectBoth)

	if len(ranked) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(ranked))
	}
	if ranked[0].Code != "I21.4" || ranked[1].Code != "93000" {
		t.Fatalf("top 2 wrong: %v", ranked)
	}
}

func TestRankTopKZeroYieldsEmpty(t *testing.T) {
	if got := Rank(rankInput(), 0, 0, models.SelectBoth); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if got := Rank(rankInput(), 0, -1, models.SelectBoth); len(got) != 0 {
		t.Fatalf("expected empty result for negative top-k, got %v", got)
	}
}

func TestRankFiltersCodeType(t *testing.T) {
	ranked := Rank(rankInput(), 0, 10, models.SelectCPT)

	if len(ranked) != 2 {
		t.Fatalf("expected 2 CPT predictions, got %v", ranked)
	}
	for _, p := range ranked {
		if p.Type != models.CodeTypeCPT {
			t.Fatalf("non-CPT prediction survived filter: %v", p)
		}
	}
}

func TestRankStableOnTies(t *testing.T) {
	preds := []models.Prediction{
		{Code: "A", Confidence: 0.8},
		{Code: "B", Confidence: 0.8},
		{Code: "C", Confidence: 0.8},
	}
	ranked := Rank(preds, 0, 10, models.SelectBoth)
	if ranked[0].Code != "A" || ranked[1].Code != "B" || ranked[2].Code != "C" {
		t.Fatalf("tie order not preserved: %v", ranked)
	}
}
