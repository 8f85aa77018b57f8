// Command predict runs the code prediction pipeline over a clinical note
// from a file or stdin and prints the ranked predictions as JSON. It never
// touches the network or any backing store.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/config"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/logger"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
	"github.com/PaulCertified/medical-code-prediction/pkg/prediction"
	"github.com/PaulCertified/medical-code-prediction/pkg/preprocessing"
	"github.com/PaulCertified/medical-code-prediction/pkg/terminology"
)

func main() {
	var (
		inputPath = flag.String("input", "", "path to a clinical note; reads stdin when omitted")
		threshold = flag.Float64("threshold", 0, "minimum confidence to keep a prediction (default from config)")
		topK      = flag.Int("top-k", 0, "maximum number of predictions to return (default from config)")
		codeType  = flag.String("type", "", "code systems to predict: icd10, cpt, or both (default from config)")
		explain   = flag.Bool("explain", false, "also print an explanation for each predicted code")
		entities  = flag.Bool("entities", false, "also print extracted clinical entities")
	)
	flag.Parse()

	logger.Init()
	cfg := config.Load()

	text, err := readNote(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read note: %v\n", err)
		os.Exit(1)
	}
	if text == "" {
		fmt.Fprintln(os.Stderr, "empty note")
		os.Exit(1)
	}

	if *threshold == 0 {
		*threshold = cfg.Prediction.Threshold
	}
	if *topK == 0 {
		*topK = cfg.Prediction.TopK
	}
	if *codeType == "" {
		*codeType = cfg.Prediction.CodeType
	}

	icd10 := terminology.LoadCodebook(models.CodeTypeICD10, cfg.ICD10CodesPath)
	cpt := terminology.LoadCodebook(models.CodeTypeCPT, cfg.CPTCodesPath)
	engine := prediction.NewEngine(icd10, cpt)

	preprocessed := preprocessing.Preprocess(text, preprocessing.Options{
		Lowercase:           cfg.Preprocessing.Lowercase,
		RemovePunctuation:   cfg.Preprocessing.RemovePunctuation,
		ExpandAbbreviations: cfg.Preprocessing.ExpandAbbreviations,
	})
	keyTerms := prediction.ExtractKeyTerms(preprocessed)
	preds := engine.Predict(preprocessed, keyTerms, *codeType)
	ranked := prediction.Rank(preds, *threshold, *topK, *codeType)

	out := map[string]interface{}{
		"predictions": ranked,
	}

	if *entities {
		out["entities"] = preprocessing.ExtractEntities(preprocessed, cfg.NER.Labels)
	}

	if *explain {
		explainer := prediction.NewExplainer(icd10, cpt)
		explanations := make([]models.Explanation, 0, len(ranked))
		for _, p := range ranked {
			explanations = append(explanations, explainer.Explain(text, p.Code))
		}
		out["explanations"] = explanations
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		os.Exit(1)
	}
}

func readNote(path string) (string, error) {
	if path == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
