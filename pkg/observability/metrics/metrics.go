package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	predictRequests     atomic.Int64
	predictionsReturned atomic.Int64
	explainRequests     atomic.Int64
	entityRequests      atomic.Int64
	remoteFallbacks     atomic.Int64
	cacheHits           atomic.Int64
	icd10CodebookSize   atomic.Int64
	cptCodebookSize     atomic.Int64
)

func Init() {}

func IncPredictRequests() {
	predictRequests.Add(1)
}

func AddPredictionsReturned(n int) {
	predictionsReturned.Add(int64(n))
}

func IncExplainRequests() {
	explainRequests.Add(1)
}

func IncEntityRequests() {
	entityRequests.Add(1)
}

func IncRemoteFallbacks() {
	remoteFallbacks.Add(1)
}

func IncCacheHits() {
	cacheHits.Add(1)
}

func ObserveCodebookSizes(icd10, cpt int) {
	icd10CodebookSize.Store(int64(icd10))
	cptCodebookSize.Store(int64(cpt))
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP coding_predict_requests_total Number of prediction requests served.\n")
	fmt.Fprintf(w, "# TYPE coding_predict_requests_total counter\n")
	fmt.Fprintf(w, "coding_predict_requests_total %d\n", predictRequests.Load())

	fmt.Fprintf(w, "# HELP coding_predictions_returned_total Number of code predictions returned across all requests.\n")
	fmt.Fprintf(w, "# TYPE coding_predictions_returned_total counter\n")
	fmt.Fprintf(w, "coding_predictions_returned_total %d\n", predictionsReturned.Load())

	fmt.Fprintf(w, "# HELP coding_explain_requests_total Number of explanation requests served.\n")
	fmt.Fprintf(w, "# TYPE coding_explain_requests_total counter\n")
	fmt.Fprintf(w, "coding_explain_requests_total %d\n", explainRequests.Load())

	fmt.Fprintf(w, "# HELP coding_entity_requests_total Number of entity extraction requests served.\n")
	fmt.Fprintf(w, "# TYPE coding_entity_requests_total counter\n")
	fmt.Fprintf(w, "coding_entity_requests_total %d\n", entityRequests.Load())

	fmt.Fprintf(w, "# HELP coding_remote_fallbacks_total Number of requests where remote inference failed and local rules answered.\n")
	fmt.Fprintf(w, "# TYPE coding_remote_fallbacks_total counter\n")
	fmt.Fprintf(w, "coding_remote_fallbacks_total %d\n", remoteFallbacks.Load())

	fmt.Fprintf(w, "# HELP coding_cache_hits_total Number of prediction requests answered from cache.\n")
	fmt.Fprintf(w, "# TYPE coding_cache_hits_total counter\n")
	fmt.Fprintf(w, "coding_cache_hits_total %d\n", cacheHits.Load())

	fmt.Fprintf(w, "# HELP coding_icd10_codebook_size Number of ICD-10 codes loaded.\n")
	fmt.Fprintf(w, "# TYPE coding_icd10_codebook_size gauge\n")
	fmt.Fprintf(w, "coding_icd10_codebook_size %d\n", icd10CodebookSize.Load())

	fmt.Fprintf(w, "# HELP coding_cpt_codebook_size Number of CPT codes loaded.\n")
	fmt.Fprintf(w, "# TYPE coding_cpt_codebook_size gauge\n")
	fmt.Fprintf(w, "coding_cpt_codebook_size %d\n", cptCodebookSize.Load())
}
