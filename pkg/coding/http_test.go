package coding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
	"github.com/gorilla/mux"
)

func testRouter() *mux.Router {
	router := mux.NewRouter()
	NewHTTPHandler(testService(), 1<<20).Register(router)
	return router
}

func TestHandlePredict(t *testing.T) {
	router := testRouter()

	body := `{"text":"Patient presents with chest pain. An ECG was performed."}`
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.PredictResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Predictions) == 0 {
		t.Fatal("expected predictions in response")
	}
}

func TestHandlePredictRejectsBadJSON(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePredictRejectsInvalidRequest(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"text":"note","threshold":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleExplain(t *testing.T) {
	router := testRouter()

	body := `{"text":"An ECG was performed.","code":"93000"}`
	req := httptest.NewRequest(http.MethodPost, "/explain", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var exp models.Explanation
	if err := json.Unmarshal(rec.Body.Bytes(), &exp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if exp.Code != "93000" {
		t.Fatalf("unexpected code in explanation: %q", exp.Code)
	}
}

func TestHandleCodeLookup(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/codes/I10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var info models.CodeInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if info.Type != models.CodeTypeICD10 {
		t.Fatalf("unexpected code info: %+v", info)
	}
}

func TestHandleRecordNotFound(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/predictions/no-such-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleEntities(t *testing.T) {
	router := testRouter()

	body := `{"text":"Patient presented with severe chest pain.","entity_types":["SEVERITY"]}`
	req := httptest.NewRequest(http.MethodPost, "/entities", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.EntityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Entities["SEVERITY"]) == 0 {
		t.Fatalf("expected severity entities, got %v", resp.Entities)
	}
}
