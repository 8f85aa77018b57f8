package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
)

func TestPredictNotConfigured(t *testing.T) {
	client := New("", time.Second, 3)
	_, err := client.Predict(context.Background(), models.PredictRequest{Text: "note"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestPredictParsesBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode([]models.Prediction{
			{Code: "I10", Type: models.CodeTypeICD10, Confidence: 0.88},
		})
	}))
	defer server.Close()

	client := New(server.URL, time.Second, 1)
	preds, err := client.Predict(context.Background(), models.PredictRequest{Text: "hypertension"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(preds) != 1 || preds[0].Code != "I10" {
		t.Fatalf("unexpected predictions: %v", preds)
	}
}

func TestPredictParsesWrappedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"predictions":[{"code":"93000","type":"CPT","confidence":0.85}]}`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second, 1)
	preds, err := client.Predict(context.Background(), models.PredictRequest{Text: "ecg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(preds) != 1 || preds[0].Code != "93000" {
		t.Fatalf("unexpected predictions: %v", preds)
	}
}

func TestPredictRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "transient", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second, 2)
	_, err := client.Predict(context.Background(), models.PredictRequest{Text: "note"})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestPredictDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	client := New(server.URL, time.Second, 3)
	_, err := client.Predict(context.Background(), models.PredictRequest{Text: "note"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single call for a 4xx response, got %d", calls.Load())
	}
}
