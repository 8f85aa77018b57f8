package models

import "time"

// Code families served by the prediction engine.
const (
	CodeTypeICD10   = "ICD-10"
	CodeTypeCPT     = "CPT"
	CodeTypeUnknown = "Unknown"
)

// Selectors accepted by the predict operation.
const (
	SelectICD10 = "icd10"
	SelectCPT   = "cpt"
	SelectBoth  = "both"
)

// PredictRequest is the wire form of a code prediction request.
type PredictRequest struct {
	Text      string  `json:"text"`
	Threshold float64 `json:"threshold,omitempty"`
	TopK      int     `json:"top_k,omitempty"`
	CodeType  string  `json:"code_type,omitempty"`
}

// Prediction is one candidate billing code with its heuristic confidence.
// Confidence is a randomized placeholder drawn from the triggering rule's
// interval, not a calibrated probability.
type Prediction struct {
	Code        string  `json:"code"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// PredictResponse carries ranked predictions plus any extracted entities.
type PredictResponse struct {
	Predictions []Prediction        `json:"predictions"`
	Entities    map[string][]string `json:"entities,omitempty"`
	Source      string              `json:"source,omitempty"`
}

// ExplainRequest asks for a justification of a single predicted code.
type ExplainRequest struct {
	Text string `json:"text"`
	Code string `json:"code"`
}

// Explanation ties a predicted code back to source text spans and a fixed
// per-code feature-importance breakdown.
type Explanation struct {
	Code              string             `json:"code"`
	Description       string             `json:"description"`
	Type              string             `json:"type"`
	Confidence        float64            `json:"confidence"`
	RelevantText      []string           `json:"relevant_text"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
}

// EntityRequest is the wire form of a standalone entity extraction request.
type EntityRequest struct {
	Text        string   `json:"text"`
	EntityTypes []string `json:"entity_types,omitempty"`
}

// EntityResponse maps entity labels to the matched spans.
type EntityResponse struct {
	Entities map[string][]string `json:"entities"`
}

// CodeInfo is the response of the standalone code lookup utility.
type CodeInfo struct {
	Code        string `json:"code"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// Event is the audit event published to Kafka after a request is served.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // predict, explain
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}
