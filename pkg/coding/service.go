// Package coding composes the prediction pipeline into the service consumed
// by the HTTP layer: normalize, extract, predict (remote or local), rank,
// explain, and audit.
package coding

import (
	"context"

	"github.com/PaulCertified/medical-code-prediction/pkg/common/config"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/kafka"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/logger"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
	"github.com/PaulCertified/medical-code-prediction/pkg/inference"
	"github.com/PaulCertified/medical-code-prediction/pkg/observability/metrics"
	"github.com/PaulCertified/medical-code-prediction/pkg/prediction"
	"github.com/PaulCertified/medical-code-prediction/pkg/preprocessing"
	"github.com/PaulCertified/medical-code-prediction/pkg/terminology"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Prediction sources reported in responses and audit events.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

type Service struct {
	cfg       *config.Config
	icd10     *terminology.Codebook
	cpt       *terminology.Codebook
	engine    *prediction.Engine
	explainer *prediction.Explainer
	remote    *inference.Client

	// optional collaborators; nil disables the concern
	repo     *Repository
	producer *kafka.Producer
	cache    *Cache
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithRepository(repo *Repository) Option {
	return func(s *Service) { s.repo = repo }
}

func WithProducer(producer *kafka.Producer) Option {
	return func(s *Service) { s.producer = producer }
}

func WithCache(cache *Cache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithRemote(client *inference.Client) Option {
	return func(s *Service) { s.remote = client }
}

func NewService(cfg *config.Config, icd10, cpt *terminology.Codebook, opts ...Option) *Service {
	s := &Service{
		cfg:       cfg,
		icd10:     icd10,
		cpt:       cpt,
		engine:    prediction.NewEngine(icd10, cpt),
		explainer: prediction.NewExplainer(icd10, cpt),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict serves a code prediction request: preprocess, extract entities and
// key terms, evaluate rules (or the remote endpoint), rank. Auditing and
// caching are best-effort and never fail the request.
func (s *Service) Predict(ctx context.Context, req models.PredictRequest) (*models.PredictResponse, error) {
	if err := validatePredictRequest(req); err != nil {
		return nil, err
	}
	req = s.applyDefaults(req)

	if cached, ok := s.cache.Get(ctx, req); ok {
		metrics.IncCacheHits()
		return cached, nil
	}

	preprocessed := preprocessing.Preprocess(req.Text, preprocessing.Options{
		Lowercase:           s.cfg.Preprocessing.Lowercase,
		RemovePunctuation:   s.cfg.Preprocessing.RemovePunctuation,
		ExpandAbbreviations: s.cfg.Preprocessing.ExpandAbbreviations,
	})

	entities := preprocessing.ExtractEntities(preprocessed, s.cfg.NER.Labels)

	preds, source := s.predictCodes(ctx, req, preprocessed)
	ranked := prediction.Rank(preds, req.Threshold, req.TopK, req.CodeType)

	resp := &models.PredictResponse{
		Predictions: ranked,
		Entities:    entities,
		Source:      source,
	}

	metrics.IncPredictRequests()
	metrics.AddPredictionsReturned(len(ranked))

	s.cache.Set(ctx, req, resp)
	s.audit(ctx, req, resp)

	return resp, nil
}

// predictCodes prefers the remote endpoint when configured and falls back to
// the local rule engine on any remote failure (fail-open).
func (s *Service) predictCodes(ctx context.Context, req models.PredictRequest, preprocessed string) ([]models.Prediction, string) {
	if s.remote.Configured() {
		remoteReq := req
		remoteReq.Text = preprocessed
		preds, err := s.remote.Predict(ctx, remoteReq)
		if err == nil {
			return s.resolveDescriptions(preds), SourceRemote
		}
		logger.Log.WithError(err).Warn("remote inference failed, falling back to local rules")
		metrics.IncRemoteFallbacks()
	}

	keyTerms := prediction.ExtractKeyTerms(preprocessed)
	return s.engine.Predict(preprocessed, keyTerms, req.CodeType), SourceLocal
}

// resolveDescriptions overrides remote descriptions with the loaded codebook
// entry when the code is known.
func (s *Service) resolveDescriptions(preds []models.Prediction) []models.Prediction {
	for i, p := range preds {
		switch p.Type {
		case models.CodeTypeICD10:
			if desc, ok := s.icd10.Lookup(p.Code); ok {
				preds[i].Description = desc
			}
		case models.CodeTypeCPT:
			if desc, ok := s.cpt.Lookup(p.Code); ok {
				preds[i].Description = desc
			}
		}
	}
	return preds
}

// Explain justifies a single code against the note text.
func (s *Service) Explain(ctx context.Context, req models.ExplainRequest) (*models.Explanation, error) {
	if err := validateExplainRequest(req); err != nil {
		return nil, err
	}

	exp := s.explainer.Explain(req.Text, req.Code)
	metrics.IncExplainRequests()

	if s.producer != nil {
		if err := s.producer.PublishEvent(ctx, "explain", "coding-service", map[string]interface{}{
			"code": req.Code,
			"type": exp.Type,
		}); err != nil {
			logger.Log.WithError(err).Warn("failed to publish explain event")
		}
	}

	return &exp, nil
}

// ExtractEntities serves the standalone entity extraction operation.
func (s *Service) ExtractEntities(_ context.Context, req models.EntityRequest) (*models.EntityResponse, error) {
	if err := validateEntityRequest(req); err != nil {
		return nil, err
	}

	labels := req.EntityTypes
	if len(labels) == 0 {
		labels = s.cfg.NER.Labels
	}

	preprocessed := preprocessing.Preprocess(req.Text, preprocessing.Options{
		Lowercase:           s.cfg.Preprocessing.Lowercase,
		RemovePunctuation:   s.cfg.Preprocessing.RemovePunctuation,
		ExpandAbbreviations: s.cfg.Preprocessing.ExpandAbbreviations,
	})

	entities := preprocessing.ExtractEntities(preprocessed, labels)
	metrics.IncEntityRequests()
	return &models.EntityResponse{Entities: entities}, nil
}

// LookupCode serves the standalone code lookup utility: description across
// both codebooks plus chapter/section categorization.
func (s *Service) LookupCode(code string) models.CodeInfo {
	info := models.CodeInfo{Code: code}

	if desc, ok := s.icd10.Lookup(code); ok {
		info.Type = models.CodeTypeICD10
		info.Description = desc
		info.Category = terminology.CategorizeICD10(code)
		return info
	}
	if desc, ok := s.cpt.Lookup(code); ok {
		info.Type = models.CodeTypeCPT
		info.Description = desc
		info.Category = terminology.CategorizeCPT(code)
		return info
	}

	info.Description = terminology.UnknownDescription
	switch {
	case terminology.IsValidICD10(code):
		info.Type = models.CodeTypeICD10
		info.Category = terminology.CategorizeICD10(code)
	case terminology.IsValidCPT(code):
		info.Type = models.CodeTypeCPT
		info.Category = terminology.CategorizeCPT(code)
	default:
		info.Type = models.CodeTypeUnknown
	}
	return info
}

// GetRecord fetches the audit record of a previously served prediction.
func (s *Service) GetRecord(ctx context.Context, id string) (*Record, error) {
	if s.repo == nil {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Cleanup deletes prediction records older than the configured retention.
// A no-op without a repository.
func (s *Service) Cleanup(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.CleanupExpired(ctx, s.cfg.RecordRetention)
}

func (s *Service) applyDefaults(req models.PredictRequest) models.PredictRequest {
	if req.Threshold == 0 {
		req.Threshold = s.cfg.Prediction.Threshold
	}
	if req.TopK == 0 {
		req.TopK = s.cfg.Prediction.TopK
	}
	if req.CodeType == "" {
		req.CodeType = s.cfg.Prediction.CodeType
	}
	return req
}

// audit persists the served request and publishes the audit event.
// Best-effort: failures are logged, never surfaced.
func (s *Service) audit(ctx context.Context, req models.PredictRequest, resp *models.PredictResponse) {
	id := uuid.New().String()

	if s.repo != nil {
		payload := datatypes.JSONMap{}
		for _, p := range resp.Predictions {
			payload[p.Code] = map[string]interface{}{
				"type":        p.Type,
				"description": p.Description,
				"confidence":  p.Confidence,
			}
		}
		rec := &Record{
			ID:          id,
			RequestText: req.Text,
			CodeType:    req.CodeType,
			Threshold:   req.Threshold,
			TopK:        req.TopK,
			Source:      resp.Source,
			Predictions: payload,
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			logger.Log.WithError(err).Warn("failed to persist prediction record")
		}
	}

	if s.producer != nil {
		codes := make([]string, 0, len(resp.Predictions))
		for _, p := range resp.Predictions {
			codes = append(codes, p.Code)
		}
		if err := s.producer.PublishEvent(ctx, "predict", "coding-service", map[string]interface{}{
			"record_id": id,
			"codes":     codes,
			"source":    resp.Source,
		}); err != nil {
			logger.Log.WithError(err).Warn("failed to publish prediction event")
		}
	}
}
