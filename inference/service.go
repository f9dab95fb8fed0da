package inference

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"strokerisk/ml"
)

// Service runs the prediction pipeline. It holds no mutable state and is
// safe for concurrent use.
type Service struct {
	auth       *Authenticator
	normalizer *Normalizer
	model      ml.Classifier
	spec       ml.FeatureSpec
	logger     *zap.Logger
}

type Config struct {
	Token  string
	Spec   ml.FeatureSpec
	Model  ml.Classifier
	Logger *zap.Logger
}

func NewService(cfg Config) (*Service, error) {
	auth, err := NewAuthenticator(cfg.Token)
	if err != nil {
		return nil, err
	}
	if cfg.Model == nil {
		return nil, errors.New("model is required")
	}
	if cfg.Spec.Len() == 0 {
		return nil, errors.New("feature spec is required")
	}
	if err := ml.CheckFeatureNames(cfg.Model, cfg.Spec); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		auth:       auth,
		normalizer: NewNormalizer(cfg.Spec),
		model:      cfg.Model,
		spec:       cfg.Spec,
		logger:     logger,
	}, nil
}

func (s *Service) Authorize(header string) error {
	return s.auth.Authorize(header)
}

// Predict validates and orders the payload, scores it and applies Threshold.
func (s *Service) Predict(payload Payload) (Result, error) {
	vector, err := s.normalizer.Vector(payload)
	if err != nil {
		return Result{}, err
	}
	p, err := s.infer(vector)
	if err != nil {
		return Result{}, err
	}
	result := Decide(p)
	s.logger.Debug("prediction computed",
		zap.Float64("raw_probability", p),
		zap.Int("prediction", result.Prediction))
	return result, nil
}

func (s *Service) infer(vector []float64) (p float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("model panicked", zap.Any("panic", r))
			err = inferenceFailure(fmt.Errorf("%v", r))
		}
	}()

	p, err = s.model.PredictProbability(vector)
	if err != nil {
		return 0, inferenceFailure(err)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, inferenceFailure(fmt.Errorf("model returned probability %v outside [0,1]", p))
	}
	return p, nil
}

func (s *Service) Spec() ml.FeatureSpec {
	return s.spec
}

func (s *Service) ModelType() string {
	return ml.ModelType(s.model)
}
