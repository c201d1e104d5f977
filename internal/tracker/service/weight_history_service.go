package service

import (
	"context"
	"fmt"

	"signal-outcome-tracker/internal/entity"
	"signal-outcome-tracker/internal/tracker/dto"
	"signal-outcome-tracker/internal/tracker/repository"
	"signal-outcome-tracker/pkg/logger"
)

// WeightHistoryService stores and serves the versioned factor-weight
// snapshots. The optimization that produces new weights lives elsewhere;
// this service only persists its output and keeps the history readable.
type WeightHistoryService interface {
	Record(ctx context.Context, req *dto.RecordWeightsRequest) (*dto.WeightHistoryResponse, error)
	Latest(ctx context.Context) (*dto.WeightHistoryResponse, error)
	List(ctx context.Context, limit int) ([]dto.WeightHistoryResponse, error)
}

// NewWeightHistoryService creates a new weight history service.
func NewWeightHistoryService(weightRepo repository.WeightHistoryRepository, log *logger.Logger) WeightHistoryService {
	return &weightHistoryService{
		weightRepo: weightRepo,
		logger:     log,
	}
}

type weightHistoryService struct {
	weightRepo repository.WeightHistoryRepository
	logger     *logger.Logger
}

// Record appends a new snapshot. Weights travel through storage as an
// opaque JSON blob; they are typed only at this boundary.
func (s *weightHistoryService) Record(ctx context.Context, req *dto.RecordWeightsRequest) (*dto.WeightHistoryResponse, error) {
	weights := entity.SignalWeights{
		Momentum:   req.Momentum,
		RSI:        req.RSI,
		Sentiment:  req.Sentiment,
		Volume:     req.Volume,
		Volatility: req.Volatility,
	}

	blob, err := entity.EncodeWeights(weights)
	if err != nil {
		return nil, fmt.Errorf("failed to encode weights: %w", err)
	}

	history := &entity.WeightHistory{
		Weights:               blob,
		SignalCount:           req.SignalCount,
		ExpectedAccuracyDelta: req.ExpectedAccuracyDelta,
	}
	if err := s.weightRepo.Create(ctx, history); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Weight snapshot recorded",
		logger.IntField("version", history.Version),
		logger.IntField("signal_count", history.SignalCount))

	return toWeightResponse(history)
}

// Latest retrieves the newest snapshot, or nil when none has been recorded.
func (s *weightHistoryService) Latest(ctx context.Context) (*dto.WeightHistoryResponse, error) {
	history, err := s.weightRepo.Latest(ctx)
	if err != nil || history == nil {
		return nil, err
	}
	return toWeightResponse(history)
}

// List retrieves snapshots newest first.
func (s *weightHistoryService) List(ctx context.Context, limit int) ([]dto.WeightHistoryResponse, error) {
	histories, err := s.weightRepo.FindAll(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.WeightHistoryResponse, 0, len(histories))
	for i := range histories {
		resp, err := toWeightResponse(&histories[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func toWeightResponse(history *entity.WeightHistory) (*dto.WeightHistoryResponse, error) {
	weights, err := history.DecodeWeights()
	if err != nil {
		return nil, fmt.Errorf("corrupt weight blob at version %d: %w", history.Version, err)
	}

	return &dto.WeightHistoryResponse{
		Version:               history.Version,
		Momentum:              weights.Momentum,
		RSI:                   weights.RSI,
		Sentiment:             weights.Sentiment,
		Volume:                weights.Volume,
		Volatility:            weights.Volatility,
		SignalCount:           history.SignalCount,
		ExpectedAccuracyDelta: history.ExpectedAccuracyDelta,
		CreatedAt:             history.CreatedAt,
	}, nil
}
