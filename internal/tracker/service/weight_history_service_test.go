package service

import (
	"context"
	"testing"

	"signal-outcome-tracker/internal/entity"
	"signal-outcome-tracker/internal/tracker/dto"
	"signal-outcome-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWeightHistoryRepo struct {
	histories []entity.WeightHistory
}

func (f *fakeWeightHistoryRepo) Create(ctx context.Context, history *entity.WeightHistory) error {
	history.Version = len(f.histories) + 1
	f.histories = append(f.histories, *history)
	return nil
}

func (f *fakeWeightHistoryRepo) Latest(ctx context.Context) (*entity.WeightHistory, error) {
	if len(f.histories) == 0 {
		return nil, nil
	}
	latest := f.histories[len(f.histories)-1]
	return &latest, nil
}

func (f *fakeWeightHistoryRepo) FindAll(ctx context.Context, limit int) ([]entity.WeightHistory, error) {
	out := make([]entity.WeightHistory, len(f.histories))
	copy(out, f.histories)
	return out, nil
}

func newTestWeightService(t *testing.T) (WeightHistoryService, *fakeWeightHistoryRepo) {
	t.Helper()

	log, err := logger.New("error", "json")
	require.NoError(t, err)

	repo := &fakeWeightHistoryRepo{}
	return NewWeightHistoryService(repo, log), repo
}

func TestWeightHistoryService_RecordAndLatest(t *testing.T) {
	svc, repo := newTestWeightService(t)

	req := &dto.RecordWeightsRequest{
		Momentum:              0.3,
		RSI:                   0.2,
		Sentiment:             0.2,
		Volume:                0.15,
		Volatility:            0.15,
		SignalCount:           120,
		ExpectedAccuracyDelta: 1.4,
	}

	recorded, err := svc.Record(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, recorded.Version)
	assert.Equal(t, 0.3, recorded.Momentum)

	// The blob stored is opaque JSON; Latest decodes it back into factors.
	latest, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 0.2, latest.RSI)
	assert.Equal(t, 120, latest.SignalCount)
	assert.Equal(t, 1.4, latest.ExpectedAccuracyDelta)

	weights, err := repo.histories[0].DecodeWeights()
	require.NoError(t, err)
	assert.Equal(t, entity.SignalWeights{Momentum: 0.3, RSI: 0.2, Sentiment: 0.2, Volume: 0.15, Volatility: 0.15}, weights)
}

func TestWeightHistoryService_VersionsIncrease(t *testing.T) {
	svc, _ := newTestWeightService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Record(context.Background(), &dto.RecordWeightsRequest{Momentum: float64(i)})
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	versions := []int{all[0].Version, all[1].Version, all[2].Version}
	assert.ElementsMatch(t, []int{1, 2, 3}, versions)
}

func TestWeightHistoryService_LatestWithoutSnapshots(t *testing.T) {
	svc, _ := newTestWeightService(t)

	latest, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
}
