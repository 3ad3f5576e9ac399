package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFarmerRepo struct {
	farmers   map[uint]*models.FarmerProfile
	createErr error
}

func newFakeFarmerRepo(farmers ...*models.FarmerProfile) *fakeFarmerRepo {
	repo := &fakeFarmerRepo{farmers: make(map[uint]*models.FarmerProfile)}
	for _, f := range farmers {
		repo.farmers[f.ID] = f
	}
	return repo
}

func (f *fakeFarmerRepo) Create(_ context.Context, farmer *models.FarmerProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.farmers[farmer.ID] = farmer
	return nil
}

func (f *fakeFarmerRepo) GetByID(_ context.Context, id uint) (*models.FarmerProfile, error) {
	farmer, ok := f.farmers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return farmer, nil
}

func (f *fakeFarmerRepo) GetByUserID(_ context.Context, userID uint) (*models.FarmerProfile, error) {
	for _, farmer := range f.farmers {
		if farmer.UserID == userID {
			return farmer, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFarmerRepo) Update(_ context.Context, farmer *models.FarmerProfile) error {
	f.farmers[farmer.ID] = farmer
	return nil
}

func (f *fakeFarmerRepo) UpdateScore(_ context.Context, id uint, score float64) error {
	farmer, ok := f.farmers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	farmer.CreditScore = &score
	farmer.ScoreUpdatedAt = &now
	return nil
}

func (f *fakeFarmerRepo) Search(_ context.Context, _ string, _, _ int) ([]*models.FarmerProfile, int64, error) {
	var out []*models.FarmerProfile
	for _, farmer := range f.farmers {
		out = append(out, farmer)
	}
	return out, int64(len(out)), nil
}

type fakePredictor struct {
	score    float64
	err      error
	features map[string]float64
}

func (p *fakePredictor) Predict(_ context.Context, features map[string]float64) (float64, error) {
	p.features = features
	return p.score, p.err
}

func scoringConfig(delayMs int) config.ScoringConfig {
	return config.ScoringConfig{RevealDelayMs: delayMs}
}

func TestCalculateStoresScore(t *testing.T) {
	repo := newFakeFarmerRepo(&models.FarmerProfile{
		ID: 1, UserID: 10, Name: "Ramesh",
		LandSize: 2.5, SoilPH: 7.1, AnnualIncome: 250000,
	})
	predictor := &fakePredictor{score: 74.5}
	svc := NewScoreService(repo, predictor, scoringConfig(0))

	resp, err := svc.Calculate(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, resp.CreditScore)
	assert.Equal(t, 74.5, *resp.CreditScore)

	// Profile values pass through, missing ones take model defaults
	assert.Equal(t, 2.5, predictor.features["land_size"])
	assert.Equal(t, 7.1, predictor.features["soil_ph"])
	assert.Equal(t, 250000.0, predictor.features["annual_income"])
	assert.Equal(t, defaultNitrogen, predictor.features["nitrogen_level"])
	assert.Equal(t, defaultPastYield, predictor.features["past_yield"])

	stored, _ := repo.GetByID(context.Background(), 1)
	require.NotNil(t, stored.CreditScore)
	assert.Equal(t, 74.5, *stored.CreditScore)
}

func TestCalculateClampsScore(t *testing.T) {
	repo := newFakeFarmerRepo(&models.FarmerProfile{ID: 1, UserID: 10})
	svc := NewScoreService(repo, &fakePredictor{score: 140}, scoringConfig(0))

	resp, err := svc.Calculate(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 100.0, *resp.CreditScore)

	svc = NewScoreService(repo, &fakePredictor{score: -3}, scoringConfig(0))
	resp, err = svc.Calculate(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *resp.CreditScore)
}

func TestGetScoreNotReady(t *testing.T) {
	repo := newFakeFarmerRepo(&models.FarmerProfile{ID: 1, UserID: 10})
	svc := NewScoreService(repo, &fakePredictor{}, scoringConfig(0))

	_, err := svc.GetScore(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrScoreNotReady)
}

func TestRevealWaitsBeforeReturning(t *testing.T) {
	score := 81.0
	repo := newFakeFarmerRepo(&models.FarmerProfile{ID: 1, UserID: 10, CreditScore: &score})
	svc := NewScoreService(repo, &fakePredictor{}, scoringConfig(100))

	start := time.Now()
	resp, err := svc.Reveal(context.Background(), 1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, 81.0, *resp.CreditScore)
}

func TestRevealCancelledContext(t *testing.T) {
	score := 81.0
	repo := newFakeFarmerRepo(&models.FarmerProfile{ID: 1, UserID: 10, CreditScore: &score})
	svc := NewScoreService(repo, &fakePredictor{}, scoringConfig(5000))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := svc.Reveal(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRevealScoreNotReady(t *testing.T) {
	repo := newFakeFarmerRepo(&models.FarmerProfile{ID: 1, UserID: 10})
	svc := NewScoreService(repo, &fakePredictor{}, scoringConfig(0))

	_, err := svc.Reveal(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrScoreNotReady)
}

func TestPredictClientReadsEitherScoreKey(t *testing.T) {
	for _, key := range []string{"predicted_credit_score", "prediction"} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var features map[string]float64
			require.NoError(t, json.NewDecoder(r.Body).Decode(&features))
			assert.Contains(t, features, "land_size")

			json.NewEncoder(w).Encode(map[string]float64{key: 62.3})
		}))

		client := NewPredictClient(config.ScoringConfig{PredictURL: server.URL})
		score, err := client.Predict(context.Background(), map[string]float64{"land_size": 1})
		require.NoError(t, err)
		assert.Equal(t, 62.3, score)

		server.Close()
	}
}

func TestPredictClientUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewPredictClient(config.ScoringConfig{PredictURL: server.URL})
	_, err := client.Predict(context.Background(), map[string]float64{})
	assert.Error(t, err)
}
