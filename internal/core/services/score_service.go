package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/repositories"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"

	"github.com/hashicorp/go-retryablehttp"
)

// ============================================================
// Score Service - external credit score predictor
// ============================================================

// ScorePredictor calls the external model endpoint
type ScorePredictor interface {
	Predict(ctx context.Context, features map[string]float64) (float64, error)
}

// ScoreService calculates and reveals farmer credit scores.
// The model returns a 0-100 score; that value is the single stored truth
// and the 0-850 display scale is derived from it in the response DTO.
type ScoreService struct {
	farmerRepo  repositories.FarmerRepository
	predictor   ScorePredictor
	revealDelay time.Duration
}

// NewScoreService creates a new score service
func NewScoreService(farmerRepo repositories.FarmerRepository, predictor ScorePredictor, cfg config.ScoringConfig) *ScoreService {
	return &ScoreService{
		farmerRepo:  farmerRepo,
		predictor:   predictor,
		revealDelay: time.Duration(cfg.RevealDelayMs) * time.Millisecond,
	}
}

// Feature defaults used when a profile field was never filled in.
// The model was trained with these as neutral values.
const (
	defaultLandSize       = 1.0
	defaultSoilPH         = 6.5
	defaultNitrogen       = 50.0
	defaultOrganicMatter  = 2.5
	defaultLandQuality    = 5.0
	defaultPastRainfall   = 800.0
	defaultAvgTemperature = 25.0
	defaultPastYield      = 2.0
	defaultAnnualIncome   = 100000.0
)

// Calculate builds the feature payload from the farmer profile, calls the
// predictor, clamps the result to [0,100] and stores it on the profile
func (s *ScoreService) Calculate(ctx context.Context, userID uint) (*models.FarmerResponse, error) {
	farmer, err := s.farmerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	features := map[string]float64{
		"land_size":            orDefault(farmer.LandSize, defaultLandSize),
		"soil_ph":              orDefault(farmer.SoilPH, defaultSoilPH),
		"nitrogen_level":       orDefault(farmer.NitrogenLevel, defaultNitrogen),
		"organic_matter_level": orDefault(farmer.OrganicMatterLevel, defaultOrganicMatter),
		"land_quality_score":   orDefault(farmer.LandQualityScore, defaultLandQuality),
		"past_rainfall":        orDefault(farmer.PastRainfall, defaultPastRainfall),
		"avg_temperature":      orDefault(farmer.AvgTemperature, defaultAvgTemperature),
		"past_yield":           orDefault(farmer.PastYield, defaultPastYield),
		"annual_income":        orDefault(farmer.AnnualIncome, defaultAnnualIncome),
	}

	score, err := s.predictor.Predict(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrScoreUnavailable, err)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if err := s.farmerRepo.UpdateScore(ctx, farmer.ID, score); err != nil {
		return nil, err
	}

	log.Printf("✅ Credit score calculated for farmer %d: %.1f", farmer.ID, score)

	now := time.Now()
	farmer.CreditScore = &score
	farmer.ScoreUpdatedAt = &now
	return farmer.ToResponse(), nil
}

// GetScore returns the last stored score for a farmer user
func (s *ScoreService) GetScore(ctx context.Context, userID uint) (*models.FarmerResponse, error) {
	farmer, err := s.farmerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	if farmer.CreditScore == nil {
		return nil, domain.ErrScoreNotReady
	}
	return farmer.ToResponse(), nil
}

// Reveal waits the configured reveal delay and then returns the stored
// score for the given farmer. No recomputation happens; the delay exists
// so the review screen can show its calculation animation. Cancelling the
// request context aborts the wait.
func (s *ScoreService) Reveal(ctx context.Context, farmerID uint) (*models.FarmerResponse, error) {
	farmer, err := s.farmerRepo.GetByID(ctx, farmerID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	if farmer.CreditScore == nil {
		return nil, domain.ErrScoreNotReady
	}

	if s.revealDelay > 0 {
		timer := time.NewTimer(s.revealDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return farmer.ToResponse(), nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// ============================================================
// Predictor client
// ============================================================

// PredictClient posts feature payloads to the external model endpoint
type PredictClient struct {
	url        string
	httpClient *http.Client
}

// NewPredictClient creates a predictor client with retries
func NewPredictClient(cfg config.ScoringConfig) *PredictClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil

	return &PredictClient{
		url:        cfg.PredictURL,
		httpClient: rc.StandardClient(),
	}
}

// Predict calls the model endpoint. The response carries the score under
// either "predicted_credit_score" or "prediction" depending on the model
// version deployed.
func (c *PredictClient) Predict(ctx context.Context, features map[string]float64) (float64, error) {
	if c.url == "" {
		return 0, fmt.Errorf("predictor not configured")
	}

	body, err := json.Marshal(features)
	if err != nil {
		return 0, fmt.Errorf("marshal features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result map[string]json.Number
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	for _, key := range []string{"predicted_credit_score", "prediction"} {
		if raw, ok := result[key]; ok {
			score, err := raw.Float64()
			if err != nil {
				return 0, fmt.Errorf("parse score %q: %w", raw.String(), err)
			}
			return score, nil
		}
	}

	return 0, fmt.Errorf("response carries no score field")
}
