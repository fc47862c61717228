package service

import (
	"context"
	"fmt"
	"time"

	"nuggetube-backend/internal/classifier"
	"nuggetube-backend/internal/config"
	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/reference"
	"nuggetube-backend/internal/responder"
	"nuggetube-backend/pkg/logger"
)

const (
	restaurantRecommendation = "Based on your drawing, I recommend %s! Check the map!"
	breedRecommendation      = "Based on your drawing, I recommend the %s breed! Check the map!"
)

type DrawingService struct {
	classifier *classifier.Classifier
	table      *reference.Table
	speaker    Speaker
	delay      time.Duration
}

func NewDrawingService(c *classifier.Classifier, table *reference.Table, speaker Speaker, cfg config.DrawingConfig) *DrawingService {
	if table == nil {
		table = reference.Default
	}
	if speaker == nil {
		speaker = NopSpeaker{}
	}
	return &DrawingService{
		classifier: c,
		table:      table,
		speaker:    speaker,
		delay:      cfg.AnalysisDelay,
	}
}

// Analyze classifies the raster and points at a restaurant for food or a breed for a live chicken.
func (s *DrawingService) Analyze(ctx context.Context, r classifier.Raster) (*model.DrawingResponse, error) {
	analysis := s.classifier.Analyze(r)

	if err := sleep(ctx, s.delay); err != nil {
		return nil, err
	}

	rec := Recommend(s.table, analysis.Verdict)

	logger.WithFields(logger.Fields{
		"descriptor": analysis.Descriptor,
		"is_food":    analysis.IsFood,
		"sampled":    analysis.Counts.Total,
	}).Debug("drawing analysed")

	speakAsync(s.speaker, rec.Message)

	return &model.DrawingResponse{
		IsFood:         analysis.IsFood,
		Descriptor:     analysis.Descriptor,
		Counts:         analysis.Counts,
		Scores:         analysis.Scores,
		Recommendation: rec,
	}, nil
}

func Recommend(table *reference.Table, v classifier.Verdict) model.Recommendation {
	if v.IsFood {
		e := table.RestaurantForDish(string(v.Descriptor))
		return model.Recommendation{
			Kind:     string(reference.KindRestaurant),
			Name:     e.Name,
			Message:  fmt.Sprintf(restaurantRecommendation, e.Name),
			Location: responder.LocationOf(e),
		}
	}

	e := table.BreedForLook(string(v.Descriptor))
	return model.Recommendation{
		Kind:     string(reference.KindBreed),
		Name:     e.Name,
		Message:  fmt.Sprintf(breedRecommendation, e.Name),
		Location: responder.LocationOf(e),
	}
}
