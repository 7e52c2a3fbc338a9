package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
)

// decodeEarthquakes validates the earthquake feed, logging and counting every
// skipped feature. Only an unreadable envelope is an error.
func decodeEarthquakes(data []byte, logger *slog.Logger, metrics *observability.Metrics) ([]domain.Earthquake, error) {
	quakes, problems, err := domain.DecodeEarthquakes(data)
	if err != nil {
		return nil, err
	}
	reportProblems(domain.FeedEarthquakes, problems, logger, metrics)
	metrics.FeaturesDecoded.WithLabelValues(domain.FeedEarthquakes).Add(float64(len(quakes)))
	return quakes, nil
}

func decodePlateBoundaries(data []byte, logger *slog.Logger, metrics *observability.Metrics) ([]domain.PlateBoundary, error) {
	plates, problems, err := domain.DecodePlateBoundaries(data)
	if err != nil {
		return nil, err
	}
	reportProblems(domain.FeedPlates, problems, logger, metrics)
	metrics.FeaturesDecoded.WithLabelValues(domain.FeedPlates).Add(float64(len(plates)))
	return plates, nil
}

func reportProblems(feed string, problems []*domain.FeatureError, logger *slog.Logger, metrics *observability.Metrics) {
	for _, fe := range problems {
		logger.Warn("malformed feature, skipping",
			"feed", feed,
			"index", fe.Index,
			"id", fe.ID,
			"error", fe.Err,
		)
		metrics.FeaturesSkipped.WithLabelValues(feed).Inc()
	}
}
