package service

import (
	"context"
	"petagenda/internal/application/dto"
)

// StatisticsService defines the interface for the read-only dashboard
// aggregates.
type StatisticsService interface {
	GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error)
}
