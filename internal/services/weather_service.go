package services

import (
	"context"
	"fmt"
	"strings"

	"lambda-services-api/internal/models"
)

const (
	minTemperature   = 10
	temperatureRange = 30
	defaultCondition = "Sunny"
)

// weatherService implements the WeatherService interface
type weatherService struct {
	clock  Clock
	random RandomSource
}

// NewWeatherService creates a new weather service instance
func NewWeatherService(config *ServiceConfig) WeatherService {
	config = config.withDefaults()
	return &weatherService{
		clock:  config.Clock,
		random: config.Random,
	}
}

// CurrentWeather returns a random reading between 10 and 39 degrees
func (s *weatherService) CurrentWeather(ctx context.Context, city string) (*models.WeatherReading, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("current weather: %w", ErrMissingCity)
	}

	reading := &models.WeatherReading{
		City:        city,
		Temperature: minTemperature + s.random.IntN(temperatureRange),
		Condition:   defaultCondition,
		Timestamp:   models.FormatTimestamp(s.clock()),
	}

	if err := reading.Validate(); err != nil {
		return nil, fmt.Errorf("current weather: %w", err)
	}

	return reading, nil
}
