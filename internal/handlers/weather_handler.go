package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"lambda-services-api/internal/models"
	"lambda-services-api/internal/services"
	"lambda-services-api/pkg/lambda"
)

const weatherUsage = `GET /weather?city=London or POST /weather with {"city": "London"}`

// WeatherHandler serves mock weather readings by city
type WeatherHandler struct {
	weatherService services.WeatherService
	opts           ResponseOptions
	logger         logrus.FieldLogger
}

// WeatherResponse is the body returned for a weather reading
type WeatherResponse struct {
	Message string                 `json:"message"`
	Data    *models.WeatherReading `json:"data"`
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherService services.WeatherService, logger logrus.FieldLogger) *WeatherHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &WeatherHandler{
		weatherService: weatherService,
		opts:           ResponseOptions{CORS: true},
		logger:         logger.WithField("function", "weather"),
	}
}

// @Summary Get weather for a city
// @Description Return a mock reading. The city comes from the query string (GET) or the body (POST).
// @Tags weather
// @Accept json
// @Produce json
// @Param city query string false "City name"
// @Param query body services.WeatherQuery false "City in body"
// @Success 200 {object} WeatherResponse
// @Failure 400 {object} ErrorBody
// @Failure 405 {object} MessageBody
// @Failure 500 {object} ErrorBody
// @Router /weather [get]
// @Router /weather [post]
func (h *WeatherHandler) Handle(ctx context.Context, req *lambda.Request) *lambda.Response {
	return guardWith(h.logger, h.failure, func() (*lambda.Response, error) {
		if req == nil {
			req = &lambda.Request{}
		}
		logRequest(h.logger, req)

		var query services.WeatherQuery
		switch req.Method {
		case http.MethodGet:
			query.City = req.QueryParam("city")
		case http.MethodPost:
			var body weatherBody
			if err := decodeJSONObject(req.Body, &body); err != nil {
				return nil, fmt.Errorf("failed to parse weather request: %w", err)
			}
			query.City = cityText(body.City)
		default:
			return MessageResponse(http.StatusMethodNotAllowed, "Method not allowed", h.opts), nil
		}

		if err := models.Validator().Struct(&query); err != nil {
			return h.missingCity(), nil
		}

		reading, err := h.weatherService.CurrentWeather(ctx, query.City)
		if errors.Is(err, services.ErrMissingCity) {
			return h.missingCity(), nil
		}
		if err != nil {
			return nil, err
		}

		return JSONResponse(http.StatusOK, WeatherResponse{
			Message: "Weather data for " + reading.City,
			Data:    reading,
		}, h.opts), nil
	})
}

// weatherBody is the POST body; city may be any JSON value
type weatherBody struct {
	City json.RawMessage `json:"city"`
}

// cityText renders a scalar city value as text. Empty strings, zero, false,
// null, objects and arrays yield "" and are treated as a missing city.
func cityText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't':
		return "true"
	case 'f', 'n', '{', '[':
		return ""
	}

	if f, err := strconv.ParseFloat(string(raw), 64); err != nil || f == 0 {
		return ""
	}
	return string(raw)
}

func (h *WeatherHandler) missingCity() *lambda.Response {
	return JSONResponse(http.StatusBadRequest, ErrorBody{
		Error: "City parameter is required",
		Usage: weatherUsage,
	}, h.opts)
}

func (h *WeatherHandler) failure() *lambda.Response {
	return JSONResponse(http.StatusInternalServerError, ErrorBody{
		Error:   "Internal server error",
		Message: "Failed to process weather request",
	}, h.opts)
}
