package models

// WeatherReading is a mock weather observation for a city.
type WeatherReading struct {
	City        string `json:"city" validate:"required"`
	Temperature int    `json:"temperature" validate:"gte=10,lte=39"`
	Condition   string `json:"condition"`
	Timestamp   string `json:"timestamp"`
}

// Validate validates the reading
func (w *WeatherReading) Validate() error {
	return validateStruct(w)
}
