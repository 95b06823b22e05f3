package weather

import (
	"time"

	"go-carewatch/types"
)

type fallbackReading struct {
	aqi         int
	temperature float64
	humidity    int
	windSpeed   float64
	description string
}

// Fixed per-location defaults used when the provider is unreachable or
// uncredentialed. Values are deliberately unalarming so an offline provider
// never manufactures alerts on its own.
var fallbackReadings = map[string]fallbackReading{
	"Delhi":     {aqi: 95, temperature: 31.0, humidity: 55, windSpeed: 2.8, description: "Offline default reading"},
	"Mumbai":    {aqi: 80, temperature: 29.5, humidity: 74, windSpeed: 4.1, description: "Offline default reading"},
	"Bangalore": {aqi: 60, temperature: 26.0, humidity: 60, windSpeed: 3.2, description: "Offline default reading"},
	"Chennai":   {aqi: 72, temperature: 32.0, humidity: 70, windSpeed: 5.0, description: "Offline default reading"},
}

var defaultFallback = fallbackReading{
	aqi:         70,
	temperature: 28.0,
	humidity:    60,
	windSpeed:   3.0,
	description: "Offline default reading",
}

// FallbackSnapshot returns the deterministic offline snapshot for a
// location. Same location always yields the same reading, stamped with the
// caller-supplied observation time.
func FallbackSnapshot(location string, observedAt time.Time) types.EnvironmentalSnapshot {
	reading, ok := fallbackReadings[location]
	if !ok {
		reading = defaultFallback
	}
	aqi := reading.aqi
	return types.EnvironmentalSnapshot{
		Location:    location,
		AQI:         &aqi,
		Temperature: reading.temperature,
		Humidity:    reading.humidity,
		WindSpeed:   reading.windSpeed,
		Description: reading.description,
		ObservedAt:  observedAt,
		Fallback:    true,
	}
}
