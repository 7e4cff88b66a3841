package schema

// AtmosphericReading is one normalized snapshot of atmospheric measurements
// for a coordinate pair. A reading is immutable once constructed; each poll
// cycle supersedes the previous reading instead of mutating it.
type AtmosphericReading struct {
	AQI         float64 `json:"aqi" bson:"aqi"`
	PM25        float64 `json:"pm25" bson:"pm25"`
	PM10        float64 `json:"pm10" bson:"pm10"`
	NO2         float64 `json:"no2" bson:"no2"`
	SO2         float64 `json:"so2" bson:"so2"`
	CO          float64 `json:"co" bson:"co"`
	O3          float64 `json:"o3" bson:"o3"`
	Temperature float64 `json:"temperature" bson:"temperature"`
	Humidity    float64 `json:"humidity" bson:"humidity"`
	WindSpeed   float64 `json:"wind_speed" bson:"wind_speed"`
	UVIndex     float64 `json:"uv_index" bson:"uv_index"`
	Latitude    float64 `json:"latitude" bson:"latitude"`
	Longitude   float64 `json:"longitude" bson:"longitude"`
	Source      string  `json:"source" bson:"source"`
	Timestamp   int64   `json:"timestamp" bson:"timestamp"`
}

// Location - a coordinate pair with an optional resolved place name
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
	Name      string  `json:"name,omitempty" bson:"name,omitempty"`
}
