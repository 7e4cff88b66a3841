package schema

type WorkoutType string

const (
	WorkoutIndoor  WorkoutType = "INDOOR"
	WorkoutOutdoor WorkoutType = "OUTDOOR"
	WorkoutRest    WorkoutType = "REST"
)

type WorkoutIntensity string

const (
	IntensityLow      WorkoutIntensity = "LOW"
	IntensityModerate WorkoutIntensity = "MODERATE"
	IntensityHigh     WorkoutIntensity = "HIGH"
)

type Exercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  string `json:"reps"`
	Notes string `json:"notes,omitempty"`
}

// WorkoutPlan - a generated session for the current air quality and profile.
// Recomputed per day and per AQI change; not persisted.
type WorkoutPlan struct {
	Type             WorkoutType      `json:"type"`
	Intensity        WorkoutIntensity `json:"intensity"`
	Exercises        []Exercise       `json:"exercises"`
	DurationMinutes  int              `json:"duration_minutes"`
	CaloriesEstimate int              `json:"calories_estimate"`
	Advice           string           `json:"advice"`
}
