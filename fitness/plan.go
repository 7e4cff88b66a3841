package fitness

import (
	"fmt"
	"math"

	"github.com/aerovital/navigator-api/schema"
)

const (
	highPollutionAQI     = 150
	moderatePollutionAQI = 100
	heatStressTemp       = 35

	indoorDuration  = 25
	outdoorDuration = 45
	indoorCalories  = 150.0
	outdoorCalories = 300.0
)

// GenerateWorkoutPlan builds a session for the current air quality and an
// optional user profile. Pure function of its inputs.
//
// dayNumber is accepted but does not yet feed the formula; it is reserved
// for progression across a multi-day program.
func GenerateWorkoutPlan(reading schema.AtmosphericReading, profile *schema.UserProfile, dayNumber int) schema.WorkoutPlan {
	workoutType := schema.WorkoutOutdoor
	if reading.AQI > highPollutionAQI {
		workoutType = schema.WorkoutIndoor
	}

	intensity := schema.IntensityModerate

	if profile != nil {
		switch profile.FitnessLevel {
		case schema.FitnessAdvanced:
			intensity = schema.IntensityHigh
		case schema.FitnessBeginner:
			intensity = schema.IntensityLow
		}

		// Safety overrides apply after the defaults; the later one wins
		// when both trigger.
		if profile.MedicalConditions.Respiratory && reading.AQI > moderatePollutionAQI {
			workoutType = schema.WorkoutIndoor
			intensity = schema.IntensityLow
		}
		if profile.MedicalConditions.Cardiovascular && reading.Temperature > heatStressTemp {
			workoutType = schema.WorkoutIndoor
			intensity = schema.IntensityLow
		}
	}

	var exercises []schema.Exercise
	var duration int
	var calories float64
	var advice string

	if workoutType == schema.WorkoutIndoor {
		exercises = []schema.Exercise{
			{Name: "Warm-up: High Knees", Sets: 3, Reps: "30 secs"},
			{Name: "Bodyweight Squats", Sets: 3, Reps: "15 reps"},
			{Name: "Push-ups (or Knee Push-ups)", Sets: 3, Reps: "10-12 reps"},
			{Name: "Plank Hold", Sets: 3, Reps: "30-45 secs"},
			{Name: "Cool-down: Child's Pose", Sets: 1, Reps: "2 mins"},
		}
		duration = indoorDuration
		calories = indoorCalories
		if intensity == schema.IntensityHigh {
			calories = indoorCalories * 1.5
		}
		advice = fmt.Sprintf("AQI is %.0f. It's unsafe for outdoor exercise. We've switched you to an Indoor Home Workout.", reading.AQI)
	} else {
		exercises = []schema.Exercise{
			{Name: "Brisk Walk / Jog", Sets: 1, Reps: "20 mins", Notes: "Maintain steady pace"},
			{Name: "Park Bench Dips", Sets: 3, Reps: "10 reps"},
			{Name: "Lunges", Sets: 3, Reps: "10 per leg"},
		}
		duration = outdoorDuration
		calories = outdoorCalories * 0.8
		if intensity == schema.IntensityHigh {
			calories = outdoorCalories * 1.2
		}
		advice = fmt.Sprintf("Air quality is acceptable (%.0f). Enjoy your outdoor session!", reading.AQI)
	}

	return schema.WorkoutPlan{
		Type:             workoutType,
		Intensity:        intensity,
		Exercises:        exercises,
		DurationMinutes:  duration,
		CaloriesEstimate: int(math.Round(calories)),
		Advice:           advice,
	}
}
