package schema

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProfileCollection = "profile"
)

type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
)

// MedicalConditions - condition flags used by the risk and fitness engines
type MedicalConditions struct {
	Cardiovascular     bool     `json:"cardiovascular" bson:"cardiovascular"`
	Respiratory        bool     `json:"respiratory" bson:"respiratory"`
	Metabolic          bool     `json:"metabolic" bson:"metabolic"`
	SpecificConditions []string `json:"specific_conditions" bson:"specific_conditions"`
}

// UserProfile - user medical and fitness profile data. Created once at
// onboarding completion; read-only afterward except full replacement.
type UserProfile struct {
	ID                string            `json:"id" bson:"id"`
	AccountNumber     string            `json:"account_number" bson:"account_number"`
	Name              string            `json:"name" bson:"name"`
	Age               int               `json:"age" bson:"age"`
	Weight            float64           `json:"weight" bson:"weight"`
	Height            float64           `json:"height" bson:"height"`
	BMI               float64           `json:"bmi" bson:"bmi"`
	MedicalConditions MedicalConditions `json:"medical_conditions" bson:"medical_conditions"`
	Medications       []string          `json:"medications" bson:"medications"`
	FitnessLevel      FitnessLevel      `json:"fitness_level" bson:"fitness_level"`
	CreatedAt         time.Time         `json:"created_at" bson:"created_at"`
}

// DeriveBMI computes body mass index from weight in kilograms and height in
// centimeters.
func DeriveBMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return weightKg / (m * m)
}

// NewUserProfile assigns an ID, derives the BMI and stamps the creation
// time. All other fields are taken as provided.
func NewUserProfile(p UserProfile) UserProfile {
	p.ID = uuid.New().String()
	p.BMI = DeriveBMI(p.Weight, p.Height)
	p.CreatedAt = time.Now().UTC()
	return p
}
