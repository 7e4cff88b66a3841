package score

import (
	"math"

	"github.com/aerovital/navigator-api/schema"
)

const (
	aqiScale        = 500
	asthmaAQIScale  = 400
	pm25Scale       = 100
	pm25Weight      = 40
	heatStressTemp  = 35
	coldStressTemp  = 10
	heatStressRisk  = 20
	coldStressRisk  = 10
	seniorAge       = 50
	seniorFactor    = 1.2
	cardiacFactor   = 1.5
	asthmaFactor    = 1.8
	severeThreshold = 75
	highThreshold   = 50
	midThreshold    = 25
)

const (
	recCardiacCondition = "High Cardiac Stress detected. Heart condition precautions active."
	recAsthmaCondition  = "Respiratory Alert: Keep inhaler nearby."
	recSevereAvoid      = "AVOID all outdoor physical activity."
	recSevereMask       = "Wear N95/N99 mask if stepping out is unavoidable."
	recHighReduce       = "Reduce intensity of outdoor exercise."
	recHighSensitive    = "Sensitive groups should stay indoors."
	recModerateLimit    = "Limit prolonged outdoor exertion."
)

// CalculateHealthRisk maps one atmospheric reading and an optional user
// profile to normalized risk scores. Pure function of its inputs; a nil
// profile degrades to base-AQI-only risk without personalization
// multipliers.
//
// Recommendation emission order is part of the contract: condition-triggered
// messages first (cardiac, then asthma), tier messages last.
func CalculateHealthRisk(reading schema.AtmosphericReading, profile *schema.UserProfile) schema.RiskAssessment {
	recommendations := []string{}

	baseRisk := reading.AQI / aqiScale * 100

	cardiacRisk := reading.PM25 / pm25Scale * pm25Weight
	if reading.Temperature > heatStressTemp {
		cardiacRisk += heatStressRisk
	}
	if reading.Temperature < coldStressTemp {
		cardiacRisk += coldStressRisk
	}

	if profile != nil {
		if profile.Age > seniorAge {
			cardiacRisk *= seniorFactor
		}
		if profile.MedicalConditions.Cardiovascular {
			cardiacRisk *= cardiacFactor
			recommendations = append(recommendations, recCardiacCondition)
		}
	}

	asthmaRisk := reading.AQI / asthmaAQIScale * 100
	if profile != nil && profile.MedicalConditions.Respiratory {
		asthmaRisk *= asthmaFactor
		recommendations = append(recommendations, recAsthmaCondition)
	}

	cardiacRisk = math.Min(cardiacRisk, 100)
	asthmaRisk = math.Min(asthmaRisk, 100)

	generalRisk := math.Max(cardiacRisk, math.Max(asthmaRisk, baseRisk))

	riskLevel := schema.RiskLevelLow
	switch {
	case generalRisk > severeThreshold:
		riskLevel = schema.RiskLevelSevere
	case generalRisk > highThreshold:
		riskLevel = schema.RiskLevelHigh
	case generalRisk > midThreshold:
		riskLevel = schema.RiskLevelModerate
	}

	switch riskLevel {
	case schema.RiskLevelSevere:
		recommendations = append(recommendations, recSevereAvoid, recSevereMask)
	case schema.RiskLevelHigh:
		recommendations = append(recommendations, recHighReduce, recHighSensitive)
	case schema.RiskLevelModerate:
		recommendations = append(recommendations, recModerateLimit)
	}

	return schema.RiskAssessment{
		CardiacRisk:     math.Round(cardiacRisk),
		AsthmaRisk:      math.Round(asthmaRisk),
		GeneralRisk:     math.Round(generalRisk),
		RiskLevel:       riskLevel,
		Recommendations: recommendations,
	}
}
