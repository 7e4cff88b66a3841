package schema

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelModerate RiskLevel = "MODERATE"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelSevere   RiskLevel = "SEVERE"
)

// RiskAssessment - normalized health risk scores for one reading and one
// profile. Purely derived and ephemeral; recomputed on every new reading and
// never persisted.
type RiskAssessment struct {
	CardiacRisk     float64   `json:"cardiac_risk"`
	AsthmaRisk      float64   `json:"asthma_risk"`
	GeneralRisk     float64   `json:"general_risk"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Recommendations []string  `json:"recommendations"`
}
