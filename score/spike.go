package score

import (
	"github.com/aerovital/navigator-api/consts"
)

// CheckAQISpike reports whether the current AQI counts as a pollution spike
// relative to the recent baseline. A hazardous absolute level is always a
// spike; otherwise the current value must exceed the baseline by the spike
// ratio. With no baseline collected yet, only the absolute check applies.
func CheckAQISpike(baseline, current float64) bool {
	if current >= consts.HazardousAQI {
		return true
	}
	if baseline <= 0 {
		return false
	}
	return current/baseline > consts.SpikeRatio
}
