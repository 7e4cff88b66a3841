package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpikeAboveRatio(t *testing.T) {
	assert.True(t, CheckAQISpike(100, 120))
}

func TestNoSpikeWithinRatio(t *testing.T) {
	assert.False(t, CheckAQISpike(100, 105))
}

func TestSpikeAtHazardousLevel(t *testing.T) {
	assert.True(t, CheckAQISpike(0, 250))
}

func TestNoSpikeWithoutBaseline(t *testing.T) {
	assert.False(t, CheckAQISpike(0, 180))
}
