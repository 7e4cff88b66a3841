package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aerovital/navigator-api/fitness"
	"github.com/aerovital/navigator-api/schema"
	"github.com/aerovital/navigator-api/score"
	"github.com/aerovital/navigator-api/store"
)

func (s *Server) currentReadings(c *gin.Context) {
	readings, loading := s.state.Current()

	result := gin.H{
		"aqi":         readings.AQI,
		"pm25":        readings.PM25,
		"temperature": readings.Temperature,
		"humidity":    readings.Humidity,
		"loading":     loading,
	}

	if name := s.resolvePlaceName(c); name != "" {
		result["location"] = name
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// resolvePlaceName reverse-geocodes the lat/lon query when a resolver is
// wired. Resolution failures never fail the request.
func (s *Server) resolvePlaceName(c *gin.Context) string {
	if s.resolver == nil {
		return ""
	}

	lat, lon, ok := coordQuery(c)
	if !ok {
		return ""
	}

	loc, err := s.resolver.ResolvePlace(schema.Location{Latitude: lat, Longitude: lon})
	if err != nil {
		log.WithError(err).Debug("place resolution failed")
		return ""
	}
	return loc.Name
}

type riskStreamRequest struct {
	Latitude      float64 `json:"lat"`
	Longitude     float64 `json:"lon"`
	AccountNumber string  `json:"account_number"`
}

func (s *Server) riskStream(c *gin.Context) {
	var params riskStreamRequest
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	reading, ok := s.snapshotReading(params.Latitude, params.Longitude)
	if !ok {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorNoReading)
		return
	}

	// a missing profile degrades to population-baseline risk
	profile := s.optionalProfile(c, params.AccountNumber)
	if c.IsAborted() {
		return
	}

	assessment := score.CalculateHealthRisk(reading, profile)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"risks":   assessment,
	})
}

func (s *Server) workoutPlan(c *gin.Context) {
	day, _ := strconv.Atoi(c.Query("day"))

	reading, ok := s.snapshotReading(0, 0)
	if !ok {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorNoReading)
		return
	}

	profile := s.optionalProfile(c, c.Query("account_number"))
	if c.IsAborted() {
		return
	}

	plan := fitness.GenerateWorkoutPlan(reading, profile, day)

	c.JSON(http.StatusOK, gin.H{"result": plan})
}

func (s *Server) streamStart(c *gin.Context) {
	lat, lon, ok := coordQuery(c)
	if !ok {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	s.aggregator.Start(lat, lon)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) spikeDetect(c *gin.Context) {
	readings, loading := s.state.Current()
	if loading {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorNoReading)
		return
	}

	baseline := s.state.Baseline()

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"spike":    score.CheckAQISpike(baseline, readings.AQI),
		"baseline": baseline,
		"current":  readings.AQI,
	})
}

// snapshotReading rebuilds a reading value from the shared state. ok is false
// while the state is still waiting for its first successful poll.
func (s *Server) snapshotReading(lat, lon float64) (schema.AtmosphericReading, bool) {
	readings, loading := s.state.Current()
	if loading {
		return schema.AtmosphericReading{}, false
	}

	return schema.AtmosphericReading{
		AQI:         readings.AQI,
		PM25:        readings.PM25,
		Temperature: readings.Temperature,
		Humidity:    readings.Humidity,
		Latitude:    lat,
		Longitude:   lon,
		Timestamp:   time.Now().UnixMilli(),
	}, true
}

// optionalProfile loads the account's profile when an account number is
// given. A missing profile is not an error; a store failure aborts.
func (s *Server) optionalProfile(c *gin.Context, accountNumber string) *schema.UserProfile {
	if accountNumber == "" {
		return nil
	}

	profile, err := s.store.GetProfile(accountNumber)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil
		}
		log.Error(err)
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return nil
	}
	return profile
}

func coordQuery(c *gin.Context) (float64, float64, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
