package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aerovital/navigator-api/schema"
	"github.com/aerovital/navigator-api/store"
)

type profileRequest struct {
	Name              string                   `json:"name"`
	Age               int                      `json:"age"`
	Weight            float64                  `json:"weight"`
	Height            float64                  `json:"height"`
	MedicalConditions schema.MedicalConditions `json:"medical_conditions"`
	Medications       []string                 `json:"medications"`
	FitnessLevel      schema.FitnessLevel      `json:"fitness_level"`
}

func (r profileRequest) valid() bool {
	return r.Age > 0 && r.Weight > 0 && r.Height > 0
}

func (s *Server) profileCreate(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	var params profileRequest
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if !params.valid() {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	profile := schema.NewUserProfile(schema.UserProfile{
		AccountNumber:     accountNumber,
		Name:              params.Name,
		Age:               params.Age,
		Weight:            params.Weight,
		Height:            params.Height,
		MedicalConditions: params.MedicalConditions,
		Medications:       params.Medications,
		FitnessLevel:      params.FitnessLevel,
	})

	if err := s.store.CreateProfile(profile); err != nil {
		if errors.Is(err, store.ErrProfileExists) {
			abortWithEncoding(c, http.StatusConflict, errorProfileTaken)
			return
		}
		if shouldInterupt(err, c) {
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"result": profile})
}

func (s *Server) profileDetail(c *gin.Context) {
	profile, err := s.store.GetProfile(c.Param("accountNumber"))
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			abortWithEncoding(c, http.StatusNotFound, errorProfileNotFound)
			return
		}
		if shouldInterupt(err, c) {
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"result": profile})
}

// profileReplace swaps the whole stored document. Partial updates are not
// supported; the client always submits the complete profile.
func (s *Server) profileReplace(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	var params profileRequest
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if !params.valid() {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	existing, err := s.store.GetProfile(accountNumber)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			abortWithEncoding(c, http.StatusNotFound, errorProfileNotFound)
			return
		}
		if shouldInterupt(err, c) {
			return
		}
	}

	replacement := schema.UserProfile{
		ID:                existing.ID,
		AccountNumber:     accountNumber,
		Name:              params.Name,
		Age:               params.Age,
		Weight:            params.Weight,
		Height:            params.Height,
		BMI:               schema.DeriveBMI(params.Weight, params.Height),
		MedicalConditions: params.MedicalConditions,
		Medications:       params.Medications,
		FitnessLevel:      params.FitnessLevel,
		CreatedAt:         existing.CreatedAt,
	}

	if err := s.store.ReplaceProfile(replacement); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			abortWithEncoding(c, http.StatusNotFound, errorProfileNotFound)
			return
		}
		if shouldInterupt(err, c) {
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"result": replacement})
}

func (s *Server) profileDelete(c *gin.Context) {
	if err := s.store.DeleteProfile(c.Param("accountNumber")); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			abortWithEncoding(c, http.StatusNotFound, errorProfileNotFound)
			return
		}
		if shouldInterupt(err, c) {
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
