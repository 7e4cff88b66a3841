package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type documentAnalyzeRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// documentAnalyze extracts medical profile fields from an uploaded document
// image. Any analyzer failure collapses into one generic processing error.
func (s *Server) documentAnalyze(c *gin.Context) {
	var params documentAnalyzeRequest
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if params.ImageBase64 == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	if s.analyzer == nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorDocumentAnalysis)
		return
	}

	extraction, err := s.analyzer.AnalyzeDocument(c.Request.Context(), params.ImageBase64)
	if err != nil {
		log.WithError(err).Error("document analysis failed")
		abortWithEncoding(c, http.StatusInternalServerError, errorDocumentAnalysis)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": extraction})
}
