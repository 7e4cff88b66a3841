package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/aerovital/navigator-api/atmosphere"
	"github.com/aerovital/navigator-api/background"
	"github.com/aerovital/navigator-api/external/gemini"
	"github.com/aerovital/navigator-api/geo"
	"github.com/aerovital/navigator-api/logmodule"
	"github.com/aerovital/navigator-api/poller"
	"github.com/aerovital/navigator-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// DocumentAnalyzer extracts a medical profile from an uploaded document.
type DocumentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, imageBase64 string) (*gemini.Extraction, error)
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.AeroVitalStore

	// Shared readings state, written only by the aggregator
	state *atmosphere.State

	// Polling aggregator bound to the active coordinates
	aggregator *poller.Aggregator

	// Alert fan-out feeding the SSE stream
	hub *background.Hub

	// External services
	analyzer DocumentAnalyzer
	resolver geo.LocationResolver
}

// NewServer new instance of server
func NewServer(
	profileStore store.AeroVitalStore,
	state *atmosphere.State,
	aggregator *poller.Aggregator,
	hub *background.Hub,
	analyzer DocumentAnalyzer,
	resolver geo.LocationResolver,
) *Server {
	return &Server{
		store:      profileStore,
		state:      state,
		aggregator: aggregator,
		hub:        hub,
		analyzer:   analyzer,
		resolver:   resolver,
	}
}

// Run to run the server. wrap, when non-nil, is applied around the whole
// route tree; production passes the offline cache middleware here.
func (s *Server) Run(addr string, wrap func(http.Handler) http.Handler) error {
	var handler http.Handler = s.setupRouter()
	if wrap != nil {
		handler = wrap(handler)
	}

	s.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	apiRoute.GET("/information", s.information)

	accountRoute := apiRoute.Group("/accounts")
	{
		accountRoute.POST("/:accountNumber/profile", s.profileCreate)
		accountRoute.GET("/:accountNumber/profile", s.profileDetail)
		accountRoute.PUT("/:accountNumber/profile", s.profileReplace)
		accountRoute.DELETE("/:accountNumber/profile", s.profileDelete)
	}

	apiRoute.GET("/readings/current", s.currentReadings)
	apiRoute.POST("/risk/stream", s.riskStream)
	apiRoute.GET("/workout/plan", s.workoutPlan)
	apiRoute.GET("/aqi/stream/start", s.streamStart)
	apiRoute.GET("/spike/detect", s.spikeDetect)
	apiRoute.POST("/document/analyze", s.documentAnalyze)
	apiRoute.GET("/alerts/stream", s.alertStream)

	r.GET("/healthz", s.healthz)

	// the PWA shell; everything unmatched falls through to static files
	if assets := viper.GetString("server.assets"); assets != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(assets))))
	}

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"system_version": "AeroVital 3.0",
			"docs":           viper.GetStringMap("docs"),
		},
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
