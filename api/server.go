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

	"github.com/bitmark-inc/autonomy-forecast/logmodule"
	"github.com/bitmark-inc/autonomy-forecast/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// ForecastScheduler starts forecast runs in the background
type ForecastScheduler interface {
	ScheduleForecast(ctx context.Context, country string, horizon int) (string, error)
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	mongoStore store.MongoStore
	bindings   store.BindingStore

	// background forecast runs
	scheduler ForecastScheduler

	// days ahead of a forecast requested without one
	horizon int

	adminKey string
}

// NewServer new instance of server
func NewServer(
	mongoStore store.MongoStore,
	bindings store.BindingStore,
	scheduler ForecastScheduler,
	horizon int,
	adminKey string) *Server {
	return &Server{
		mongoStore: mongoStore,
		bindings:   bindings,
		scheduler:  scheduler,
		horizon:    horizon,
		adminKey:   adminKey,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
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

	apiRoute := r.Group("/v1")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	{
		apiRoute.GET("/countries", s.getCountries)
		apiRoute.GET("/forecasts/:country", s.getForecast)
		apiRoute.GET("/bindings/:country", s.getBinding)
	}

	secretRoute := r.Group("/v1")
	secretRoute.Use(logmodule.Ginrus("Secret"))
	secretRoute.Use(s.apikeyAuthentication(s.adminKey))
	{
		secretRoute.POST("/forecasts/:country", s.scheduleForecast)
	}

	r.GET("/healthz", s.healthz)

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
	err := s.mongoStore.Ping()
	if shouldInterupt(err, c) {
		return
	}

	err = s.bindings.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
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
