package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"

	"github.com/bitmark-inc/autonomy-forecast/store"
)

const maxDaysAhead = 60

// country reads the country path parameter the way the normalizer stores
// country names.
func country(c *gin.Context) string {
	return norm.NFC.String(strings.TrimSpace(c.Param("country")))
}

func (s *Server) getCountries(c *gin.Context) {
	countries, err := s.mongoStore.FeatureCountries()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"countries": countries})
}

// getForecast returns the latest forecast of a country. With
// `predicted_only=true` the observed history is left out.
func (s *Server) getForecast(c *gin.Context) {
	var params struct {
		PredictedOnly bool `form:"predicted_only"`
	}
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	f, err := s.mongoStore.LatestForecast(country(c))
	if err != nil {
		switch err {
		case store.ErrNoForecast:
			abortWithEncoding(c, http.StatusNotFound, errorForecastNotFound)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	if params.PredictedOnly {
		f.Rows = f.Predicted()
	}

	c.JSON(http.StatusOK, f)
}

func (s *Server) getBinding(c *gin.Context) {
	b, err := s.bindings.LatestBinding(country(c))
	if err != nil {
		switch err {
		case store.ErrBindingNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorBindingNotFound)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, b)
}

// scheduleForecast starts a forecast run of a country in the background.
// The body is optional and may carry `days_ahead`.
func (s *Server) scheduleForecast(c *gin.Context) {
	var body struct {
		DaysAhead *int `json:"days_ahead"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.BindJSON(&body); err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
			return
		}
	}

	horizon := s.horizon
	if body.DaysAhead != nil {
		horizon = *body.DaysAhead
	}
	if horizon < 0 || horizon > maxDaysAhead {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, fmt.Errorf("days ahead out of range"))
		return
	}

	name := country(c)
	if _, err := s.mongoStore.GetFeatures(name); err != nil {
		switch err {
		case store.ErrNoFeatureData:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownCountry)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	id, err := s.scheduler.ScheduleForecast(c, name, horizon)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorScheduleForecast, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"workflow_id": id,
		"country":     name,
		"days_ahead":  horizon,
	})
}
