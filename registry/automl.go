package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const (
	autopilotRunning   = "running"
	autopilotCompleted = "completed"
	autopilotFailed    = "failed"

	defaultPollInterval = 30 * time.Second
)

var (
	errEmptyURL         = fmt.Errorf("empty modeling service url")
	errResponseStatus   = fmt.Errorf("response status not ok")
	errAutopilotFailed  = fmt.Errorf("autopilot failed")
	errEmptyPrediction  = fmt.Errorf("empty prediction")
	errNoModel          = fmt.Errorf("no model selected")
	errUnknownAutopilot = fmt.Errorf("unknown autopilot status")
)

// AutoMLConfig configures the client of the AutoML modeling service.
type AutoMLConfig struct {
	URL          string
	Token        string
	Features     []string
	PollInterval time.Duration
	Rate         float64 // requests per second, unlimited when not positive
	Burst        int
}

// AutoML talks to an AutoML service over JSON/HTTP. Each country gets its own
// time series project with target total_confirmed and a one day horizon; the
// best model found by autopilot is used for predictions.
type AutoML struct {
	client   *http.Client
	url      string
	token    string
	features []string
	poll     time.Duration
	limiter  *rate.Limiter
}

type projectRequest struct {
	Name            string                   `json:"name"`
	Target          string                   `json:"target"`
	TimeSeries      bool                     `json:"time_series"`
	DatetimeColumn  string                   `json:"datetime_column"`
	SeriesIDColumn  string                   `json:"series_id_column"`
	ForecastHorizon int                      `json:"forecast_horizon_days"`
	Rows            []map[string]interface{} `json:"rows"`
}

type projectResponse struct {
	ProjectID string `json:"project_id"`
}

type autopilotResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type modelResponse struct {
	ModelID string `json:"model_id"`
}

type predictionRequest struct {
	Rows []map[string]interface{} `json:"rows"`
}

type predictionResponse struct {
	Predictions []float64 `json:"predictions"`
}

// NewAutoML returns a client using the given http client, which owns
// connection reuse and transport level timeouts.
func NewAutoML(client *http.Client, cfg AutoMLConfig) (*AutoML, error) {
	if cfg.URL == "" {
		return nil, errEmptyURL
	}

	if client == nil {
		client = &http.Client{Timeout: time.Minute}
	}

	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	features := cfg.Features
	if len(features) == 0 {
		features = schema.OutputColumns
	}

	return &AutoML{
		client:   client,
		url:      strings.TrimRight(cfg.URL, "/"),
		token:    cfg.Token,
		features: features,
		poll:     poll,
		limiter:  rate.NewLimiter(limit, burst),
	}, nil
}

// Train creates a project from the history, runs autopilot to completion and
// picks the best model.
func (a *AutoML) Train(ctx context.Context, country string, rows []schema.FeatureRow) (Handle, error) {
	h, err := a.train(ctx, country, rows)
	if err != nil {
		return Handle{}, &TrainingFailedError{Country: country, Err: err}
	}
	return h, nil
}

func (a *AutoML) train(ctx context.Context, country string, rows []schema.FeatureRow) (Handle, error) {
	req := projectRequest{
		Name:            fmt.Sprintf("covid-forecast-%s", country),
		Target:          schema.ColumnTotalConfirmed,
		TimeSeries:      true,
		DatetimeColumn:  schema.ColumnTimestamp,
		SeriesIDColumn:  schema.ColumnCountry,
		ForecastHorizon: 1,
		Rows:            make([]map[string]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		req.Rows = append(req.Rows, a.encodeRow(r, true))
	}

	var project projectResponse
	if err := a.do(ctx, http.MethodPost, "/projects", req, &project); err != nil {
		return Handle{}, err
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"country": country,
		"project": project.ProjectID,
		"rows":    len(rows),
	}).Info("project created")

	autopilotPath := fmt.Sprintf("/projects/%s/autopilot", url.PathEscape(project.ProjectID))
	if err := a.do(ctx, http.MethodPost, autopilotPath, nil, nil); err != nil {
		return Handle{}, err
	}

	if err := a.waitAutopilot(ctx, autopilotPath); err != nil {
		return Handle{}, err
	}

	var model modelResponse
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%s/models/best", url.PathEscape(project.ProjectID)), nil, &model); err != nil {
		return Handle{}, err
	}
	if model.ModelID == "" {
		return Handle{}, errNoModel
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"country": country,
		"project": project.ProjectID,
		"model":   model.ModelID,
	}).Info("model selected")

	return Handle{ProjectID: project.ProjectID, ModelID: model.ModelID}, nil
}

func (a *AutoML) waitAutopilot(ctx context.Context, path string) error {
	ticker := time.NewTicker(a.poll)
	defer ticker.Stop()

	for {
		var status autopilotResponse
		if err := a.do(ctx, http.MethodGet, path, nil, &status); err != nil {
			return err
		}

		switch status.Status {
		case autopilotCompleted:
			return nil
		case autopilotFailed:
			return fmt.Errorf("%w: %s", errAutopilotFailed, status.Error)
		case autopilotRunning:
		default:
			return fmt.Errorf("%w: %q", errUnknownAutopilot, status.Status)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Predict asks the model for the total following row.
func (a *AutoML) Predict(ctx context.Context, h Handle, row schema.FeatureRow) (float64, error) {
	v, err := a.predict(ctx, h, row)
	if err != nil {
		return 0, &PredictionFailedError{Country: row.Country, Err: err}
	}
	return v, nil
}

func (a *AutoML) predict(ctx context.Context, h Handle, row schema.FeatureRow) (float64, error) {
	path := fmt.Sprintf("/projects/%s/models/%s/predictions", url.PathEscape(h.ProjectID), url.PathEscape(h.ModelID))
	req := predictionRequest{
		Rows: []map[string]interface{}{a.encodeRow(row, false)},
	}

	var resp predictionResponse
	if err := a.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return 0, err
	}
	if len(resp.Predictions) == 0 {
		return 0, errEmptyPrediction
	}
	return resp.Predictions[0], nil
}

// encodeRow keeps the configured feature columns; the target is only sent
// for training rows.
func (a *AutoML) encodeRow(row schema.FeatureRow, withTarget bool) map[string]interface{} {
	m := make(map[string]interface{}, len(a.features))
	for _, name := range a.features {
		if name == schema.ColumnTotalConfirmed && !withTarget {
			continue
		}
		if v, ok := row.Column(name); ok {
			m[name] = v
		}
	}
	if withTarget {
		m[schema.ColumnTotalConfirmed] = row.TotalConfirmed
	}
	// the series keys are always needed by a time series project
	m[schema.ColumnCountry] = row.Country
	m[schema.ColumnTimestamp] = row.Timestamp.Format(schema.DateLayout)
	return m
}

func (a *AutoML) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.url+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Token "+a.token)
	}

	resp, err := a.client.Do(req)
	if nil != err {
		return err
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
			"body":   string(data),
		}).Error("modeling service request")
		return fmt.Errorf("%w: %d %s", errResponseStatus, resp.StatusCode, path)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
