package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-forecast/normalize"
	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const (
	logPrefix      = "feed"
	defaultURL     = "https://data.humdata.org/hxlproxy/data/download/time_series_covid19_confirmed_global_narrow.csv"
	defaultTimeout = 60 * time.Second
)

var errResponseStatus = fmt.Errorf("unexpected response status")

// Feed - interface to download the confirmed case time series
type Feed interface {
	Fetch(ctx context.Context) ([]schema.Record, error)
}

type feed struct {
	client *http.Client
	url    string
	schema normalize.SourceSchema
}

// Fetch downloads the source file and normalizes it into canonical records.
func (f feed) Fetch(ctx context.Context) ([]schema.Record, error) {
	req, err := http.NewRequest(http.MethodGet, f.url, nil)
	if nil != err {
		return nil, err
	}
	req = req.WithContext(ctx)

	resp, err := f.client.Do(req)
	if nil != err {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"url":    f.url,
			"status": resp.StatusCode,
		}).Error("download source feed")
		return nil, fmt.Errorf("%w: %d", errResponseStatus, resp.StatusCode)
	}

	records, err := normalize.LoadCSV(resp.Body, f.schema)
	if nil != err {
		return nil, err
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"url":     f.url,
		"records": len(records),
	}).Info("source feed downloaded")

	return records, nil
}

// New returns a feed reading url with the given schema. An empty url means
// the public HDX time series, a nil client a client with a default timeout.
func New(url string, s normalize.SourceSchema, client *http.Client) Feed {
	u := defaultURL
	if url != "" {
		u = url
	}

	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &feed{
		client: client,
		url:    u,
		schema: s,
	}
}
