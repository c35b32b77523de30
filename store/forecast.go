package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

var (
	ErrNoForecast = fmt.Errorf("no forecast")
)

type ForecastStore interface {
	SaveForecast(f schema.Forecast) error
	LatestForecast(country string) (*schema.Forecast, error)
}

// SaveForecast keeps one forecast per run and country, a rerun replaces it
func (m mongoDB) SaveForecast(f schema.Forecast) error {
	c := m.collection(schema.ForecastCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	filter := bson.M{"run_id": f.RunID, "country": f.Country}
	opts := options.Replace().SetUpsert(true)
	if _, err := c.ReplaceOne(ctx, filter, f, opts); err != nil {
		log.WithFields(log.Fields{
			"prefix":  mongoLogPrefix,
			"run":     f.RunID,
			"country": f.Country,
			"error":   err,
		}).Error("save forecast")
		return err
	}

	log.WithFields(log.Fields{
		"prefix":  mongoLogPrefix,
		"run":     f.RunID,
		"country": f.Country,
		"status":  f.Status,
		"rows":    len(f.Rows),
	}).Debug("save forecast")

	return nil
}

func (m mongoDB) LatestForecast(country string) (*schema.Forecast, error) {
	c := m.collection(schema.ForecastCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.M{"created_at": -1})

	var f schema.Forecast
	if err := c.FindOne(ctx, bson.M{"country": country}, opts).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoForecast
		}
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "country": country, "error": err}).Error("find forecast")
		return nil, err
	}

	return &f, nil
}
