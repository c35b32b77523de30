package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-forecast/external/feed"
	"github.com/bitmark-inc/autonomy-forecast/feature"
	"github.com/bitmark-inc/autonomy-forecast/panel"
	"github.com/bitmark-inc/autonomy-forecast/store"
)

var errNothingReplaced = fmt.Errorf("no feature panel replaced")

type featureCrawler struct {
	mongoStore store.MongoStore
	source     feed.Feed
	epoch      time.Time
	countries  []string
}

// Run downloads the source feed and replaces the feature panel of every
// country found in it, or only of the configured countries when set. It fails
// when there were countries to crawl and none of them was stored.
func (c featureCrawler) Run(ctx context.Context) error {
	records, err := c.source.Fetch(ctx)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("fetch source feed")
		return err
	}

	groups := feature.Split(feature.Compute(panel.Build(records, c.epoch)))

	countries := c.countries
	if len(countries) == 0 {
		countries = make([]string, 0, len(groups))
		for country := range groups {
			countries = append(countries, country)
		}
	}

	count := 0
	for _, country := range countries {
		rows, ok := groups[country]
		if !ok {
			log.WithFields(log.Fields{"prefix": logPrefix, "country": country}).Warn("country not in source feed")
			continue
		}

		if err := c.mongoStore.ReplaceFeatures(country, rows); nil != err {
			log.WithFields(log.Fields{"prefix": logPrefix, "country": country, "error": err}).Error("replace features")
			continue
		}
		count++
		log.WithFields(log.Fields{"prefix": logPrefix, "country": country, "rows": len(rows)}).Debug("features replaced")
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "countries": count, "total": len(countries)}).Info("crawl finished")

	if count == 0 && len(countries) > 0 {
		return fmt.Errorf("%w: %d countries", errNothingReplaced, len(countries))
	}
	return nil
}

func newFeatureCrawler(mongoStore store.MongoStore, source feed.Feed, epoch time.Time, countries []string) Cron {
	return &featureCrawler{
		mongoStore: mongoStore,
		source:     source,
		epoch:      epoch,
		countries:  countries,
	}
}
