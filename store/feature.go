package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

var (
	ErrNoFeatureData = fmt.Errorf("no feature data")
)

type FeatureStore interface {
	// replace the whole feature history of a country
	ReplaceFeatures(country string, rows []schema.FeatureRow) error
	// feature history of a country, ascending by day
	GetFeatures(country string) ([]schema.FeatureRow, error)
	FeatureCountries() ([]string, error)
}

// featureDocument is a stored feature row tagged with the revision of the
// history it belongs to.
type featureDocument struct {
	Revision          primitive.ObjectID `bson:"revision"`
	schema.FeatureRow `bson:",inline"`
}

// featureRevision points at the current feature history of a country.
type featureRevision struct {
	Country   string             `bson:"country"`
	Revision  primitive.ObjectID `bson:"revision"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// ReplaceFeatures writes rows as a new revision and switches the country to
// it. The previous history stays readable until the switch and is kept when
// any step before it fails.
func (m mongoDB) ReplaceFeatures(country string, rows []schema.FeatureRow) error {
	for _, r := range rows {
		if r.Country != country {
			return fmt.Errorf("feature row of %q stored as %q", r.Country, country)
		}
	}

	features := m.collection(schema.FeatureCollection)
	revisions := m.collection(schema.FeatureRevisionCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if len(rows) == 0 {
		if _, err := revisions.DeleteOne(ctx, bson.M{"country": country}); err != nil {
			log.WithFields(log.Fields{"prefix": mongoLogPrefix, "country": country, "error": err}).Error("delete feature revision")
			return err
		}
		if _, err := features.DeleteMany(ctx, bson.M{"country": country}); err != nil {
			log.WithFields(log.Fields{"prefix": mongoLogPrefix, "country": country, "error": err}).Error("delete features")
			return err
		}
		return nil
	}

	revision := primitive.NewObjectID()
	data := make([]interface{}, len(rows))
	for i, r := range rows {
		data[i] = featureDocument{Revision: revision, FeatureRow: r}
	}

	if _, err := features.InsertMany(ctx, data, options.InsertMany().SetOrdered(true)); err != nil {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "country": country, "error": err}).Error("insert features")
		m.dropRevision(country, revision)
		return err
	}

	_, err := revisions.UpdateOne(ctx,
		bson.M{"country": country},
		bson.M{"$set": featureRevision{Country: country, Revision: revision, UpdatedAt: time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "country": country, "error": err}).Error("switch feature revision")
		m.dropRevision(country, revision)
		return err
	}

	// stale revisions are unreachable once switched
	res, err := features.DeleteMany(ctx, bson.M{"country": country, "revision": bson.M{"$ne": revision}})
	if err != nil {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "country": country, "error": err}).Warn("delete stale features")
		return nil
	}

	log.WithFields(log.Fields{
		"prefix":   mongoLogPrefix,
		"country":  country,
		"deleted":  res.DeletedCount,
		"inserted": len(rows),
	}).Debug("replace features")

	return nil
}

func (m mongoDB) dropRevision(country string, revision primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.collection(schema.FeatureCollection)
	if _, err := c.DeleteMany(ctx, bson.M{"country": country, "revision": revision}); err != nil {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "country": country, "error": err}).Error("drop feature revision")
	}
}

func (m mongoDB) currentRevision(ctx context.Context, country string) (primitive.ObjectID, error) {
	var current featureRevision
	err := m.collection(schema.FeatureRevisionCollection).
		FindOne(ctx, bson.M{"country": country}).
		Decode(&current)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, ErrNoFeatureData
		}
		return primitive.NilObjectID, err
	}
	return current.Revision, nil
}

func (m mongoDB) GetFeatures(country string) ([]schema.FeatureRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	revision, err := m.currentRevision(ctx, country)
	if err != nil {
		return nil, err
	}

	c := m.collection(schema.FeatureCollection)
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cur, err := c.Find(ctx, bson.M{"country": country, "revision": revision}, opts)
	if err != nil {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "country": country, "error": err}).Error("find features")
		return nil, err
	}

	var docs []featureDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, ErrNoFeatureData
	}

	rows := make([]schema.FeatureRow, len(docs))
	for i, d := range docs {
		rows[i] = d.FeatureRow
	}

	return rows, nil
}

func (m mongoDB) FeatureCountries() ([]string, error) {
	c := m.collection(schema.FeatureRevisionCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	values, err := c.Distinct(ctx, "country", bson.M{})
	if err != nil {
		return nil, err
	}

	countries := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			countries = append(countries, s)
		}
	}
	sort.Strings(countries)

	return countries, nil
}
