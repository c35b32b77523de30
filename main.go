package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/autonomy-forecast/export"
	"github.com/bitmark-inc/autonomy-forecast/external/feed"
	"github.com/bitmark-inc/autonomy-forecast/feature"
	"github.com/bitmark-inc/autonomy-forecast/forecast"
	"github.com/bitmark-inc/autonomy-forecast/normalize"
	"github.com/bitmark-inc/autonomy-forecast/panel"
	"github.com/bitmark-inc/autonomy-forecast/registry"
	"github.com/bitmark-inc/autonomy-forecast/schema"
	"github.com/bitmark-inc/autonomy-forecast/store"
)

const (
	exitAllFailed = 1
	exitMalformed = 2
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("forecast")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("forecast.days_ahead", 10)
	viper.SetDefault("forecast.epoch", "2019-11-01")
	viper.SetDefault("forecast.concurrency", 4)
	viper.SetDefault("forecast.parity", true)
	viper.SetDefault("forecast.train_timeout", 2*time.Hour)
	viper.SetDefault("forecast.step_timeout", time.Minute)
	viper.SetDefault("registry.kind", "automl")
	viper.SetDefault("registry.drift_window", 7)
	viper.SetDefault("output.file", export.DefaultFile)
}

func sourceSchema() normalize.SourceSchema {
	s := normalize.DefaultSourceSchema()
	columns := map[string]*string{
		"source.columns.country":   &s.Country,
		"source.columns.latitude":  &s.Latitude,
		"source.columns.longitude": &s.Longitude,
		"source.columns.date":      &s.Date,
		"source.columns.value":     &s.Value,
		"source.date_format":       &s.DateLayout,
	}
	for key, field := range columns {
		if v := viper.GetString(key); v != "" {
			*field = v
		}
	}
	return s
}

func newRegistry() (registry.Registry, error) {
	switch kind := viper.GetString("registry.kind"); kind {
	case "drift":
		return registry.NewDrift(viper.GetInt("registry.drift_window")), nil
	case "automl":
		return registry.NewAutoML(&http.Client{Timeout: time.Minute}, registry.AutoMLConfig{
			URL:          viper.GetString("registry.url"),
			Token:        viper.GetString("registry.token"),
			Features:     viper.GetStringSlice("forecast.features"),
			PollInterval: viper.GetDuration("registry.poll_interval"),
			Rate:         viper.GetFloat64("registry.rate"),
			Burst:        viper.GetInt("registry.burst"),
		})
	default:
		return nil, fmt.Errorf("unknown registry kind: %s", kind)
	}
}

func loadRecords(ctx context.Context, s normalize.SourceSchema) ([]schema.Record, error) {
	if file := viper.GetString("source.file"); file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return normalize.LoadCSV(f, s)
	}
	return feed.New(viper.GetString("source.url"), s, nil).Fetch(ctx)
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	defer sentry.Flush(5 * time.Second)

	epoch, err := time.Parse(schema.DateLayout, viper.GetString("forecast.epoch"))
	if err != nil {
		log.Panicf("invalid epoch: %s", err)
	}

	r, err := newRegistry()
	if err != nil {
		log.Panicf("create model registry with error: %s", err)
	}

	p := &pipeline{
		epoch:     epoch,
		countries: viper.GetStringSlice("forecast.countries"),
		output:    viper.GetString("output.file"),
		runner: &forecast.Runner{
			Trainer: r,
			Driver: &forecast.Driver{
				Predictor:   r,
				Parity:      viper.GetBool("forecast.parity"),
				StepTimeout: viper.GetDuration("forecast.step_timeout"),
			},
			Concurrency:  viper.GetInt("forecast.concurrency"),
			Horizon:      viper.GetInt("forecast.days_ahead"),
			TrainTimeout: viper.GetDuration("forecast.train_timeout"),
		},
	}

	if conn := viper.GetString("orm.conn"); conn != "" {
		ormDB, err := gorm.Open("postgres", conn)
		if err != nil {
			log.Panic(err)
		}
		defer ormDB.Close()
		p.runner.Bindings = store.NewBindingStore(ormDB)
	}

	if conn := viper.GetString("mongo.conn"); conn != "" {
		opts := options.Client().ApplyURI(conn)
		opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
		mongoClient, err := mongo.NewClient(opts)
		if nil != err {
			log.Panicf("create mongo client with error: %s", err)
		}

		if err := mongoClient.Connect(context.Background()); nil != err {
			log.Panicf("connect mongo database with error: %s", err)
		}

		mongoStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))
		defer mongoStore.Close()
		p.mongoStore = mongoStore
	}

	ctx := context.Background()

	records, err := loadRecords(ctx, sourceSchema())
	if err != nil {
		log.WithFields(log.Fields{"prefix": "main", "error": err}).Error("load source")
		var malformed *normalize.MalformedInputError
		if errors.As(err, &malformed) {
			os.Exit(exitMalformed)
		}
		log.Panic(err)
	}

	if _, err := p.run(ctx, uuid.New().String(), records); err != nil {
		log.WithFields(log.Fields{"prefix": "main", "error": err}).Error("forecast run failed")
		sentry.Flush(5 * time.Second)
		os.Exit(exitAllFailed)
	}
}

var errAllFailed = errors.New("forecast failed for every country")

type pipeline struct {
	epoch      time.Time
	countries  []string
	output     string
	runner     *forecast.Runner
	mongoStore store.MongoStore
}

// run builds the features of the records, forecasts every requested country
// and writes the output file once at the end. An empty country list means
// every country of the panel.
func (p *pipeline) run(ctx context.Context, runID string, records []schema.Record) ([]forecast.Result, error) {
	rows := panel.Build(records, p.epoch)
	features := feature.Compute(rows)

	countries := p.countries
	if len(countries) == 0 {
		countries = panel.Countries(rows)
	}

	log.WithFields(log.Fields{
		"prefix":    "main",
		"run":       runID,
		"records":   len(records),
		"countries": len(countries),
	}).Info("forecast run started")

	results := p.runner.Run(ctx, runID, features, countries)

	if err := export.WriteFile(p.output, results); err != nil {
		return results, err
	}

	if p.mongoStore != nil {
		p.persist(runID, features, results)
	}

	failed := forecast.Failed(results)
	log.WithFields(log.Fields{
		"prefix": "main",
		"run":    runID,
		"failed": len(failed),
		"total":  len(results),
	}).Info("forecast run finished")

	if len(results) > 0 && len(failed) == len(results) {
		return results, errAllFailed
	}
	return results, nil
}

func (p *pipeline) persist(runID string, features []schema.FeatureRow, results []forecast.Result) {
	groups := feature.Split(features)
	for _, r := range results {
		if history, ok := groups[r.Country]; ok {
			if err := p.mongoStore.ReplaceFeatures(r.Country, history); err != nil {
				log.WithFields(log.Fields{"prefix": "main", "country": r.Country, "error": err}).Error("save features")
			}
		}

		if len(r.Rows) == 0 {
			continue
		}

		f := schema.Forecast{
			RunID:     runID,
			Country:   r.Country,
			ProjectID: r.Binding.ProjectID,
			ModelID:   r.Binding.ModelID,
			Horizon:   p.runner.Horizon,
			Status:    schema.ForecastCompleted,
			Rows:      r.Rows,
			CreatedAt: time.Now().UTC(),
		}
		if r.Err != nil {
			f.Status = schema.ForecastAborted
			f.Error = r.Err.Error()
		}

		if err := p.mongoStore.SaveForecast(f); err != nil {
			log.WithFields(log.Fields{"prefix": "main", "country": r.Country, "error": err}).Error("save forecast")
		}
	}
}
