package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bitmark-inc/autonomy-forecast/background"
	forecastWorker "github.com/bitmark-inc/autonomy-forecast/background/forecast"
	cadence "github.com/bitmark-inc/autonomy-forecast/external/cadence"
	"github.com/bitmark-inc/autonomy-forecast/forecast"
	"github.com/bitmark-inc/autonomy-forecast/registry"
	"github.com/bitmark-inc/autonomy-forecast/store"
)

var logger *zap.Logger

func init() {
	logger = buildLogger()
}

func buildLogger() *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level.SetLevel(zapcore.InfoLevel)

	var err error
	logger, err := config.Build()
	if err != nil {
		panic("Failed to setup logger")
	}

	return logger
}

func initSentry() {
	// Sentry
	logger.Info("Initializing sentry")
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		logger.Panic("fail to initialize sentry", zap.Error(err))
	}
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

	viper.SetDefault("forecast.parity", true)
	viper.SetDefault("forecast.step_timeout", time.Minute)
	viper.SetDefault("registry.kind", "automl")
	viper.SetDefault("registry.drift_window", 7)
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

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)
	initSentry()

	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		logger.Panic("create mongo client with error", zap.Error(err))
	}

	err = mongoClient.Connect(context.Background())
	if nil != err {
		logger.Panic("connect mongo database with error", zap.Error(err))
	}

	mongoStore := store.NewMongoStore(
		mongoClient,
		viper.GetString("mongo.database"),
	)

	ormDB, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if nil != err {
		logger.Panic("orm failed to connect to database", zap.Error(err))
	}

	r, err := newRegistry()
	if nil != err {
		logger.Panic("create model registry with error", zap.Error(err))
	}

	b := background.NewBackground(r, forecast.Driver{
		Parity:      viper.GetBool("forecast.parity"),
		StepTimeout: viper.GetDuration("forecast.step_timeout"),
	})

	worker := forecastWorker.NewForecastWorker(viper.GetString("cadence.domain"), mongoStore, store.NewBindingStore(ormDB), b)
	worker.Register()
	worker.Start(cadence.BuildCadenceServiceClient(viper.GetString("cadence.conn")), logger)
}
