package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/autonomy-forecast/external/feed"
	"github.com/bitmark-inc/autonomy-forecast/normalize"
	"github.com/bitmark-inc/autonomy-forecast/panel"
	"github.com/bitmark-inc/autonomy-forecast/store"
)

const (
	logPrefix      = "cron"
	defaultTimeout = 15 * time.Second
	crawlTimeout   = 5 * time.Minute
)

type Cron interface {
	Run(ctx context.Context) error
}

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("forecast")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

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
}

func sourceSchema() normalize.SourceSchema {
	s := normalize.DefaultSourceSchema()
	if v := viper.GetString("source.columns.country"); v != "" {
		s.Country = v
	}
	if v := viper.GetString("source.columns.latitude"); v != "" {
		s.Latitude = v
	}
	if v := viper.GetString("source.columns.longitude"); v != "" {
		s.Longitude = v
	}
	if v := viper.GetString("source.columns.date"); v != "" {
		s.Date = v
	}
	if v := viper.GetString("source.columns.value"); v != "" {
		s.Value = v
	}
	if v := viper.GetString("source.date_format"); v != "" {
		s.DateLayout = v
	}
	return s
}

func epoch() time.Time {
	if v := viper.GetString("forecast.epoch"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
		log.WithFields(log.Fields{"prefix": logPrefix, "epoch": v}).Warn("invalid epoch, using default")
	}
	return panel.DefaultEpoch
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	var err error

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(initialCtx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	if cancelInitialization != nil {
		cancelInitialization()
	}

	mStore := store.NewMongoStore(
		mongoClient,
		viper.GetString("mongo.database"),
	)

	source := feed.New(viper.GetString("source.url"), sourceSchema(), nil)
	crawler := newFeatureCrawler(mStore, source, epoch(), viper.GetStringSlice("forecast.countries"))

	crawlCtx, cancelCrawl := context.WithTimeout(context.Background(), crawlTimeout)
	err = crawler.Run(crawlCtx)
	cancelCrawl()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if mongoClient != nil {
		log.Info("Shutting down mongo store")
		_ = mongoClient.Disconnect(ctx)
	}

	if err != nil {
		os.Exit(1)
	}
}
