package main

import (
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("forecast")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	db, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		panic(err)
	}

	if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS forecast`).Error; err != nil {
		panic(err)
	}

	if err := db.Exec("SET search_path TO forecast").Error; err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(
		&schema.ModelBinding{},
	).Error; err != nil {
		panic(err)
	}

	if err := db.Model(schema.ModelBinding{}).
		AddUniqueIndex("model_binding_unique_run_country", "run_id", "country").Error; err != nil {
		panic(err)
	}

	schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database")).IndexAll()
}
