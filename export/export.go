// Package export writes forecast histories to the output CSV file.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-forecast/forecast"
	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const logPrefix = "export"

// DefaultFile is the name of the output file when none is configured.
const DefaultFile = "COVID_Forecast.csv"

// WriteCSV writes rows in the output column layout, in the order given.
func WriteCSV(w io.Writer, rows []schema.FeatureRow) error {
	if len(rows) == 0 {
		cw := csv.NewWriter(w)
		if err := cw.Write(schema.OutputColumns); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, schema.OutputColumns)
	for _, r := range rows {
		record := make([]string, len(schema.OutputColumns))
		for i, name := range schema.OutputColumns {
			v, _ := r.Column(name)
			record[i] = format(v)
		}
		records = append(records, record)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return df.Err
	}

	return df.WriteCSV(w)
}

// WriteFile writes the rows of every result that has any, in result order,
// to a single file at path.
func WriteFile(path string, results []forecast.Result) error {
	rows := make([]schema.FeatureRow, 0)
	for _, r := range results {
		if len(r.Rows) == 0 {
			log.WithFields(log.Fields{
				"prefix":  logPrefix,
				"country": r.Country,
			}).Warn("no rows to export")
			continue
		}
		rows = append(rows, r.Rows...)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"file":   path,
		"rows":   len(rows),
	}).Info("forecast exported")

	return nil
}

func format(v interface{}) string {
	switch value := v.(type) {
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case string:
		return value
	}
	return fmt.Sprint(v)
}
