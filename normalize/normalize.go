package normalize

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const logPrefix = "normalize"

// header row + descriptor row
const leadingRows = 2

// SourceSchema names the source fields the normalizer reads.
type SourceSchema struct {
	Country    string
	Latitude   string
	Longitude  string
	Date       string
	Value      string
	DateLayout string
}

// DefaultSourceSchema matches the HDX novel coronavirus time series files.
func DefaultSourceSchema() SourceSchema {
	return SourceSchema{
		Country:    "Country/Region",
		Latitude:   "Lat",
		Longitude:  "Long",
		Date:       "Date",
		Value:      "Value",
		DateLayout: schema.DateLayout,
	}
}

func (s SourceSchema) columns() []string {
	return []string{s.Country, s.Latitude, s.Longitude, s.Date, s.Value}
}

// LoadCSV reads the source table and returns its canonical records in source
// order. A table with fewer than two rows below the header yields no records.
func LoadCSV(r io.Reader, s SourceSchema) ([]schema.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		line := 0
		if pe, ok := err.(*csv.ParseError); ok {
			line = pe.Line
		}
		return nil, &MalformedInputError{Row: line, Err: err}
	}

	if len(records) <= leadingRows {
		log.WithFields(log.Fields{"prefix": logPrefix, "rows": len(records)}).Warn("source has no data rows")
		return []schema.Record{}, nil
	}

	header := records[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.Trim(h, "\ufeff"))
	}

	// drop the descriptor row below the header
	table := append([][]string{header}, records[leadingRows:]...)

	df := dataframe.LoadRecords(table,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, &MalformedInputError{Err: df.Err}
	}

	return Normalize(df, s)
}

// Normalize converts a string table with named columns into records. Row
// numbers in errors assume the table was loaded by LoadCSV.
func Normalize(df dataframe.DataFrame, s SourceSchema) ([]schema.Record, error) {
	present := make(map[string]bool)
	for _, n := range df.Names() {
		present[n] = true
	}
	for _, c := range s.columns() {
		if !present[c] {
			return nil, &MalformedInputError{Column: c, Err: ErrMissingColumn}
		}
	}

	countries := df.Col(s.Country).Records()
	lats := df.Col(s.Latitude).Records()
	lngs := df.Col(s.Longitude).Records()
	dates := df.Col(s.Date).Records()
	values := df.Col(s.Value).Records()

	result := make([]schema.Record, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		line := i + leadingRows + 1

		country := norm.NFC.String(strings.TrimSpace(countries[i]))
		if country == "" {
			return nil, &MalformedInputError{Row: line, Column: s.Country, Err: ErrEmptyCountry}
		}

		ts, err := parseDate(dates[i], s.DateLayout)
		if err != nil {
			return nil, &MalformedInputError{Row: line, Column: s.Date, Value: dates[i], Err: err}
		}

		count, err := parseNumber(values[i])
		if err != nil {
			return nil, &MalformedInputError{Row: line, Column: s.Value, Value: values[i], Err: err}
		}

		lat, err := parseCoordinate(lats[i])
		if err != nil {
			return nil, &MalformedInputError{Row: line, Column: s.Latitude, Value: lats[i], Err: err}
		}

		lng, err := parseCoordinate(lngs[i])
		if err != nil {
			return nil, &MalformedInputError{Row: line, Column: s.Longitude, Value: lngs[i], Err: err}
		}

		result = append(result, schema.Record{
			Country:        country,
			Latitude:       lat,
			Longitude:      lng,
			Timestamp:      ts,
			TotalConfirmed: count,
		})
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "records": len(result)}).Debug("normalized source table")

	return result, nil
}

// parseDate accepts only the configured layout and keeps the calendar day.
func parseDate(v, layout string) (time.Time, error) {
	if layout == "" {
		layout = schema.DateLayout
	}

	ts, err := time.Parse(layout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expect layout %q", ErrInvalidDate, layout)
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseNumber accepts nonnegative whole counts.
func parseNumber(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNonNumericCount
	}
	if f < 0 || f != math.Trunc(f) {
		return 0, ErrInvalidCount
	}
	return f, nil
}

// coordinates are informational only, a blank one is kept as zero
func parseCoordinate(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric coordinate")
	}
	return f, nil
}
