package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/autonomy-forecast/feature"
	"github.com/bitmark-inc/autonomy-forecast/forecast"
	"github.com/bitmark-inc/autonomy-forecast/panel"
	"github.com/bitmark-inc/autonomy-forecast/schema"
)

func day(d int) time.Time {
	return time.Date(2020, 3, d, 0, 0, 0, 0, time.UTC)
}

func history(country string, totals ...float64) []schema.FeatureRow {
	rows := make([]schema.PanelRow, len(totals))
	for i, total := range totals {
		rows[i] = schema.PanelRow{
			Country:             country,
			Timestamp:           day(i + 1),
			TotalConfirmed:      total,
			DaysSinceWorldStart: 121 + i,
		}
	}
	return feature.Compute(rows)
}

func readAll(t *testing.T, data []byte) [][]string {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, history("A", 10, 15, 30)))

	records := readAll(t, buf.Bytes())
	assert.Len(t, records, 4)
	assert.Equal(t, []string{"country", "timestamp", "total_confirmed", "DateFromStart", "newCases", "Change_prcn", "numbDays"}, records[0])
	assert.Equal(t, []string{"A", "2020-03-01", "10", "121", "1", "0", "1"}, records[1])
	assert.Equal(t, []string{"A", "2020-03-02", "15", "122", "5"}, records[2][:5])
	assert.Equal(t, "0.6931471805599453", records[3][5])
	assert.Equal(t, "3", records[3][6])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, nil))

	records := readAll(t, buf.Bytes())
	assert.Equal(t, [][]string{schema.OutputColumns}, records)
}

func TestWriteFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "export")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	results := []forecast.Result{
		{Country: "B", Rows: history("B", 1, 2)},
		{Country: "C", Err: &panel.EmptyPanelError{Country: "C"}},
		{Country: "A", Rows: history("A", 10, 15, 30)},
		{Country: "D", Rows: history("D", 7), Err: errors.New("aborted")},
	}

	path := filepath.Join(dir, DefaultFile)
	assert.NoError(t, WriteFile(path, results))

	data, err := ioutil.ReadFile(path)
	assert.NoError(t, err)

	records := readAll(t, data)
	assert.Len(t, records, 7)

	countries := make([]string, 0)
	for _, r := range records[1:] {
		countries = append(countries, r[0])
	}
	assert.Equal(t, []string{"B", "B", "A", "A", "A", "D"}, countries)
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join("does", "not", "exist", DefaultFile), nil)
	assert.Error(t, err)
}
