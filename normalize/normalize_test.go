package normalize

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const sourceHeader = "Province/State,Country/Region,Lat,Long,Date,Value\n" +
	"#adm1+name,#country+name,#geo+lat,#geo+lon,#date,#affected+infected+value+num\n"

func TestLoadCSV(t *testing.T) {
	data := sourceHeader +
		"Hubei,China,30.97,112.27,2020-01-22,444\n" +
		",Italy,43.0,12.0,2020-02-21,20\n" +
		"Beijing, China ,40.18,116.41,2020-01-22,14\n"

	records, err := LoadCSV(strings.NewReader(data), DefaultSourceSchema())
	assert.NoError(t, err, "wrong LoadCSV")
	assert.Len(t, records, 3, "wrong record count")

	assert.Equal(t, "China", records[0].Country)
	assert.Equal(t, 444.0, records[0].TotalConfirmed)
	assert.Equal(t, 30.97, records[0].Latitude)
	assert.Equal(t, time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC), records[0].Timestamp)

	assert.Equal(t, "Italy", records[1].Country)
	assert.Equal(t, "China", records[2].Country, "country name not trimmed")
}

func TestLoadCSVTooFewRows(t *testing.T) {
	for _, data := range []string{
		"",
		"Province/State,Country/Region,Lat,Long,Date,Value\n",
		sourceHeader,
	} {
		records, err := LoadCSV(strings.NewReader(data), DefaultSourceSchema())
		assert.NoError(t, err)
		assert.Empty(t, records)
	}
}

func TestLoadCSVNonNumericCount(t *testing.T) {
	data := sourceHeader +
		"Hubei,China,30.97,112.27,2020-01-22,444\n" +
		"Hubei,China,30.97,112.27,2020-01-23,many\n"

	_, err := LoadCSV(strings.NewReader(data), DefaultSourceSchema())

	var malformed *MalformedInputError
	assert.True(t, errors.As(err, &malformed), "expect MalformedInputError")
	assert.Equal(t, 4, malformed.Row)
	assert.Equal(t, "Value", malformed.Column)
	assert.Equal(t, "many", malformed.Value)
}

func TestLoadCSVNaNCount(t *testing.T) {
	data := sourceHeader + "Hubei,China,30.97,112.27,2020-01-22,NaN\n"

	_, err := LoadCSV(strings.NewReader(data), DefaultSourceSchema())

	var malformed *MalformedInputError
	assert.True(t, errors.As(err, &malformed), "expect MalformedInputError")
}

func TestLoadCSVBadDate(t *testing.T) {
	data := sourceHeader + "Hubei,China,30.97,112.27,yesterday,1\n"

	_, err := LoadCSV(strings.NewReader(data), DefaultSourceSchema())

	var malformed *MalformedInputError
	assert.True(t, errors.As(err, &malformed), "expect MalformedInputError")
	assert.Equal(t, "Date", malformed.Column)
}

func TestLoadCSVMissingColumn(t *testing.T) {
	data := "Province/State,Country,Lat,Long,Date,Value\n" +
		"#adm1+name,#country+name,#geo+lat,#geo+lon,#date,#affected+infected+value+num\n" +
		"Hubei,China,30.97,112.27,2020-01-22,1\n"

	_, err := LoadCSV(strings.NewReader(data), DefaultSourceSchema())

	assert.True(t, errors.Is(err, ErrMissingColumn), "expect missing column")
}

func TestLoadCSVWrongFieldCount(t *testing.T) {
	data := sourceHeader + "Hubei,China,30.97,112.27,2020-01-22\n"

	_, err := LoadCSV(strings.NewReader(data), DefaultSourceSchema())

	var malformed *MalformedInputError
	assert.True(t, errors.As(err, &malformed), "expect MalformedInputError")
}

func TestLoadCSVCustomLayout(t *testing.T) {
	data := sourceHeader + ",Iceland,64.9,-19.0,3/1/20,6\n"

	s := DefaultSourceSchema()
	s.DateLayout = "1/2/06"
	records, err := LoadCSV(strings.NewReader(data), s)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), records[0].Timestamp)
}

func TestLoadCSVLayoutMismatch(t *testing.T) {
	data := sourceHeader + ",Iceland,64.9,-19.0,3/1/20,6\n"

	s := DefaultSourceSchema()
	s.DateLayout = "02/01/2006"
	_, err := LoadCSV(strings.NewReader(data), s)

	var malformed *MalformedInputError
	assert.True(t, errors.As(err, &malformed), "expect MalformedInputError")
	assert.Equal(t, "Date", malformed.Column)
	assert.Equal(t, "3/1/20", malformed.Value)
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestLoadCSVDefaultLayoutRejectsOtherFormats(t *testing.T) {
	for _, date := range []string{"3/1/20", "2020/03/01", "2020-03-01T12:00:00"} {
		data := sourceHeader + ",Iceland,64.9,-19.0," + date + ",6\n"

		_, err := LoadCSV(strings.NewReader(data), DefaultSourceSchema())
		assert.True(t, errors.Is(err, ErrInvalidDate), "date %s should be rejected", date)
	}
}

func TestLoadCSVDayFirstLayout(t *testing.T) {
	data := sourceHeader + ",Iceland,64.9,-19.0,03/01/2020,6\n"

	s := DefaultSourceSchema()
	s.DateLayout = "02/01/2006"
	records, err := LoadCSV(strings.NewReader(data), s)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC), records[0].Timestamp)
}

func TestLoadCSVInvalidCount(t *testing.T) {
	for _, value := range []string{"-6", "2.5"} {
		data := sourceHeader +
			"Hubei,China,30.97,112.27,2020-01-22,444\n" +
			"Hubei,China,30.97,112.27,2020-01-23," + value + "\n"

		_, err := LoadCSV(strings.NewReader(data), DefaultSourceSchema())

		var malformed *MalformedInputError
		assert.True(t, errors.As(err, &malformed), "expect MalformedInputError for %s", value)
		assert.Equal(t, 4, malformed.Row)
		assert.Equal(t, "Value", malformed.Column)
		assert.Equal(t, value, malformed.Value)
		assert.True(t, errors.Is(err, ErrInvalidCount))
	}
}
