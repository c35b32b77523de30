package feed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/autonomy-forecast/external/feed"
	"github.com/bitmark-inc/autonomy-forecast/normalize"
)

const source = `Province/State,Country/Region,Lat,Long,Date,Value
#adm1+name,#country+name,#geo+lat,#geo+lon,#date,#affected+infected+value+num
,Italy,43.0,12.0,2020-03-02,2036
,Italy,43.0,12.0,2020-03-01,1694
`

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(source))
	}))
	defer ts.Close()

	f := feed.New(ts.URL, normalize.DefaultSourceSchema(), ts.Client())
	records, err := f.Fetch(context.Background())
	assert.Nil(t, err, "wrong Fetch")
	assert.Len(t, records, 2, "wrong record count")
	assert.Equal(t, "Italy", records[0].Country, "wrong country")
	assert.Equal(t, 2036.0, records[0].TotalConfirmed, "wrong total")
}

func TestFetchStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	f := feed.New(ts.URL, normalize.DefaultSourceSchema(), nil)
	_, err := f.Fetch(context.Background())
	assert.Error(t, err, "wrong Fetch")
}

func TestFetchMalformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Country/Region,Lat,Long,Date\n#,#,#,#\nItaly,1,2,2020-03-01\nItaly,1,2,2020-03-02\n"))
	}))
	defer ts.Close()

	f := feed.New(ts.URL, normalize.DefaultSourceSchema(), ts.Client())
	_, err := f.Fetch(context.Background())

	var malformed *normalize.MalformedInputError
	assert.True(t, errors.As(err, &malformed), "wrong error type")
}
