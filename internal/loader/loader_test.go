package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradescope/schema"
)

const sampleCSV = `Year,Month,Partner,Tons
2022,January,Brazil,1200.5
2022,January,India,300
2022,Feb,Brazil,1100
2022,2,India,250.25
2022,March,Brazil,"1,050"
bogus,April,Brazil,100
2022,NotAMonth,Brazil,100
2022,May,,100
2022,May,Brazil,-5
2022,May,Brazil,990
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trade.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestLoadFileParsesAndSkipsBadRows(t *testing.T) {
	records, err := LoadFile(writeSample(t))
	require.NoError(t, err)
	require.Len(t, records, 6)

	assert.Equal(t, schema.TradeRecord{Year: 2022, Month: 1, Partner: "Brazil", Tons: 1200.5}, records[0])
	assert.Equal(t, 2, records[2].Month)
	// Quoted thousands separator parses as plain number.
	assert.Equal(t, 1050.0, records[4].Tons)
	assert.Equal(t, 990.0, records[5].Tons)
}

func TestLoadFileMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Year,Partner,Tons\n2022,Brazil,10\n"), 0o644))
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "month")
}

func TestLoadFileNoUsableRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Year,Month,Partner,Tons\nx,y,z,w\n"), 0o644))
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "no usable rows")
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	records, err := LoadURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, records, 6)
}

func TestLoadURLBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := LoadURL(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "unexpected status")
}

func sampleRecords() []schema.TradeRecord {
	return []schema.TradeRecord{
		{Year: 2021, Month: 11, Partner: "Brazil", Tons: 500},
		{Year: 2021, Month: 12, Partner: "India", Tons: 200},
		{Year: 2022, Month: 1, Partner: "Brazil", Tons: 300},
		{Year: 2022, Month: 1, Partner: "India", Tons: 100},
		{Year: 2022, Month: 2, Partner: "Viet Nam", Tons: 50},
	}
}

func TestFilter(t *testing.T) {
	records := sampleRecords()

	byYear := Filter(records, []int{2022}, nil, nil)
	assert.Len(t, byYear, 3)

	byMonth := Filter(records, nil, []time.Month{time.January}, nil)
	assert.Len(t, byMonth, 2)

	byPartner := Filter(records, nil, nil, []string{"brazil"})
	assert.Len(t, byPartner, 2)

	combined := Filter(records, []int{2022}, []time.Month{time.January}, []string{"India"})
	require.Len(t, combined, 1)
	assert.Equal(t, 100.0, combined[0].Tons)

	unfiltered := Filter(records, nil, nil, nil)
	assert.Len(t, unfiltered, len(records))
}

func TestAggregate(t *testing.T) {
	points := Aggregate(sampleRecords())
	require.Len(t, points, 4)

	assert.Equal(t, schema.MonthOf(2021, time.November), points[0].Time)
	assert.Equal(t, 500.0, points[0].Value)
	// Two partners in January 2022 sum together.
	assert.Equal(t, schema.MonthOf(2022, time.January), points[2].Time)
	assert.Equal(t, 400.0, points[2].Value)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())
	assert.Equal(t, 5, s.Records)
	assert.Equal(t, 3, s.Partners)
	assert.Equal(t, 4, s.Months)
	assert.Equal(t, 1150.0, s.TotalTons)
	assert.InDelta(t, 287.5, s.MonthlyMean, 1e-9)
	assert.Equal(t, "2021-11", s.FirstPeriod)
	assert.Equal(t, "2022-02", s.LatestPeriod)

	assert.Equal(t, schema.DatasetSummary{}, Summarize(nil))
}

func TestPartnerTotals(t *testing.T) {
	totals := PartnerTotals(sampleRecords(), 0)
	require.Len(t, totals, 3)
	assert.Equal(t, "Brazil", totals[0].Partner)
	assert.Equal(t, 800.0, totals[0].Tons)
	assert.InDelta(t, 800.0/1150.0, totals[0].Share, 1e-9)
	assert.Equal(t, "India", totals[1].Partner)
	assert.Equal(t, "Viet Nam", totals[2].Partner)

	limited := PartnerTotals(sampleRecords(), 2)
	assert.Len(t, limited, 2)
}
