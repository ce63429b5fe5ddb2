// Package loader reads trade-flow datasets from CSV files or URLs and turns
// them into monthly series for the pipeline.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"tradescope/schema"
)

// fetchTimeout bounds a remote dataset download.
const fetchTimeout = 60 * time.Second

// Required dataset columns, matched case-insensitively against the header.
const (
	colYear    = "year"
	colMonth   = "month"
	colPartner = "partner"
	colTons    = "tons"
)

// LoadFile reads trade records from a CSV file on disk.
func LoadFile(path string) ([]schema.TradeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	records, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// LoadURL downloads a CSV dataset and parses it. The context bounds the
// download on top of the client timeout.
func LoadURL(ctx context.Context, url string) ([]schema.TradeRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: unexpected status %s", resp.Status)
	}
	records, err := parseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return records, nil
}

// Load reads the dataset named by the config, preferring the local file when
// both a file and a URL are configured.
func Load(ctx context.Context, cfg ConfigSource) ([]schema.TradeRecord, error) {
	file, url := cfg.DataSource()
	switch {
	case file != "":
		return LoadFile(file)
	case url != "":
		return LoadURL(ctx, url)
	default:
		return nil, fmt.Errorf("no dataset configured: provide a file argument or --data-url")
	}
}

// ConfigSource exposes the dataset location without binding the loader to the
// full runtime config.
type ConfigSource interface {
	DataSource() (file, url string)
}

// parseCSV reads the header, locates the required columns, and parses every
// row. Rows with an unparseable year, month, or tonnage are skipped; a
// dataset where every row is unusable is an error.
func parseCSV(r io.Reader) ([]schema.TradeRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var records []schema.TradeRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		rec, ok := parseRow(row, cols)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no usable rows in dataset")
	}
	return records, nil
}

// columnIndex maps the required columns to their positions in the header.
type columnIndex struct {
	year, month, partner, tons int
}

func locateColumns(header []string) (columnIndex, error) {
	idx := columnIndex{year: -1, month: -1, partner: -1, tons: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case colYear:
			idx.year = i
		case colMonth:
			idx.month = i
		case colPartner:
			idx.partner = i
		case colTons:
			idx.tons = i
		}
	}
	for name, pos := range map[string]int{
		colYear: idx.year, colMonth: idx.month, colPartner: idx.partner, colTons: idx.tons,
	} {
		if pos < 0 {
			return idx, fmt.Errorf("missing required column %q", name)
		}
	}
	return idx, nil
}

func parseRow(row []string, cols columnIndex) (schema.TradeRecord, bool) {
	last := max(cols.year, cols.month, cols.partner, cols.tons)
	if len(row) <= last {
		return schema.TradeRecord{}, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(row[cols.year]))
	if err != nil || year < 1900 || year > 2200 {
		return schema.TradeRecord{}, false
	}
	month, ok := schema.ParseMonth(row[cols.month])
	if !ok {
		return schema.TradeRecord{}, false
	}
	partner := strings.TrimSpace(row[cols.partner])
	if partner == "" {
		return schema.TradeRecord{}, false
	}
	tons, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[cols.tons]), ",", ""), 64)
	if err != nil || tons < 0 {
		return schema.TradeRecord{}, false
	}

	return schema.TradeRecord{Year: year, Month: int(month), Partner: partner, Tons: tons}, true
}
