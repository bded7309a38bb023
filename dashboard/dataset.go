package dashboard

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"unicorn/db"
)

var requiredColumns = []string{
	"name",
	"relationships",
	"category_code",
	"country_code",
	"total_funding_usd",
	"is_success",
}

// Startup is one row of the processed dataset. Missing numeric cells are NaN.
type Startup struct {
	Name            string
	Relationships   float64
	CategoryCode    string
	CountryCode     string
	TotalFundingUSD float64
	IsSuccess       float64
}

type Dataset struct {
	Path     string
	Startups []Startup
}

// LoadDataset reads a CSV or SQLite dataset depending on the file extension.
func LoadDataset(ctx context.Context, path, table string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path, table)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", path)
	}
}

func LoadCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dataset, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	dataset.Path = path
	return dataset, nil
}

// ReadCSV parses a headed CSV table; a leading byte order mark is honoured.
func ReadCSV(r io.Reader) (*Dataset, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty dataset")
	}
	return ParseTable(records[0], records[1:])
}

func LoadSQLite(ctx context.Context, path, table string) (*Dataset, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	columns, records, err := db.ReadTable(ctx, database, table)
	if err != nil {
		return nil, fmt.Errorf("read %s table %s: %w", path, table, err)
	}
	dataset, err := ParseTable(columns, records)
	if err != nil {
		return nil, err
	}
	dataset.Path = path
	return dataset, nil
}

// ParseTable maps a header and its text rows onto startups.
func ParseTable(header []string, records [][]string) (*Dataset, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("dataset missing column %q", name)
		}
	}

	cell := func(record []string, name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	startups := make([]Startup, 0, len(records))
	for _, record := range records {
		startups = append(startups, Startup{
			Name:            cell(record, "name"),
			Relationships:   parseNumber(cell(record, "relationships")),
			CategoryCode:    cell(record, "category_code"),
			CountryCode:     cell(record, "country_code"),
			TotalFundingUSD: parseNumber(cell(record, "total_funding_usd")),
			IsSuccess:       parseNumber(cell(record, "is_success")),
		})
	}
	return &Dataset{Startups: startups}, nil
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Categories lists distinct category codes in first-appearance order.
func (d *Dataset) Categories() []string {
	return d.distinct(func(s Startup) string { return s.CategoryCode })
}

// Countries lists distinct country codes in first-appearance order.
func (d *Dataset) Countries() []string {
	return d.distinct(func(s Startup) string { return s.CountryCode })
}

func (d *Dataset) distinct(field func(Startup) string) []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, s := range d.Startups {
		v := field(s)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}
