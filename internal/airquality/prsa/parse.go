// Package prsa loads the hourly PRSA observation table from delimited text.
package prsa

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/airdash/airdash/internal/airquality"
)

// ErrMalformedInput is returned when the table cannot be turned into observations.
var ErrMalformedInput = errors.New("malformed observation table")

// DefaultEncoding is the character encoding assumed when none is configured.
const DefaultEncoding = "utf-8"

// Calendar columns every table must carry next to the pollutant columns.
const (
	ColumnYear  = "year"
	ColumnMonth = "month"
	ColumnDay   = "day"
	ColumnHour  = "hour"
)

// naValues are the cell values read as missing readings.
var naValues = []string{"NA", "NaN", "nan", ""}

// RequiredColumns lists the columns Parse needs, in canonical order.
func RequiredColumns() []string {
	cols := []string{ColumnYear, ColumnMonth, ColumnDay, ColumnHour}
	for _, p := range airquality.Pollutants() {
		cols = append(cols, string(p))
	}
	return cols
}

// ParseOptions tune how the delimited text is read.
type ParseOptions struct {
	// Encoding is a WHATWG encoding label such as "utf-8" or "gbk".
	Encoding string

	// Delimiter separates fields. Default: ','
	Delimiter rune
}

// Decoder wraps r so that it yields UTF-8 from the named encoding. A leading
// byte order mark overrides the label.
func Decoder(r io.Reader, encoding string) (io.Reader, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// Parse reads a delimited table with a header row into observations.
// Columns beyond RequiredColumns are ignored.
func Parse(r io.Reader, opts ParseOptions) ([]airquality.Observation, error) {
	decoded, err := Decoder(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}

	types := map[string]series.Type{
		ColumnYear:  series.Int,
		ColumnMonth: series.Int,
		ColumnDay:   series.Int,
		ColumnHour:  series.Int,
	}
	for _, p := range airquality.Pollutants() {
		types[string(p)] = series.Float
	}

	df := dataframe.ReadCSV(decoded,
		dataframe.WithDelimiter(delimiter),
		dataframe.WithTypes(types),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, df.Err)
	}

	if missing := missingColumns(df.Names()); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrMalformedInput, strings.Join(missing, ", "))
	}

	calendar := make(map[string][]int, 4)
	for _, col := range []string{ColumnYear, ColumnMonth, ColumnDay, ColumnHour} {
		values, err := df.Col(col).Int()
		if err != nil {
			return nil, fmt.Errorf("%w: column %s: %v", ErrMalformedInput, col, err)
		}
		calendar[col] = values
	}

	pollutants := airquality.Pollutants()
	readings := make([][]float64, len(pollutants))
	for i, p := range pollutants {
		readings[i] = df.Col(string(p)).Float()
	}

	observations := make([]airquality.Observation, 0, df.Nrow())
	for row := 0; row < df.Nrow(); row++ {
		values := airquality.MissingReadings()
		for i, p := range pollutants {
			if v := readings[i][row]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				values.Set(p, v)
			}
		}

		o, err := airquality.NewObservation(
			calendar[ColumnYear][row],
			calendar[ColumnMonth][row],
			calendar[ColumnDay][row],
			calendar[ColumnHour][row],
			values,
		)
		if err != nil {
			// +2: header line and 1-based numbering.
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, row+2, err)
		}
		observations = append(observations, o)
	}

	return observations, nil
}

func missingColumns(names []string) []string {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	var missing []string
	for _, col := range RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
