// Package export writes computed series as downloadable tables.
package export

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/airdash/airdash/internal/airquality"
)

// Format is a download format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves a format name; empty selects CSV.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", name)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns the attachment name for a series, e.g. "daily_PM2.5.csv".
func Filename(s *airquality.Series, f Format) string {
	return fmt.Sprintf("%s_%s.%s", s.View, s.Pollutant, f)
}

// Frame converts s to a dataframe with columns label, <pollutant> and count.
func Frame(s *airquality.Series) dataframe.DataFrame {
	counts := make([]int, len(s.Points))
	for i, p := range s.Points {
		counts[i] = p.Count
	}

	return dataframe.New(
		series.New(s.Labels(), series.String, "label"),
		series.New(s.Values(), series.Float, string(s.Pollutant)),
		series.New(counts, series.Int, "count"),
	)
}

// WriteCSV writes s as comma-separated text with a header row.
func WriteCSV(w io.Writer, s *airquality.Series) error {
	if err := Frame(s).WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes s as a workbook with a single sheet named after the view.
func WriteXLSX(w io.Writer, s *airquality.Series) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := string(s.View)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	df := Frame(s)
	names := df.Names()
	for i, name := range names {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row := 0; row < df.Nrow(); row++ {
		for col, name := range names {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, df.Col(name).Val(row)); err != nil {
				return fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// Write dispatches on f.
func Write(w io.Writer, s *airquality.Series, f Format) error {
	if f == FormatXLSX {
		return WriteXLSX(w, s)
	}
	return WriteCSV(w, s)
}
