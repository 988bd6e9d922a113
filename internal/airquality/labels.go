package airquality

import (
	"fmt"
	"time"
)

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthLabel returns the abbreviated Indonesian label for month 1-12.
// Any other value panics.
func MonthLabel(month int) string {
	if month < 1 || month > 12 {
		panic(fmt.Sprintf("airquality: month %d outside 1-12", month))
	}
	return monthLabels[month-1]
}

// HourLabel formats hour 0-23 as "HH.00". Any other value panics.
func HourLabel(hour int) string {
	if hour < 0 || hour > 23 {
		panic(fmt.Sprintf("airquality: hour %d outside 0-23", hour))
	}
	return fmt.Sprintf("%02d.00", hour)
}

// DateLabel formats a derived date as YYYY-MM-DD.
func DateLabel(date time.Time) string {
	return date.Format(DateLayout)
}

// PeriodLabel describes the observation period, e.g.
// "Periode pengamatan: Maret 2013 - Februari 2017".
func PeriodLabel(bounds DateRange) string {
	return fmt.Sprintf("Periode pengamatan: %s %d - %s %d",
		monthNames[bounds.Start.Month()-1], bounds.Start.Year(),
		monthNames[bounds.End.Month()-1], bounds.End.Year(),
	)
}
