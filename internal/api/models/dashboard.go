package models

import "github.com/airdash/airdash/internal/chart"

// Dashboard describes the dashboard page: title, observation period and tabs.
type Dashboard struct {
	Title        string    `json:"title"`
	Period       string    `json:"period"`
	Bounds       DateRange `json:"bounds"`
	Observations int       `json:"observations"`
	Source       string    `json:"source"`
	Pollutants   []string  `json:"pollutants"`
	Unit         string    `json:"unit"`
	Tabs         []Tab     `json:"tabs"`
}

// Tab is one dashboard tab.
type Tab struct {
	View       string `json:"view"`
	Label      string `json:"label"`
	Heading    string `json:"heading"`
	DateFilter bool   `json:"dateFilter"`
}

// Enums lists the values accepted by query parameters.
type Enums struct {
	Pollutants    []string `json:"pollutants"`
	Views         []string `json:"views"`
	ExportFormats []string `json:"exportFormats"`
}

// Series is a computed chart series.
type Series struct {
	View          string     `json:"view"`
	Pollutant     string     `json:"pollutant"`
	Title         string     `json:"title"`
	Heading       string     `json:"heading"`
	CategoryLabel string     `json:"categoryLabel"`
	ValueLabel    string     `json:"valueLabel"`
	Unit          string     `json:"unit"`
	Range         *DateRange `json:"range,omitempty"`
	Points        []Point    `json:"points"`
	Chart         chart.Spec `json:"chart"`
}

// Point is the mean of one group.
type Point struct {
	Key   int     `json:"key"`
	Label string  `json:"label"`
	Date  *Date   `json:"date,omitempty"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}
