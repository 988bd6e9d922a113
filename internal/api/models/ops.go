package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus   `json:"status"`
	Time    Timestamp      `json:"time"`
	Details map[string]any `json:"details,omitempty"`
}

// SystemStatus reports on the loaded dataset and the upstreams it came from.
type SystemStatus struct {
	Status    HealthStatus     `json:"status"`
	Time      Timestamp        `json:"time"`
	Dataset   DatasetStatus    `json:"dataset"`
	Upstreams []UpstreamStatus `json:"upstreams"`
}

// DatasetStatus describes the loaded observation table.
type DatasetStatus struct {
	Source       string    `json:"source"`
	Observations int       `json:"observations"`
	Bounds       DateRange `json:"bounds"`
	Fingerprint  string    `json:"fingerprint"`
	LoadedAt     Timestamp `json:"loadedAt"`
}

// UpstreamStatus represents the status of a remote dataset upstream.
type UpstreamStatus struct {
	Name          string       `json:"name"`
	Status        HealthStatus `json:"status"`
	CircuitState  string       `json:"circuitState"`
	LastSuccessAt *Timestamp   `json:"lastSuccessAt,omitempty"`
	LastFailureAt *Timestamp   `json:"lastFailureAt,omitempty"`
	Message       *string      `json:"message,omitempty"`
}
