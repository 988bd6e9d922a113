package airquality

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTable is the table PostgresSource reads when none is configured.
const DefaultTable = "observations"

// PostgresSource loads observations from a PostgreSQL table with columns
// year, month, day, hour, pm25, pm10, so2, no2, co, o3. Readings may be NULL.
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource creates a source reading from table.
func NewPostgresSource(pool *pgxpool.Pool, table string) *PostgresSource {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresSource{pool: pool, table: table}
}

// Name identifies the source.
func (s *PostgresSource) Name() string {
	return "postgres:" + s.table
}

// Load reads the whole table ordered by time.
func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	query := `
		SELECT
			year, month, day, hour,
			pm25, pm10, so2, no2, co, o3
		FROM ` + pgx.Identifier{s.table}.Sanitize() + `
		ORDER BY year, month, day, hour
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var observations []Observation
	for rows.Next() {
		var (
			year, month, day, hour int
			values                 [len(pollutants)]*float64
		)
		if err := rows.Scan(
			&year, &month, &day, &hour,
			&values[0], &values[1], &values[2], &values[3], &values[4], &values[5],
		); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}

		o, err := NewObservation(year, month, day, hour, readingsFromNullable(values))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(observations)+1, err)
		}
		observations = append(observations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}

	return NewDataset(s.Name(), observations)
}

func readingsFromNullable(values [len(pollutants)]*float64) Readings {
	var r Readings
	for i, v := range values {
		if v == nil {
			r[i] = math.NaN()
			continue
		}
		r[i] = *v
	}
	return r
}
