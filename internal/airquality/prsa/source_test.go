package prsa_test

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

	"github.com/airdash/airdash/internal/airquality"
	"github.com/airdash/airdash/internal/airquality/prsa"
	"github.com/airdash/airdash/internal/provider/resilience"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestSource_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o600))

	src := prsa.NewSource(prsa.Config{Location: path})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "prsa:"+path, ds.Source())
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, airquality.NewDateRange(date(2013, 3, 1), date(2013, 3, 2)), ds.Bounds())
}

func TestSource_LoadMissingFile(t *testing.T) {
	src := prsa.NewSource(prsa.Config{Location: filepath.Join(t.TempDir(), "absent.csv")})
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSource_LoadHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("year,month,day,hour,PM2.5,PM10,SO2,NO2,CO,O3\n"), 0o600))

	_, err := prsa.NewSource(prsa.Config{Location: path}).Load(context.Background())
	assert.Error(t, err)
}

func TestSource_LoadRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept"), "text/csv")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(table))
	}))
	defer server.Close()

	registry := resilience.NewRegistry()
	src := prsa.NewSource(prsa.Config{Location: server.URL + "/main_data.csv", Registry: registry})

	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	health := registry.GetHealth(prsa.ProviderName)
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)
}

func TestSource_LoadRemoteNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := prsa.NewSource(prsa.Config{Location: server.URL}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestIsRemote(t *testing.T) {
	assert.True(t, prsa.IsRemote("https://example.org/data.csv"))
	assert.True(t, prsa.IsRemote("http://localhost/data.csv"))
	assert.False(t, prsa.IsRemote("main_data.csv"))
	assert.False(t, prsa.IsRemote("/srv/data/main_data.csv"))
}
