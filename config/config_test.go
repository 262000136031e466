package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridroute/config"
)

func write(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "gridroute.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	c := config.Default()
	assert.Equal(t, 0.002, c.Grid.CellSize)
	assert.Equal(t, 0.5, c.Grid.Threshold)
	assert.Equal(t, 10*time.Second, c.Search.TimeLimit)
	assert.Equal(t, "cell", c.Search.Heuristic)

	// The shapefile has no default.
	assert.ErrorIs(t, c.Validate(), config.ErrInvalid)
	c.Source.Shapefile = "crime_dt"
	assert.NoError(t, c.Validate())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	p := write(t, `
source:
  shapefile: resources/crime_dt.shp
grid:
  cell_size: 0.003
search:
  time_limit: 2s
  heuristic: raw
log:
  format: json
`)
	c, err := config.Load(p)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "resources/crime_dt.shp", c.Source.Shapefile)
	assert.Equal(t, 0.003, c.Grid.CellSize)
	assert.Equal(t, 0.5, c.Grid.Threshold, "kept from defaults")
	assert.Equal(t, 2*time.Second, c.Search.TimeLimit)
	assert.Equal(t, ":8080", c.Server.Addr)

	opts, err := c.SearchOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	l, err := c.Logger()
	require.NoError(t, err)
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	_, err = config.Load(write(t, "grid: [1, 2"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := config.Default()
	base.Source.Shapefile = "x.shp"

	cases := []struct {
		name   string
		mutate func(*config.Config)
		ok     bool
	}{
		{"Valid", func(*config.Config) {}, true},
		{"ThresholdOutOfRangeIsFine", func(c *config.Config) { c.Grid.Threshold = 4 }, true},
		{"ZeroCellSize", func(c *config.Config) { c.Grid.CellSize = 0 }, false},
		{"NegativeCellSize", func(c *config.Config) { c.Grid.CellSize = -1 }, false},
		{"ZeroTimeLimit", func(c *config.Config) { c.Search.TimeLimit = 0 }, false},
		{"UnknownHeuristic", func(c *config.Config) { c.Search.Heuristic = "manhattan" }, false},
		{"UnknownLevel", func(c *config.Config) { c.Log.Level = "loud" }, false},
		{"NoAddr", func(c *config.Config) { c.Server.Addr = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			err := c.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, config.ErrInvalid)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	c := config.Default()
	c.Source.Shapefile = "a.shp"
	data, err := c.Marshal()
	require.NoError(t, err)

	got, err := config.Load(write(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Equal(t, c.Snapshot(), got.Snapshot())
}
