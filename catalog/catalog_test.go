package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsConsistent(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	assert.Len(t, c.Zones(), 10)
	assert.Len(t, c.Areas(), 5)
	assert.Equal(t, 5, c.StepCount())

	for _, s := range c.Steps() {
		_, ok := c.Zone(s.ZoneID)
		assert.True(t, ok, "tour stop %d zone %q", s.StopNumber, s.ZoneID)
	}
}

func TestZoneLookup(t *testing.T) {
	c := Default()

	z, ok := c.Zone("condition-monitoring")
	require.True(t, ok)
	assert.Equal(t, "Predictive Maintenance", z.Title)
	assert.Equal(t, CategoryMaintenance, z.Category)

	_, ok = c.Zone("does-not-exist")
	assert.False(t, ok)
}

func TestStepBounds(t *testing.T) {
	c := Default()

	s, ok := c.Step(0)
	require.True(t, ok)
	assert.Equal(t, 1, s.StopNumber)

	_, ok = c.Step(-1)
	assert.False(t, ok)
	_, ok = c.Step(c.StepCount())
	assert.False(t, ok)
}

func TestAreaOf(t *testing.T) {
	c := Default()

	a, ok := c.AreaOf("watch-tower")
	require.True(t, ok)
	assert.Equal(t, "command-center", a.ID)

	_, ok = c.AreaOf("nowhere")
	assert.False(t, ok)
}

func TestValidateReportsProblems(t *testing.T) {
	zones := []Zone{{ID: "a", Title: "A"}, {ID: "a", Title: "A again"}}
	steps := []TourStep{
		{StopNumber: 1, ZoneID: "a"},
		{StopNumber: 3, ZoneID: "missing"},
	}
	areas := []Area{{ID: "area", ZoneIDs: []string{"ghost"}}}

	err := New(zones, steps, areas).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate zone id "a"`)
	assert.Contains(t, err.Error(), "tour step 2 has stop number 3")
	assert.Contains(t, err.Error(), `unknown zone "missing"`)
	assert.Contains(t, err.Error(), `area "area" references unknown zone "ghost"`)
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	c := Default()

	areas := c.Areas()
	areas[0].ZoneIDs[0] = "mutated"
	zones := c.Zones()
	zones[0].Title = "mutated"

	assert.NotEqual(t, "mutated", c.Areas()[0].ZoneIDs[0])
	assert.NotEqual(t, "mutated", c.Zones()[0].Title)
}

func TestParseIcon(t *testing.T) {
	tests := []struct {
		key  string
		want Icon
	}{
		{"Cpu", IconCPU},
		{"Users", IconUsers},
		{"Wifi", IconWifi},
		{"Activity", IconActivity},
		{"Eye", IconEye},
		{"Bot", IconBot},
		{"Brain", IconBrain},
		{"TowerControl", IconTowerControl},
		{"Copy", IconCopy},
		{"Truck", IconTruck},
		{"Hexagon", IconHexagon},
		{"", IconHexagon},
		{"cpu", IconHexagon},
		{"Rocket", IconHexagon},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := ParseIcon(tt.key)
			assert.Equal(t, tt.want, got)
			if tt.want != IconHexagon {
				assert.Equal(t, tt.key, got.String())
			}
		})
	}
}

func TestEveryDefaultZoneHasAKnownIcon(t *testing.T) {
	for _, z := range Default().Zones() {
		assert.NotEqual(t, IconHexagon, z.Icon(), z.ID)
		assert.NotEmpty(t, z.Icon().Glyph())
	}
}
