package catalog

import (
	"errors"
	"fmt"
)

type Category string

const (
	CategoryOperations  Category = "Operations"
	CategorySupplyChain Category = "Supply Chain"
	CategoryQuality     Category = "Quality"
	CategoryWorkforce   Category = "Workforce"
	CategoryMaintenance Category = "Maintenance"
)

// Position is a layout coordinate. The core never interprets it.
type Position struct {
	Top  string `json:"top"`
	Left string `json:"left"`
}

type Zone struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	IconKey     string   `json:"iconKey"`
	Position    Position `json:"position"`
	Category    Category `json:"category"`
}

// Icon resolves the zone's symbolic icon key.
func (z Zone) Icon() Icon {
	return ParseIcon(z.IconKey)
}

type TourStep struct {
	StopNumber int    `json:"stopNumber"`
	ZoneID     string `json:"zoneId"`
	Title      string `json:"title"`
	Focus      string `json:"focus"`
	UseCase    string `json:"useCase"`
	Impact     string `json:"impact"`
}

// Area groups neighbouring zones on the floor map.
type Area struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Position Position `json:"position"`
	ZoneIDs  []string `json:"zoneIds"`
}

// Catalog is the immutable set of zones, areas and tour steps loaded at startup.
type Catalog struct {
	zones []Zone
	steps []TourStep
	areas []Area
	byID  map[string]int
}

func New(zones []Zone, steps []TourStep, areas []Area) *Catalog {
	c := &Catalog{
		zones: append([]Zone(nil), zones...),
		steps: append([]TourStep(nil), steps...),
		areas: append([]Area(nil), areas...),
		byID:  make(map[string]int, len(zones)),
	}
	for i, z := range c.zones {
		// First entry wins; duplicates are reported by Validate.
		if _, exists := c.byID[z.ID]; !exists {
			c.byID[z.ID] = i
		}
	}
	return c
}

// Zone looks a zone up by id.
func (c *Catalog) Zone(id string) (Zone, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Zone{}, false
	}
	return c.zones[i], true
}

// Step returns the tour step at index i.
func (c *Catalog) Step(i int) (TourStep, bool) {
	if i < 0 || i >= len(c.steps) {
		return TourStep{}, false
	}
	return c.steps[i], true
}

func (c *Catalog) StepCount() int {
	return len(c.steps)
}

func (c *Catalog) Zones() []Zone {
	return append([]Zone(nil), c.zones...)
}

func (c *Catalog) Steps() []TourStep {
	return append([]TourStep(nil), c.steps...)
}

func (c *Catalog) Areas() []Area {
	out := make([]Area, len(c.areas))
	for i, a := range c.areas {
		a.ZoneIDs = append([]string(nil), a.ZoneIDs...)
		out[i] = a
	}
	return out
}

// AreaOf returns the area containing the zone.
func (c *Catalog) AreaOf(zoneID string) (Area, bool) {
	for _, a := range c.areas {
		for _, id := range a.ZoneIDs {
			if id == zoneID {
				return a, true
			}
		}
	}
	return Area{}, false
}

// Validate reports every integrity problem in the catalog. A non-nil result
// is informational: the tour keeps working and unresolved zones are skipped.
func (c *Catalog) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.zones))
	for _, z := range c.zones {
		if z.ID == "" {
			errs = append(errs, fmt.Errorf("zone %q has an empty id", z.Title))
			continue
		}
		if seen[z.ID] {
			errs = append(errs, fmt.Errorf("duplicate zone id %q", z.ID))
		}
		seen[z.ID] = true
	}

	for i, s := range c.steps {
		if s.StopNumber != i+1 {
			errs = append(errs, fmt.Errorf("tour step %d has stop number %d", i+1, s.StopNumber))
		}
		if _, ok := c.Zone(s.ZoneID); !ok {
			errs = append(errs, fmt.Errorf("tour stop %d references unknown zone %q", s.StopNumber, s.ZoneID))
		}
	}

	for _, a := range c.areas {
		for _, id := range a.ZoneIDs {
			if _, ok := c.Zone(id); !ok {
				errs = append(errs, fmt.Errorf("area %q references unknown zone %q", a.ID, id))
			}
		}
	}

	return errors.Join(errs...)
}
