// Package dashboard is the top-level controller behind a display surface. It
// drives the tour, tracks the open panel and reconciles simulation reports
// into it.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"factory_floor/catalog"
	"factory_floor/simulation"
	"factory_floor/tour"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownZone    = errors.New("unknown zone")
	ErrNoZoneSelected = errors.New("no zone selected")
)

// Simulator produces zone reports. It must not fail.
type Simulator interface {
	FetchSimulation(ctx context.Context, zoneTitle, zoneDescription, scenario string) simulation.Response
}

// View is a snapshot of everything a display needs to render.
type View struct {
	TourActive bool                 `json:"tourActive"`
	StepIndex  *int                 `json:"stepIndex"`
	StepCount  int                  `json:"stepCount"`
	TourStep   *catalog.TourStep    `json:"tourStep"`
	PanelStep  *catalog.TourStep    `json:"panelStep"`
	LastStep   bool                 `json:"isLastStep"`
	Zone       *catalog.Zone        `json:"zone"`
	Loading    bool                 `json:"loading"`
	Report     *simulation.Response `json:"report"`
}

// Outcome is the result of one scenario run. Applied is false when a newer
// run or a panel change superseded it before it resolved.
type Outcome struct {
	RequestID string              `json:"requestId"`
	Zone      catalog.Zone        `json:"zone"`
	Report    simulation.Response `json:"report"`
	Applied   bool                `json:"applied"`
}

type Dashboard struct {
	catalog *catalog.Catalog
	sims    Simulator

	mu      sync.Mutex
	tour    *tour.Controller
	seq     uint64
	loading bool
	report  *simulation.Response
}

func New(c *catalog.Catalog, sims Simulator) *Dashboard {
	return &Dashboard{
		catalog: c,
		sims:    sims,
		tour:    tour.New(c),
	}
}

func (d *Dashboard) StartTour() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transition(d.tour.Start)
}

func (d *Dashboard) Advance() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transition(func() error {
		d.tour.Advance()
		return nil
	})
}

// Exit leaves the tour and closes the panel.
func (d *Dashboard) Exit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transition(func() error {
		d.tour.Exit()
		return nil
	})
}

func (d *Dashboard) Close() {
	d.Exit()
}

// SelectZone opens the panel for a zone without changing the tour.
func (d *Dashboard) SelectZone(id string) error {
	z, ok := d.catalog.Zone(id)
	if !ok {
		return ErrUnknownZone
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transition(func() error {
		d.tour.SelectZone(z)
		return nil
	})
}

// transition applies fn and, when the panel now shows something else,
// drops the current report and invalidates runs still in flight.
func (d *Dashboard) transition(fn func() error) error {
	zoneBefore, stepBefore := d.panelKey()
	if err := fn(); err != nil {
		return err
	}
	zoneAfter, stepAfter := d.panelKey()
	if zoneBefore != zoneAfter || stepBefore != stepAfter {
		d.seq++
		d.loading = false
		d.report = nil
	}
	return nil
}

func (d *Dashboard) panelKey() (string, int) {
	zoneID := ""
	if z, ok := d.tour.SelectedZone(); ok {
		zoneID = z.ID
	}
	stop := 0
	if s, ok := d.tour.PanelStep(); ok {
		stop = s.StopNumber
	}
	return zoneID, stop
}

// RunScenario fetches a report for the open panel. While the panel shows a
// tour stop, that stop's impact narrative is the scenario. Only the most
// recently started run updates the panel.
func (d *Dashboard) RunScenario(ctx context.Context) (Outcome, error) {
	d.mu.Lock()
	zone, ok := d.tour.SelectedZone()
	if !ok {
		d.mu.Unlock()
		return Outcome{}, ErrNoZoneSelected
	}
	scenario := ""
	if step, ok := d.tour.PanelStep(); ok {
		scenario = step.Impact
	}
	d.seq++
	seq := d.seq
	d.loading = true
	d.mu.Unlock()

	requestID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{
		"request_id": requestID,
		"zone":       zone.ID,
		"seq":        seq,
	})
	log.Debug("Running scenario")

	report := d.sims.FetchSimulation(ctx, zone.Title, zone.Description, scenario)

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		log.WithField("latest_seq", d.seq).Info("Discarding stale simulation report")
		return Outcome{RequestID: requestID, Zone: zone, Report: report, Applied: false}, nil
	}
	d.loading = false
	d.report = &report
	return Outcome{RequestID: requestID, Zone: zone, Report: report, Applied: true}, nil
}

func (d *Dashboard) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := View{
		TourActive: d.tour.Active(),
		StepCount:  d.tour.StepCount(),
		LastStep:   d.tour.IsLastStep(),
		Loading:    d.loading,
	}
	if i, ok := d.tour.StepIndex(); ok {
		v.StepIndex = &i
	}
	if s, ok := d.tour.CurrentStep(); ok {
		v.TourStep = &s
	}
	if s, ok := d.tour.PanelStep(); ok {
		v.PanelStep = &s
	}
	if z, ok := d.tour.SelectedZone(); ok {
		v.Zone = &z
	}
	if d.report != nil {
		r := *d.report
		v.Report = &r
	}
	return v
}
