// Package tour sequences the guided tour and keeps the selected zone in step
// with the tour position.
package tour

import (
	"errors"

	"factory_floor/catalog"

	"github.com/sirupsen/logrus"
)

var ErrNoTourSteps = errors.New("tour has no steps")

const idle = -1

// Session is the tour position. StepIndex is meaningful only when Active.
type Session struct {
	Active    bool `json:"active"`
	StepIndex int  `json:"stepIndex"`
}

// Controller owns the tour session and the selected zone. It is not safe for
// concurrent use; callers serialize access.
type Controller struct {
	catalog  *catalog.Catalog
	step     int
	selected string
}

func New(c *catalog.Catalog) *Controller {
	return &Controller{catalog: c, step: idle}
}

// Start begins the tour at the first stop.
func (t *Controller) Start() error {
	if t.catalog.StepCount() == 0 {
		return ErrNoTourSteps
	}
	t.moveTo(0)
	return nil
}

// Advance moves to the next stop, or ends the tour after the last one.
// It does nothing when no tour is running.
func (t *Controller) Advance() {
	if t.step == idle {
		return
	}

	next := t.step + 1
	if next < t.catalog.StepCount() {
		t.moveTo(next)
		return
	}

	logrus.WithField("from", t.step).Debug("Tour finished")
	t.step = idle
	t.selected = ""
}

// Exit leaves the tour and closes the panel, whatever the current stop.
func (t *Controller) Exit() {
	if t.step != idle {
		logrus.WithField("from", t.step).Debug("Tour exited")
	}
	t.step = idle
	t.selected = ""
}

// Close is Exit under the name the panel uses.
func (t *Controller) Close() {
	t.Exit()
}

// SelectZone shows a zone in the panel without touching the tour session,
// so a running tour may point at a different zone until the next Advance.
func (t *Controller) SelectZone(z catalog.Zone) {
	t.selected = z.ID
}

func (t *Controller) moveTo(i int) {
	step, _ := t.catalog.Step(i)
	fields := logrus.Fields{"from": t.step, "to": i, "zone": step.ZoneID}

	t.step = i
	if z, ok := t.catalog.Zone(step.ZoneID); ok {
		t.selected = z.ID
	} else {
		logrus.WithFields(fields).Warn("Tour stop references unknown zone, panel left unchanged")
		return
	}
	logrus.WithFields(fields).Debug("Tour step")
}

func (t *Controller) Session() Session {
	if t.step == idle {
		return Session{}
	}
	return Session{Active: true, StepIndex: t.step}
}

func (t *Controller) Active() bool {
	return t.step != idle
}

func (t *Controller) StepIndex() (int, bool) {
	if t.step == idle {
		return 0, false
	}
	return t.step, true
}

func (t *Controller) StepCount() int {
	return t.catalog.StepCount()
}

func (t *Controller) CurrentStep() (catalog.TourStep, bool) {
	if t.step == idle {
		return catalog.TourStep{}, false
	}
	return t.catalog.Step(t.step)
}

// IsLastStep reports whether the tour is on its final stop.
func (t *Controller) IsLastStep() bool {
	return t.step != idle && t.step == t.catalog.StepCount()-1
}

func (t *Controller) SelectedZone() (catalog.Zone, bool) {
	if t.selected == "" {
		return catalog.Zone{}, false
	}
	return t.catalog.Zone(t.selected)
}

// PanelStep returns the current stop only while the panel shows that stop's
// zone. After a manual zone click during a tour it reports false.
func (t *Controller) PanelStep() (catalog.TourStep, bool) {
	step, ok := t.CurrentStep()
	if !ok || t.selected == "" || step.ZoneID != t.selected {
		return catalog.TourStep{}, false
	}
	return step, true
}
