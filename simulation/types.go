package simulation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Status string

const (
	StatusOptimal     Status = "Optimal"
	StatusDegraded    Status = "Degraded"
	StatusCritical    Status = "Critical"
	StatusMaintenance Status = "Maintenance"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOptimal, StatusDegraded, StatusCritical, StatusMaintenance:
		return true
	}
	return false
}

type MetricStatus string

const (
	MetricGood     MetricStatus = "good"
	MetricWarning  MetricStatus = "warning"
	MetricCritical MetricStatus = "critical"
)

func (s MetricStatus) Valid() bool {
	switch s {
	case MetricGood, MetricWarning, MetricCritical:
		return true
	}
	return false
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

func (t Trend) Valid() bool {
	switch t {
	case TrendUp, TrendDown, TrendStable:
		return true
	}
	return false
}

type EventType string

const (
	EventInfo    EventType = "info"
	EventAlert   EventType = "alert"
	EventSuccess EventType = "success"
)

func (t EventType) Valid() bool {
	switch t {
	case EventInfo, EventAlert, EventSuccess:
		return true
	}
	return false
}

// Value is a metric reading. Models send it as either a string or a number;
// both decode to text.
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("metric value must be a string or number: %w", err)
	}
	*v = Value(n.String())
	return nil
}

type Metric struct {
	Name   string       `json:"name"`
	Value  Value        `json:"value"`
	Unit   string       `json:"unit"`
	Status MetricStatus `json:"status"`
	Trend  Trend        `json:"trend"`
}

type Event struct {
	Timestamp string    `json:"timestamp"`
	Message   string    `json:"message"`
	Type      EventType `json:"type"`
}

// Response is one zone status report.
type Response struct {
	SystemStatus      Status   `json:"systemStatus"`
	EfficiencyScore   float64  `json:"efficiencyScore"`
	Metrics           []Metric `json:"metrics"`
	RecentEvents      []Event  `json:"recentEvents"`
	AIAnalysis        string   `json:"aiAnalysis"`
	RecommendedAction string   `json:"recommendedAction"`
}

// Fallback is the report shown when the remote service cannot produce one.
func Fallback() Response {
	return Response{
		SystemStatus:    StatusDegraded,
		EfficiencyScore: 85,
		Metrics: []Metric{
			{Name: "System Load", Value: "N/A", Unit: "%", Status: MetricWarning, Trend: TrendStable},
		},
		RecentEvents: []Event{
			{Timestamp: "Now", Message: "Simulation service unavailable. Check API Key.", Type: EventAlert},
		},
		AIAnalysis:        "Unable to connect to central AI core.",
		RecommendedAction: "Retry simulation.",
	}
}
