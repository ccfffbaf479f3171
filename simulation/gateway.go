// Package simulation fetches zone status reports from the generation service
// and substitutes a fixed report whenever that fails.
package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"factory_floor/ai"
	"factory_floor/instructions"

	"github.com/sirupsen/logrus"
)

type TextGenerator interface {
	GenerateJSON(ctx context.Context, req ai.TextRequest) (string, error)
}

type Gateway struct {
	gen   TextGenerator
	model string
}

// NewGateway returns a gateway using gen. A nil gen makes every request
// return the fallback report.
func NewGateway(gen TextGenerator, model string) *Gateway {
	return &Gateway{gen: gen, model: model}
}

// FetchSimulation returns a report for the zone, narrated by scenario when it
// is non-empty. It never fails; any problem yields Fallback().
func (g *Gateway) FetchSimulation(ctx context.Context, zoneTitle, zoneDescription, scenario string) Response {
	log := logrus.WithFields(logrus.Fields{
		"zone":     zoneTitle,
		"scenario": scenario != "",
	})

	resp, err := g.fetch(ctx, zoneTitle, zoneDescription, scenario)
	if err != nil {
		log.WithError(err).Error("Simulation failed, using fallback report")
		return Fallback()
	}

	log.WithFields(logrus.Fields{
		"status":     resp.SystemStatus,
		"efficiency": resp.EfficiencyScore,
		"metrics":    len(resp.Metrics),
		"events":     len(resp.RecentEvents),
	}).Info("Simulation report received")
	return resp
}

func (g *Gateway) fetch(ctx context.Context, zoneTitle, zoneDescription, scenario string) (Response, error) {
	if g.gen == nil {
		return Response{}, errors.New("no text generator configured")
	}

	content, err := g.gen.GenerateJSON(ctx, ai.TextRequest{
		Model:      g.model,
		Prompt:     instructions.Simulation(zoneTitle, zoneDescription, scenario),
		SchemaName: SchemaName,
		Schema:     Schema(),
	})
	if err != nil {
		return Response{}, err
	}
	return Parse(content)
}

type wireResponse struct {
	SystemStatus      *Status   `json:"systemStatus"`
	EfficiencyScore   *float64  `json:"efficiencyScore"`
	Metrics           *[]Metric `json:"metrics"`
	RecentEvents      *[]Event  `json:"recentEvents"`
	AIAnalysis        *string   `json:"aiAnalysis"`
	RecommendedAction *string   `json:"recommendedAction"`
}

// Parse decodes a model payload into a Response, rejecting payloads with
// missing fields or values outside the enumerations.
func Parse(content string) (Response, error) {
	content = stripCodeFence(content)
	if content == "" {
		return Response{}, errors.New("no content generated")
	}

	var w wireResponse
	if err := json.Unmarshal([]byte(content), &w); err != nil {
		return Response{}, fmt.Errorf("decode simulation: %w", err)
	}

	var missing []string
	if w.SystemStatus == nil {
		missing = append(missing, "systemStatus")
	}
	if w.EfficiencyScore == nil {
		missing = append(missing, "efficiencyScore")
	}
	if w.Metrics == nil {
		missing = append(missing, "metrics")
	}
	if w.RecentEvents == nil {
		missing = append(missing, "recentEvents")
	}
	if w.AIAnalysis == nil {
		missing = append(missing, "aiAnalysis")
	}
	if w.RecommendedAction == nil {
		missing = append(missing, "recommendedAction")
	}
	if len(missing) > 0 {
		return Response{}, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	resp := Response{
		SystemStatus:      *w.SystemStatus,
		EfficiencyScore:   *w.EfficiencyScore,
		Metrics:           *w.Metrics,
		RecentEvents:      *w.RecentEvents,
		AIAnalysis:        *w.AIAnalysis,
		RecommendedAction: *w.RecommendedAction,
	}
	if resp.Metrics == nil {
		resp.Metrics = []Metric{}
	}
	if resp.RecentEvents == nil {
		resp.RecentEvents = []Event{}
	}

	if err := validate(resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

func validate(r Response) error {
	if !r.SystemStatus.Valid() {
		return fmt.Errorf("invalid system status %q", r.SystemStatus)
	}
	for i, m := range r.Metrics {
		if !m.Status.Valid() {
			return fmt.Errorf("metric %d: invalid status %q", i, m.Status)
		}
		if !m.Trend.Valid() {
			return fmt.Errorf("metric %d: invalid trend %q", i, m.Trend)
		}
	}
	for i, e := range r.RecentEvents {
		if !e.Type.Valid() {
			return fmt.Errorf("event %d: invalid type %q", i, e.Type)
		}
	}
	return nil
}

// stripCodeFence removes a surrounding ```json fence some models add despite
// the response format.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
