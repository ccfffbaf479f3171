package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"factory_floor/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	content string
	err     error
	calls   int
	last    ai.TextRequest
}

func (s *stubGenerator) GenerateJSON(_ context.Context, req ai.TextRequest) (string, error) {
	s.calls++
	s.last = req
	return s.content, s.err
}

const validReport = `{
  "systemStatus": "Optimal",
  "efficiencyScore": 97.5,
  "metrics": [
    {"name": "Vibration", "value": 0.42, "unit": "mm/s", "status": "good", "trend": "stable"},
    {"name": "Bearing Temp", "value": "71", "unit": "°C", "status": "warning", "trend": "up"}
  ],
  "recentEvents": [
    {"timestamp": "10:42 AM", "message": "Motor M-12 calibrated", "type": "success"}
  ],
  "aiAnalysis": "All assets nominal.",
  "recommendedAction": "Inspect M-12 bearing at next shift change."
}`

func TestFetchSimulationSuccess(t *testing.T) {
	gen := &stubGenerator{content: validReport}
	g := NewGateway(gen, "test-model")

	resp := g.FetchSimulation(context.Background(), "Predictive Maintenance", "Condition monitoring.", "")

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, StatusOptimal, resp.SystemStatus)
	assert.Equal(t, 97.5, resp.EfficiencyScore)
	require.Len(t, resp.Metrics, 2)
	assert.Equal(t, Value("0.42"), resp.Metrics[0].Value)
	assert.Equal(t, Value("71"), resp.Metrics[1].Value)
	assert.Equal(t, TrendUp, resp.Metrics[1].Trend)
	require.Len(t, resp.RecentEvents, 1)
	assert.Equal(t, EventSuccess, resp.RecentEvents[0].Type)
	assert.Equal(t, "All assets nominal.", resp.AIAnalysis)
}

func TestFetchSimulationRequest(t *testing.T) {
	gen := &stubGenerator{content: validReport}
	g := NewGateway(gen, "test-model")

	g.FetchSimulation(context.Background(), "Digital Twins", "Virtual replicas.", "A rush of urgent orders")

	assert.Equal(t, "test-model", gen.last.Model)
	assert.Equal(t, SchemaName, gen.last.SchemaName)
	assert.Contains(t, gen.last.Prompt, `"Digital Twins" zone`)
	assert.Contains(t, gen.last.Prompt, "A rush of urgent orders")

	raw, err := json.Marshal(gen.last.Schema)
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	assert.ElementsMatch(t,
		[]any{"systemStatus", "efficiencyScore", "metrics", "recentEvents", "aiAnalysis", "recommendedAction"},
		schema["required"])
	status := schema["properties"].(map[string]any)["systemStatus"].(map[string]any)
	assert.Equal(t, []any{"Optimal", "Degraded", "Critical", "Maintenance"}, status["enum"])
	assert.Equal(t, false, schema["additionalProperties"])
}

func TestSchemaRequiresEveryItemField(t *testing.T) {
	raw, err := json.Marshal(Schema())
	require.NoError(t, err)
	var schema struct {
		Properties map[string]struct {
			Items struct {
				Required             []string `json:"required"`
				AdditionalProperties *bool    `json:"additionalProperties"`
			} `json:"items"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(raw, &schema))

	metrics := schema.Properties["metrics"].Items
	assert.ElementsMatch(t, []string{"name", "value", "unit", "status", "trend"}, metrics.Required)
	require.NotNil(t, metrics.AdditionalProperties)
	assert.False(t, *metrics.AdditionalProperties)

	events := schema.Properties["recentEvents"].Items
	assert.ElementsMatch(t, []string{"timestamp", "message", "type"}, events.Required)
	require.NotNil(t, events.AdditionalProperties)
	assert.False(t, *events.AdditionalProperties)
}

func TestParseRejectsMetricWithoutTrend(t *testing.T) {
	// trend is required by the schema, so such a payload is non-conforming.
	_, err := Parse(`{"systemStatus":"Optimal","efficiencyScore":90,
		"metrics":[{"name":"Temp","value":40,"unit":"C","status":"good"}],
		"recentEvents":[],"aiAnalysis":"a","recommendedAction":"b"}`)
	assert.ErrorContains(t, err, "trend")
}

func TestFetchSimulationFallback(t *testing.T) {
	tests := []struct {
		name string
		gen  TextGenerator
	}{
		{"remote error", &stubGenerator{err: errors.New("network down")}},
		{"empty payload", &stubGenerator{content: ""}},
		{"whitespace payload", &stubGenerator{content: "  \n "}},
		{"not json", &stubGenerator{content: "the factory is fine"}},
		{"missing field", &stubGenerator{content: `{"systemStatus":"Optimal","efficiencyScore":90,"metrics":[],"recentEvents":[],"aiAnalysis":"ok"}`}},
		{"bad status", &stubGenerator{content: `{"systemStatus":"Fine","efficiencyScore":90,"metrics":[],"recentEvents":[],"aiAnalysis":"","recommendedAction":""}`}},
		{"bad metric trend", &stubGenerator{content: `{"systemStatus":"Optimal","efficiencyScore":90,"metrics":[{"name":"x","value":"1","unit":"","status":"good","trend":"sideways"}],"recentEvents":[],"aiAnalysis":"","recommendedAction":""}`}},
		{"bad event type", &stubGenerator{content: `{"systemStatus":"Optimal","efficiencyScore":90,"metrics":[],"recentEvents":[{"timestamp":"now","message":"m","type":"panic"}],"aiAnalysis":"","recommendedAction":""}`}},
		{"wrong score type", &stubGenerator{content: `{"systemStatus":"Optimal","efficiencyScore":"high","metrics":[],"recentEvents":[],"aiAnalysis":"","recommendedAction":""}`}},
		{"no generator", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGateway(tt.gen, "m")
			resp := g.FetchSimulation(context.Background(), "Predictive Maintenance", "...", "")
			assert.Equal(t, Fallback(), resp)
		})
	}
}

func TestFallbackLiteral(t *testing.T) {
	f := Fallback()

	assert.Equal(t, StatusDegraded, f.SystemStatus)
	assert.Equal(t, 85.0, f.EfficiencyScore)
	require.Len(t, f.Metrics, 1)
	assert.Equal(t, Metric{Name: "System Load", Value: "N/A", Unit: "%", Status: MetricWarning, Trend: TrendStable}, f.Metrics[0])
	require.Len(t, f.RecentEvents, 1)
	assert.Equal(t, Event{Timestamp: "Now", Message: "Simulation service unavailable. Check API Key.", Type: EventAlert}, f.RecentEvents[0])
	assert.Equal(t, "Unable to connect to central AI core.", f.AIAnalysis)
	assert.Equal(t, "Retry simulation.", f.RecommendedAction)

	// Each call returns fresh slices.
	f.Metrics[0].Name = "changed"
	assert.Equal(t, "System Load", Fallback().Metrics[0].Name)
}

func TestParseEmptySequences(t *testing.T) {
	resp, err := Parse(`{"systemStatus":"Maintenance","efficiencyScore":0,"metrics":[],"recentEvents":[],"aiAnalysis":"","recommendedAction":""}`)
	require.NoError(t, err)
	assert.NotNil(t, resp.Metrics)
	assert.NotNil(t, resp.RecentEvents)
	assert.Empty(t, resp.Metrics)
	assert.Equal(t, StatusMaintenance, resp.SystemStatus)
}

func TestParseNullSequenceIsMissing(t *testing.T) {
	_, err := Parse(`{"systemStatus":"Optimal","efficiencyScore":1,"metrics":null,"recentEvents":[],"aiAnalysis":"","recommendedAction":""}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics")
}

func TestParseOutOfRangeScoreAccepted(t *testing.T) {
	resp, err := Parse(`{"systemStatus":"Critical","efficiencyScore":140,"metrics":[],"recentEvents":[],"aiAnalysis":"","recommendedAction":""}`)
	require.NoError(t, err)
	assert.Equal(t, 140.0, resp.EfficiencyScore)
}

func TestParseCodeFence(t *testing.T) {
	resp, err := Parse("```json\n" + validReport + "\n```")
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, resp.SystemStatus)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}```", `{"a":1}`},
		{"```", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in), tt.in)
	}
}

func TestValueDecoding(t *testing.T) {
	tests := []struct {
		raw     string
		want    Value
		wantErr bool
	}{
		{`"12.5"`, "12.5", false},
		{`12.5`, "12.5", false},
		{`-3`, "-3", false},
		{`null`, "", false},
		{`true`, "", true},
		{`{"x":1}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v Value
			err := json.Unmarshal([]byte(tt.raw), &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}
