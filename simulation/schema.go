package simulation

import (
	"github.com/sashabaranov/go-openai/jsonschema"
)

const SchemaName = "zone_simulation"

func enumOf[T ~string](values ...T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Schema is the response schema sent with every simulation request. Every
// property is required and objects are closed, as strict mode demands and as
// Parse enforces.
func Schema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"systemStatus": {
				Type:        jsonschema.String,
				Enum:        enumOf(StatusOptimal, StatusDegraded, StatusCritical, StatusMaintenance),
				Description: "The overall operational status of this zone.",
			},
			"efficiencyScore": {
				Type:        jsonschema.Number,
				Description: "A percentage score (0-100) of current efficiency.",
			},
			"metrics": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"name":   {Type: jsonschema.String},
						"value":  {Type: jsonschema.String},
						"unit":   {Type: jsonschema.String},
						"status": {Type: jsonschema.String, Enum: enumOf(MetricGood, MetricWarning, MetricCritical)},
						"trend":  {Type: jsonschema.String, Enum: enumOf(TrendUp, TrendDown, TrendStable)},
					},
					Required:             []string{"name", "value", "unit", "status", "trend"},
					AdditionalProperties: false,
				},
			},
			"recentEvents": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"timestamp": {Type: jsonschema.String, Description: "e.g. 10:42 AM"},
						"message":   {Type: jsonschema.String},
						"type":      {Type: jsonschema.String, Enum: enumOf(EventInfo, EventAlert, EventSuccess)},
					},
					Required:             []string{"timestamp", "message", "type"},
					AdditionalProperties: false,
				},
			},
			"aiAnalysis": {
				Type:        jsonschema.String,
				Description: "A brief analysis from the central AI about current performance.",
			},
			"recommendedAction": {
				Type:        jsonschema.String,
				Description: "A specific, actionable recommendation for the operator.",
			},
		},
		Required:             []string{"systemStatus", "efficiencyScore", "metrics", "recentEvents", "aiAnalysis", "recommendedAction"},
		AdditionalProperties: false,
	}
}
