package qa

import (
	"strings"
	"time"
)

// Keywords are the terms an acceptable summary of the earnings prompt must mention
var Keywords = []string{"revenue", "profit", "missed", "expectations"}

// MinResponseWords is the word count a response must exceed to be a success
const MinResponseWords = 5

// Metrics holds the heuristic QA results for one agent response
type Metrics struct {
	ResponseLength   int
	ContainsKeywords bool
	ToolTriggered    *string
	Success          bool
	LatencySeconds   float64
}

// Evaluate computes the QA metrics for a response. Only the first enabled tool
// is checked for a mention in the response text.
func Evaluate(response string, enabledTools []string, latency time.Duration) Metrics {
	lower := strings.ToLower(response)

	m := Metrics{
		ResponseLength:   len(strings.Fields(response)),
		ContainsKeywords: containsAny(lower, Keywords),
		LatencySeconds:   latency.Seconds(),
	}

	if len(enabledTools) > 0 && strings.Contains(lower, strings.ToLower(enabledTools[0])) {
		tool := enabledTools[0]
		m.ToolTriggered = &tool
	}

	m.Success = m.ContainsKeywords && m.ResponseLength > MinResponseWords
	if m.LatencySeconds < 0 {
		m.LatencySeconds = 0
	}

	return m
}

// ToolName returns the triggered tool or "None"
func (m Metrics) ToolName() string {
	if m.ToolTriggered == nil {
		return "None"
	}
	return *m.ToolTriggered
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
