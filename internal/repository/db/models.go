package db

import "time"

// ConfigRecord is one agent configuration, written once per run
type ConfigRecord struct {
	ID             int64
	AgentName      string
	Version        string
	PromptTemplate string
	Tools          []string
	Goal           string
}

// InteractionLog is the outcome of one run; ConfigID references the
// ConfigRecord written by the same run
type InteractionLog struct {
	ID               int64
	ConfigID         int64
	UserInput        string
	AgentResponse    string
	ToolUsed         *string
	Success          bool
	CreatedAt        time.Time
	ResponseLength   int
	Latency          float64 // seconds
	KeywordHit       bool
	HeuristicSuccess bool
}
