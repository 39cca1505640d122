// Package profile maps the agent version flag to the agent's behavior profile.
package profile

import "strings"

const (
	VersionV1 = "v1"
	VersionV2 = "v2"

	QuerySummariesTool = "query_summaries"
)

// Profile describes how an agent version behaves
type Profile struct {
	Version        string
	PromptTemplate string
	Goal           string
	EnabledTools   []string
}

// Select returns the profile for a version flag. The comparison against "v1"
// is case-insensitive and an empty flag means "v1"; every other value gets the
// detailed profile.
func Select(flag string) Profile {
	version := strings.ToLower(strings.TrimSpace(flag))
	if version == "" {
		version = VersionV1
	}

	if version == VersionV1 {
		return Profile{
			Version:        version,
			PromptTemplate: "Summarize input in 2–3 sentences with only key insights.",
			Goal:           "Concise summarization",
			EnabledTools:   []string{},
		}
	}

	return Profile{
		Version:        version,
		PromptTemplate: "Summarize content with full detail using the available tools.",
		Goal:           "Detailed summarization with tools",
		EnabledTools:   []string{QuerySummariesTool},
	}
}

// IsKnown reports whether the flag names a version with a dedicated profile
func IsKnown(flag string) bool {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "", VersionV1, VersionV2:
		return true
	}
	return false
}

// Description is the agent description registered with the platform
func (p Profile) Description() string {
	return p.Goal + " agent"
}
