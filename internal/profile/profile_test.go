package profile

import (
	"reflect"
	"testing"
)

func TestSelect_V1(t *testing.T) {
	for _, flag := range []string{"v1", "V1", " v1 ", ""} {
		t.Run("flag="+flag, func(t *testing.T) {
			p := Select(flag)

			if p.Version != "v1" {
				t.Errorf("Version = %q, want v1", p.Version)
			}
			if p.Goal != "Concise summarization" {
				t.Errorf("Goal = %q, want Concise summarization", p.Goal)
			}
			if p.EnabledTools == nil || len(p.EnabledTools) != 0 {
				t.Errorf("EnabledTools = %#v, want empty list", p.EnabledTools)
			}
			if p.PromptTemplate != "Summarize input in 2–3 sentences with only key insights." {
				t.Errorf("PromptTemplate = %q", p.PromptTemplate)
			}
		})
	}
}

func TestSelect_Other(t *testing.T) {
	for _, flag := range []string{"v2", "V2", "v3", "staging", "v1x", "vl"} {
		t.Run("flag="+flag, func(t *testing.T) {
			p := Select(flag)

			if p.Goal != "Detailed summarization with tools" {
				t.Errorf("Goal = %q, want Detailed summarization with tools", p.Goal)
			}
			if !reflect.DeepEqual(p.EnabledTools, []string{"query_summaries"}) {
				t.Errorf("EnabledTools = %#v, want [query_summaries]", p.EnabledTools)
			}
			if p.PromptTemplate != "Summarize content with full detail using the available tools." {
				t.Errorf("PromptTemplate = %q", p.PromptTemplate)
			}
		})
	}
}

func TestSelect_ReturnsIndependentToolLists(t *testing.T) {
	a := Select("v2")
	a.EnabledTools[0] = "mutated"

	b := Select("v2")
	if b.EnabledTools[0] != QuerySummariesTool {
		t.Errorf("EnabledTools shared between calls: got %q", b.EnabledTools[0])
	}
}

func TestIsKnown(t *testing.T) {
	tests := map[string]bool{
		"":     true,
		"v1":   true,
		"V2":   true,
		"v3":   false,
		"prod": false,
	}
	for flag, want := range tests {
		if got := IsKnown(flag); got != want {
			t.Errorf("IsKnown(%q) = %v, want %v", flag, got, want)
		}
	}
}

func TestProfile_Description(t *testing.T) {
	if got := Select("v1").Description(); got != "Concise summarization agent" {
		t.Errorf("Description() = %q", got)
	}
}
