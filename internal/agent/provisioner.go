package agent

import (
	"context"
	"fmt"
	"time"

	"summarizer-agent/internal/logger"
	"summarizer-agent/internal/profile"
	"summarizer-agent/internal/tools"

	"github.com/sirupsen/logrus"
)

// Provisioner creates hosted agents from profiles
type Provisioner struct {
	platform Platform
	toolset  []tools.Definition
}

// NewProvisioner creates a Provisioner that attaches toolset to every agent
func NewProvisioner(platform Platform, toolset []tools.Definition) *Provisioner {
	return &Provisioner{platform: platform, toolset: toolset}
}

// Provision asks the platform to instantiate an agent for the profile
func (p *Provisioner) Provision(ctx context.Context, prof profile.Profile, model, name string) (*Identity, error) {
	if model == "" {
		return nil, fmt.Errorf("model deployment is required")
	}

	spec := AgentSpec{
		Model:        model,
		Name:         name,
		Description:  prof.Description(),
		Instructions: prof.PromptTemplate,
		Tools:        p.toolset,
	}

	logger.Log.WithFields(logrus.Fields{
		"agent_name": name,
		"model":      model,
		"version":    prof.Version,
		"tools":      len(spec.Tools),
	}).Info("Creating agent")

	identity, err := p.platform.CreateAgent(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("error creating agent: %w", err)
	}
	if identity.Name == "" {
		identity.Name = name
	}

	logger.Log.WithFields(logrus.Fields{"agent_name": identity.Name, "agent_id": identity.ID}).Info("Agent created")
	return identity, nil
}

// NewAgentName returns "summarizer-<version>-<HHMMSS>"
func NewAgentName(version string, now time.Time) string {
	return fmt.Sprintf("summarizer-%s-%s", version, now.Format("150405"))
}
