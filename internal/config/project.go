package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ProjectConnection identifies the hosted agent project
type ProjectConnection struct {
	Host           string
	SubscriptionID string
	ResourceGroup  string
	ProjectName    string
	// Endpoint is the base URL agent API requests are sent to
	Endpoint string
}

// ParseProjectConnectionString accepts either a full https endpoint or the
// "<host>;<subscription_id>;<resource_group>;<project_name>" form.
func ParseProjectConnectionString(connStr string) (ProjectConnection, error) {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return ProjectConnection{}, fmt.Errorf("connection string is empty")
	}

	if strings.HasPrefix(connStr, "https://") || strings.HasPrefix(connStr, "http://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return ProjectConnection{}, fmt.Errorf("error parsing endpoint: %w", err)
		}
		if u.Host == "" {
			return ProjectConnection{}, fmt.Errorf("endpoint %q has no host", connStr)
		}
		return ProjectConnection{
			Host:     u.Host,
			Endpoint: strings.TrimRight(connStr, "/"),
		}, nil
	}

	parts := strings.Split(connStr, ";")
	if len(parts) != 4 {
		return ProjectConnection{}, fmt.Errorf("expected 4 ';'-separated parts, got %d", len(parts))
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return ProjectConnection{}, fmt.Errorf("part %d of connection string is empty", i+1)
		}
	}

	host := strings.TrimPrefix(parts[0], "https://")
	project := ProjectConnection{
		Host:           host,
		SubscriptionID: parts[1],
		ResourceGroup:  parts[2],
		ProjectName:    parts[3],
	}
	project.Endpoint = fmt.Sprintf(
		"https://%s/agents/v1.0/subscriptions/%s/resourceGroups/%s/providers/Microsoft.MachineLearningServices/workspaces/%s",
		project.Host, project.SubscriptionID, project.ResourceGroup, project.ProjectName,
	)

	return project, nil
}
