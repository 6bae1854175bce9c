// Package ollama reports whether the local Ollama server can serve a model.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const healthTimeout = 5 * time.Second

type Client struct {
	client *api.Client
	host   string
}

// NewClient talks to host, or to $OLLAMA_HOST / localhost:11434 when host is empty.
func NewClient(host string) (*Client, error) {
	if host == "" {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return &Client{client: client, host: "default"}, nil
	}

	u, err := url.Parse(host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("ollama host must be a URL like http://localhost:11434 (got %q)", host)
	}
	httpClient := &http.Client{Timeout: healthTimeout}
	return &Client{client: api.NewClient(u, httpClient), host: host}, nil
}

// Status is the outcome of a readiness check.
type Status struct {
	Reachable    bool
	ModelPresent bool
	Models       []string
}

// Check verifies the server answers and whether model has been pulled.
// An unreachable server is reported in Status, not as an error.
func (c *Client) Check(ctx context.Context, model string) (*Status, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := c.client.Heartbeat(ctx); err != nil {
		return &Status{}, nil
	}

	resp, err := c.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list Ollama models at %s: %w", c.host, err)
	}

	status := &Status{Reachable: true}
	for _, m := range resp.Models {
		status.Models = append(status.Models, m.Name)
		if matchesModel(m.Name, model) {
			status.ModelPresent = true
		}
	}
	return status, nil
}

// matchesModel treats an untagged name as ":latest".
func matchesModel(name, model string) bool {
	if name == model {
		return true
	}
	if !strings.Contains(model, ":") {
		return name == model+":latest"
	}
	return false
}
