// Package ollama is a minimal client for the Ollama model daemon API
// (https://github.com/ollama/ollama/blob/main/docs/api.md): just what is
// needed to list installed models and inspect their Modelfile.
package ollama

import (
	"context"
	"strings"

	client "github.com/mutablelogic/go-client"

	"modelgate/internal/classifier"
)

// DefaultEndpoint is the API root of a local daemon.
const DefaultEndpoint = "http://localhost:11434/api"

// Client talks to the daemon.
type Client struct {
	*client.Client
}

var _ classifier.MetadataProvider = (*Client)(nil)

// Model is one entry of GET /api/tags. ModifiedAt is kept as the daemon's text
// so an odd timestamp on one entry cannot fail the whole listing.
type Model struct {
	Name       string       `json:"name"`
	Model      string       `json:"model,omitempty"`
	ModifiedAt string       `json:"modified_at,omitempty"`
	Size       uint64       `json:"size"`
	Digest     string       `json:"digest,omitempty"`
	Details    ModelDetails `json:"details"`
}

// ModelDetails are the format details reported for a model.
type ModelDetails struct {
	ParentModel       string   `json:"parent_model,omitempty"`
	Format            string   `json:"format,omitempty"`
	Family            string   `json:"family,omitempty"`
	Families          []string `json:"families,omitempty"`
	ParameterSize     string   `json:"parameter_size,omitempty"`
	QuantizationLevel string   `json:"quantization_level,omitempty"`
}

// ID returns the identifier the daemon accepts in other calls. Older daemons
// only fill Name.
func (m Model) ID() string {
	if m.Model != "" {
		return m.Model
	}
	return m.Name
}

type listModelsResponse struct {
	Models []Model `json:"models"`
}

type showModelRequest struct {
	Model string `json:"model"`
}

type showModelResponse struct {
	Modelfile  string         `json:"modelfile"`
	Parameters string         `json:"parameters,omitempty"`
	Template   string         `json:"template,omitempty"`
	Details    ModelDetails   `json:"details"`
	Info       map[string]any `json:"model_info,omitempty"`
}

type versionResponse struct {
	Version string `json:"version"`
}

// New creates a client for an endpoint such as "http://localhost:11434/api".
// A bare host URL gets "/api" appended.
func New(endpoint string, opts ...client.ClientOpt) (*Client, error) {
	c, err := client.New(append(opts, client.OptEndpoint(normalizeEndpoint(endpoint)))...)
	if err != nil {
		return nil, err
	}
	return &Client{c}, nil
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return DefaultEndpoint
	}
	if !strings.HasSuffix(endpoint, "/api") {
		endpoint += "/api"
	}
	return endpoint
}

// ListModels returns the installed models in the daemon's order.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var response listModelsResponse
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("tags")); err != nil {
		return nil, err
	}
	return response.Models, nil
}

// ShowModel returns the Modelfile of a model.
func (c *Client) ShowModel(ctx context.Context, name string) (classifier.ModelDetails, error) {
	req, err := client.NewJSONRequest(showModelRequest{Model: name})
	if err != nil {
		return classifier.ModelDetails{}, err
	}
	var response showModelResponse
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("show")); err != nil {
		return classifier.ModelDetails{}, err
	}
	return classifier.ModelDetails{Modelfile: response.Modelfile}, nil
}

// Version returns the daemon version; used as a reachability check.
func (c *Client) Version(ctx context.Context) (string, error) {
	var response versionResponse
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("version")); err != nil {
		return "", err
	}
	return response.Version, nil
}
