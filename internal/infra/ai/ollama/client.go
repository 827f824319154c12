package ollama

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/JexSrs/go-ollama"
)

const (
	DefaultHost  = "http://localhost:11434"
	DefaultModel = "llama3.1"
)

// Client talks to a local Ollama server; no credential is needed.
type Client struct {
	client *ollama.Ollama
	model  string
}

func NewClient(host, model string) (*Client, error) {
	if host == "" {
		host = DefaultHost
	}
	if model == "" {
		model = DefaultModel
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	return &Client{client: ollama.New(*u), model: model}, nil
}

func (c *Client) Name() string { return "ollama" }

// Complete runs a non-streaming Generate call. The SDK takes no context, so
// cancellation is only observed before the request starts.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	res, err := c.client.Generate(
		c.client.Generate.WithModel(c.model),
		c.client.Generate.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if !res.Done {
		return "", fmt.Errorf("ollama generate: response not finished")
	}
	return strings.TrimSpace(res.Response), nil
}
