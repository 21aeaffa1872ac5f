// Package llmtest provides a scriptable fake llm.Client for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/jonathan/talent-profiles/internal/llm"
)

// ErrUnavailable is the default failure returned by a failing fake client.
var ErrUnavailable = errors.New("llm unavailable")

// Client is a fake llm.Client. Responses are returned by the configured
// functions; nil functions fail with ErrUnavailable. All methods are safe
// for concurrent use and calls are recorded.
type Client struct {
	GenerateContentFunc func(prompt string) (string, error)
	GenerateJSONFunc    func(prompt string) (string, error)
	AnalyzeImageFunc    func(prompt string, imageData []byte, format string) (string, error)

	mu      sync.Mutex
	Prompts []string
}

var _ llm.Client = (*Client)(nil)

// GenerateContent implements llm.Client.
func (c *Client) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.record(prompt)
	if c.GenerateContentFunc == nil {
		return "", ErrUnavailable
	}
	return c.GenerateContentFunc(prompt)
}

// GenerateJSON implements llm.Client.
func (c *Client) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.record(prompt)
	if c.GenerateJSONFunc == nil {
		return "", ErrUnavailable
	}
	return c.GenerateJSONFunc(prompt)
}

// AnalyzeImage implements llm.Client.
func (c *Client) AnalyzeImage(_ context.Context, prompt string, imageData []byte, format string) (string, error) {
	c.record(prompt)
	if c.AnalyzeImageFunc == nil {
		return "", ErrUnavailable
	}
	return c.AnalyzeImageFunc(prompt, imageData, format)
}

// Close implements llm.Client.
func (c *Client) Close() error { return nil }

// CallCount returns how many operations were invoked.
func (c *Client) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Prompts)
}

func (c *Client) record(prompt string) {
	c.mu.Lock()
	c.Prompts = append(c.Prompts, prompt)
	c.mu.Unlock()
}
