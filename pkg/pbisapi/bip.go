package pbisapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/noah-isme/pbis-gateway/internal/models"
)

func bipPath(code string) string {
	return "/bip/students/" + pathEscape(code)
}

// GetBIP fetches a student's plan; a student without one yields not found.
func (c *Client) GetBIP(ctx context.Context, code string) (models.BIP, error) {
	var b models.BIP
	err := c.Do(ctx, http.MethodGet, bipPath(code)+"/bip", nil, nil, &b)
	return b, err
}

// SaveBIP writes the whole plan.
func (c *Client) SaveBIP(ctx context.Context, b models.BIP) error {
	return c.Do(ctx, http.MethodPost, bipPath(b.StudentCode)+"/bip", nil, b, nil)
}

// AIBIPFull drafts all eight AI sections. The analysis is returned raw: a JSON
// string for free text, or an object keyed by field name.
func (c *Client) AIBIPFull(ctx context.Context, code string, req models.BIPAIRequest) (json.RawMessage, error) {
	var reply models.BIPAIResponse
	if err := c.Do(ctx, http.MethodPost, bipPath(code)+"/ai-bip-full", nil, req, &reply); err != nil {
		return nil, err
	}
	return reply.Analysis, nil
}

// AIBIPHypothesis drafts the target behavior, hypothesis and goals sections.
func (c *Client) AIBIPHypothesis(ctx context.Context, code string) (string, error) {
	var reply struct {
		Hypothesis string `json:"hypothesis"`
	}
	if err := c.Do(ctx, http.MethodPost, bipPath(code)+"/ai-hypothesis", nil, struct{}{}, &reply); err != nil {
		return "", err
	}
	return reply.Hypothesis, nil
}

// AIBIPStrategies drafts the four strategy sections from the first three.
func (c *Client) AIBIPStrategies(ctx context.Context, code string, req models.BIPStrategiesRequest) (string, error) {
	var reply struct {
		Strategies string `json:"strategies"`
	}
	if err := c.Do(ctx, http.MethodPost, bipPath(code)+"/ai-strategies", nil, req, &reply); err != nil {
		return "", err
	}
	return reply.Strategies, nil
}
