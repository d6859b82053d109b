package pbisapi

import (
	"context"
	"net/http"

	"github.com/noah-isme/pbis-gateway/internal/models"
)

type rosterCodeRecord struct {
	Code string `json:"Code"`
	Name string `json:"Name"`
	Memo string `json:"Memo"`
}

// Roster returns the class structure.
func (c *Client) Roster(ctx context.Context) (models.RosterStructure, error) {
	var r models.RosterStructure
	err := c.Do(ctx, http.MethodGet, "/roster/", nil, nil, &r)
	return r, err
}

// RosterCodes returns the saved name to code mapping.
func (c *Client) RosterCodes(ctx context.Context) (map[string]string, error) {
	codes := map[string]string{}
	if err := c.Do(ctx, http.MethodGet, "/roster/codes", nil, nil, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// SaveRosterCodes overwrites the whole mapping.
func (c *Client) SaveRosterCodes(ctx context.Context, codes []models.RosterCode) error {
	payload := make([]rosterCodeRecord, 0, len(codes))
	for _, rc := range codes {
		payload = append(payload, rosterCodeRecord{Code: rc.Code, Name: rc.Name, Memo: rc.Memo})
	}
	return c.Do(ctx, http.MethodPost, "/roster/codes", nil, payload, nil)
}
