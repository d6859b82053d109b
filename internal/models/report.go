package models

// Tier3Report is the upstream tier-3 aggregate.
type Tier3Report struct {
	Period   map[string]string        `json:"period,omitempty"`
	Students []map[string]interface{} `json:"students"`
	Summary  map[string]interface{}   `json:"summary,omitempty"`
}

// Narrative is AI text together with its rendered HTML.
type Narrative struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}
