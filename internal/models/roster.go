package models

// RosterCode assigns a student name to an anonymised code.
type RosterCode struct {
	Code   string `json:"code" validate:"required,numeric,min=4,max=6"`
	Name   string `json:"name"`
	Memo   string `json:"memo,omitempty"`
	Class  string `json:"class,omitempty"`
	Preset bool   `json:"preset"`
}

// RosterCodesRequest is the full mapping uploaded on save.
type RosterCodesRequest struct {
	Codes []RosterCode `json:"codes" validate:"dive"`
}

// RosterStructure is the upstream class roster, passed through.
type RosterStructure map[string]interface{}
