package models

import "encoding/json"

// BIPSectionMaxLength bounds every plan section.
const BIPSectionMaxLength = 10000

// BIP is a student's behavior intervention plan. The first eight sections can
// be filled by the AI assistant; the last three are entered by hand.
type BIP struct {
	StudentCode             string `json:"StudentCode" validate:"required,max=32"`
	TargetBehavior          string `json:"TargetBehavior" validate:"max=10000"`
	Hypothesis              string `json:"Hypothesis" validate:"max=10000"`
	Goals                   string `json:"Goals" validate:"max=10000"`
	PreventionStrategies    string `json:"PreventionStrategies" validate:"max=10000"`
	TeachingStrategies      string `json:"TeachingStrategies" validate:"max=10000"`
	ReinforcementStrategies string `json:"ReinforcementStrategies" validate:"max=10000"`
	CrisisPlan              string `json:"CrisisPlan" validate:"max=10000"`
	EvaluationPlan          string `json:"EvaluationPlan" validate:"max=10000"`
	MedicationStatus        string `json:"MedicationStatus" validate:"max=10000"`
	ReinforcerInfo          string `json:"ReinforcerInfo" validate:"max=10000"`
	OtherConsiderations     string `json:"OtherConsiderations" validate:"max=10000"`
	UpdatedAt               string `json:"UpdatedAt,omitempty"`
	Author                  string `json:"Author,omitempty"`
}

// UnmarshalJSON accepts the legacy ConsequenceStrategies column as
// ReinforcementStrategies when the latter is empty.
func (b *BIP) UnmarshalJSON(data []byte) error {
	type plain BIP
	aux := struct {
		*plain
		ConsequenceStrategies string `json:"ConsequenceStrategies"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if b.ReinforcementStrategies == "" && aux.ConsequenceStrategies != "" {
		b.ReinforcementStrategies = aux.ConsequenceStrategies
	}
	return nil
}

// BIPAIRequest carries the manual sections used as AI context.
type BIPAIRequest struct {
	StartDate           string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate             string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MedicationStatus    string `json:"medication_status"`
	ReinforcerInfo      string `json:"reinforcer_info"`
	OtherConsiderations string `json:"other_considerations"`
}

// BIPAIResponse is the upstream AI draft. Analysis is usually free text but
// may be a JSON object keyed by field name.
type BIPAIResponse struct {
	Analysis json.RawMessage `json:"analysis"`
}

// BIPSuggestion is the merged preview returned to the editor.
type BIPSuggestion struct {
	Raw     string            `json:"raw"`
	Matched map[string]string `json:"matched"`
	Merged  BIP               `json:"merged"`
}

// BIPSuggestRequest asks for an AI draft merged into Draft, or into the saved
// plan when Draft is nil.
type BIPSuggestRequest struct {
	BIPAIRequest
	Draft *BIP `json:"draft,omitempty"`
}

// BIPStageRequest asks for a staged AI assist merged into Draft, or into the
// saved plan when Draft is nil.
type BIPStageRequest struct {
	Draft *BIP `json:"draft,omitempty"`
}

// BIPStrategiesRequest carries the first three sections the strategy assist builds on.
type BIPStrategiesRequest struct {
	TargetBehavior string `json:"target_behavior"`
	Hypothesis     string `json:"hypothesis"`
	Goals          string `json:"goals"`
}
