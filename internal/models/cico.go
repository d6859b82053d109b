package models

import "time"

// CICO months run from March to December.
const (
	CICOFirstMonth = 3
	CICOLastMonth  = 12
)

// CICODayColumn maps a calendar day to its 1-based sheet column.
type CICODayColumn struct {
	Day  int    `json:"day"`
	Col  int    `json:"col"`
	Date string `json:"date,omitempty"`
}

// CICORow is one student's line in the monthly grid. Rate and Achieved are
// computed upstream.
type CICORow struct {
	Row            int               `json:"row"`
	Code           string            `json:"student_code"`
	Class          string            `json:"class,omitempty"`
	Number         string            `json:"no,omitempty"`
	TargetBehavior string            `json:"target_behavior,omitempty"`
	BehaviorType   string            `json:"behavior_type,omitempty"`
	Scale          string            `json:"scale,omitempty"`
	GoalCriterion  string            `json:"goal_criterion,omitempty"`
	Days           map[string]string `json:"days"`
	Rate           string            `json:"rate,omitempty"`
	Achieved       string            `json:"achieved,omitempty"`
}

// CICOMonthly is the upstream monthly sheet payload.
type CICOMonthly struct {
	Month      int             `json:"month"`
	Students   []CICORow       `json:"students"`
	DayColumns []CICODayColumn `json:"day_columns"`
}

// BusinessDays lists weekdays minus holidays for a month.
type BusinessDays struct {
	Month    int       `json:"month"`
	Year     int       `json:"year"`
	Days     []int     `json:"business_days"`
	Holidays []Holiday `json:"holidays"`
}

// CellUpdate is one changed grid cell; Row and Col are 1-based sheet coordinates.
type CellUpdate struct {
	Row   int    `json:"row" validate:"min=1"`
	Col   int    `json:"col" validate:"min=1"`
	Value string `json:"value"`
}

// MonthlyUpdateRequest is the batch body sent to /cico/monthly/update.
type MonthlyUpdateRequest struct {
	Month   int          `json:"month"`
	Updates []CellUpdate `json:"updates"`
}

// CellEditAction selects how a cell edit is applied.
type CellEditAction string

const (
	CellEditCycle CellEditAction = "cycle"
	CellEditSet   CellEditAction = "set"
)

// CellEdit is a single user interaction with the grid.
type CellEdit struct {
	Row    int            `json:"row" validate:"min=1"`
	Col    int            `json:"col" validate:"min=1"`
	Action CellEditAction `json:"action" validate:"required,oneof=cycle set"`
	Value  string         `json:"value" validate:"max=32"`
}

// SaveState tracks a grid's debounced persistence.
type SaveState string

const (
	SaveIdle    SaveState = "idle"
	SavePending SaveState = "pending"
	SaveSaving  SaveState = "saving"
	SaveSaved   SaveState = "saved"
	SaveFailed  SaveState = "failed"
)

// SaveStatus is reported to the grid page after every edit and flush.
type SaveStatus struct {
	State     SaveState  `json:"state"`
	Pending   int        `json:"pending"`
	LastError string     `json:"last_error,omitempty"`
	SavedAt   *time.Time `json:"saved_at,omitempty"`
}

// CICOSettingsRequest updates per-student sheet settings such as target behavior.
type CICOSettingsRequest struct {
	Month       int               `json:"month" validate:"min=3,max=12"`
	StudentCode string            `json:"student_code" validate:"required"`
	Settings    map[string]string `json:"settings" validate:"required,min=1"`
}

// Tier2ToggleRequest marks whether a student's row in a monthly sheet is on Tier 2.
type Tier2ToggleRequest struct {
	Month       int    `json:"month" validate:"min=3,max=12"`
	StudentCode string `json:"student_code" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=O X"`
}

// CICOGenerateRequest creates a month's sheet upstream.
type CICOGenerateRequest struct {
	Month int `json:"month" validate:"min=3,max=12"`
}

// CICODailyEntry is one student's value on the batch input page.
type CICODailyEntry struct {
	RowIdx         int    `json:"row_idx"`
	StudentCode    string `json:"student_code"`
	Class          string `json:"class"`
	No             string `json:"no"`
	TargetBehavior string `json:"target_behavior"`
	Value          string `json:"value"`
}

// CICODailyUpdate is one value of a batch submission.
type CICODailyUpdate struct {
	StudentCode string `json:"student_code" validate:"required"`
	Rate        string `json:"rate"`
}

// CICODailyBatch submits every value for a date in one request.
type CICODailyBatch struct {
	Date    string            `json:"date" validate:"required,datetime=2006-01-02"`
	Updates []CICODailyUpdate `json:"updates" validate:"required,min=1,dive"`
}

// CICORecord is one day of a Tier 2 student's check-in/check-out card.
type CICORecord struct {
	Date            string `json:"Date"`
	StudentCode     string `json:"StudentCode"`
	TargetBehavior1 string `json:"TargetBehavior1"`
	TargetBehavior2 string `json:"TargetBehavior2"`
	AchievementRate int    `json:"AchievementRate"`
	TeacherMemo     string `json:"TeacherMemo,omitempty"`
	EnteredBy       string `json:"EnteredBy,omitempty"`
}

// CICORecordFilter narrows the record listing; empty fields match everything.
type CICORecordFilter struct {
	StudentCode string
	StartDate   string
	EndDate     string
}

// CICORecordInput is a day's card for one student. Targets are "O" or "X";
// the achievement rate is derived from them.
type CICORecordInput struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	StudentCode     string `json:"student_code" validate:"required"`
	Target1         string `json:"target1" validate:"required,oneof=O X"`
	Target2         string `json:"target2" validate:"required,oneof=O X"`
	AchievementRate int    `json:"achievement_rate"`
	Memo            string `json:"memo" validate:"max=1000"`
	EnteredBy       string `json:"entered_by" validate:"max=100"`
}

// CICOReport is the upstream decision report for a month.
type CICOReport map[string]interface{}

// CICOAnalysisRequest asks for an AI narrative over CICO data.
type CICOAnalysisRequest struct {
	Month       int                    `json:"month,omitempty"`
	StudentCode string                 `json:"student_code,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// CICOGridRow is a grid row plus the edit mode derived from its scale.
type CICOGridRow struct {
	CICORow
	Options []string `json:"options,omitempty"`
	Inline  bool     `json:"inline"`
}

// CICOGrid is the editor view of a month: rows joined with the month's
// business days.
type CICOGrid struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	DayColumns []CICODayColumn `json:"day_columns"`
	Rows       []CICOGridRow   `json:"rows"`
	Holidays   []Holiday       `json:"holidays"`
	Status     SaveStatus      `json:"status"`
}

// CellEditResult echoes the stored value and the grid's save status.
type CellEditResult struct {
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Value  string     `json:"value"`
	Status SaveStatus `json:"status"`
}
