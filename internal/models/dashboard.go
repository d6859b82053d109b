package models

// TrendPoint is a dated count.
type TrendPoint struct {
	Date  string  `json:"date"`
	Count float64 `json:"count"`
}

// NamedValue is a labelled count used by Big-5 and function charts.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// HeatmapCell is one cell of the location x time heatmap.
type HeatmapCell struct {
	X     string  `json:"x"`
	Y     string  `json:"y"`
	Value float64 `json:"value"`
}

// RiskStudent is an entry in the dashboard risk list.
type RiskStudent struct {
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	MaxIntensity float64 `json:"max_intensity"`
	Tier         string  `json:"tier"`
	Class        string  `json:"class"`
}

// SafetyAlert is a high intensity incident.
type SafetyAlert struct {
	Date      string  `json:"date"`
	Student   string  `json:"student"`
	Location  string  `json:"location"`
	Type      string  `json:"type"`
	Intensity float64 `json:"intensity"`
}

// DashboardSummary holds the headline numbers.
type DashboardSummary struct {
	TotalIncidents   int     `json:"total_incidents"`
	AvgIntensity     float64 `json:"avg_intensity"`
	RiskStudentCount int     `json:"risk_student_count"`
}

// Big5 groups incident counts by dimension.
type Big5 struct {
	Locations []NamedValue `json:"locations"`
	Times     []NamedValue `json:"times"`
	Behaviors []NamedValue `json:"behaviors"`
}

// Dimension returns the breakdown for locations, times or behaviors.
func (b Big5) Dimension(name string) ([]NamedValue, bool) {
	switch name {
	case "locations":
		return b.Locations, true
	case "times":
		return b.Times, true
	case "behaviors":
		return b.Behaviors, true
	default:
		return nil, false
	}
}

// Dashboard is computed entirely upstream.
type Dashboard struct {
	Error        string           `json:"error,omitempty"`
	Summary      DashboardSummary `json:"summary"`
	Trends       []TrendPoint     `json:"trends"`
	Big5         Big5             `json:"big5"`
	RiskList     []RiskStudent    `json:"risk_list"`
	Functions    []NamedValue     `json:"functions"`
	Heatmap      []HeatmapCell    `json:"heatmap"`
	SafetyAlerts []SafetyAlert    `json:"safety_alerts"`
	AIComment    string           `json:"ai_comment,omitempty"`
}
