package models

// Tier labels, highest intensity last.
const (
	Tier1     = "Tier 1"
	Tier2CICO = "Tier2(CICO)"
	Tier2SST  = "Tier2(SST)"
	Tier3     = "Tier 3"
	Tier3Plus = "Tier3+"
)

// TierOrder lists tier labels from universal to most intensive.
var TierOrder = []string{Tier1, Tier2CICO, Tier2SST, Tier3, Tier3Plus}

// StudentStatus is one row of the tier status sheet. Tier and enrollment
// columns hold "O" or "X".
type StudentStatus struct {
	Code        string `json:"Code"`
	Name        string `json:"Name,omitempty"`
	Class       string `json:"Class,omitempty"`
	Enrolled    string `json:"Enrolled,omitempty"`
	Tier1       string `json:"Tier1,omitempty"`
	Tier2CICO   string `json:"Tier2(CICO),omitempty"`
	Tier2SST    string `json:"Tier2(SST),omitempty"`
	Tier3       string `json:"Tier3,omitempty"`
	Tier3Plus   string `json:"Tier3+,omitempty"`
	BeAbleCode  string `json:"BeAbleCode,omitempty"`
	Memo        string `json:"Memo,omitempty"`
	ChangedDate string `json:"ChangedDate,omitempty"`
	CurrentTier string `json:"CurrentTier,omitempty"`
}

// ComputedTier returns the most intensive tier flagged "O". Students with no
// flag default to Tier 1. An upstream CurrentTier is used when present.
func (s StudentStatus) ComputedTier() string {
	flags := []struct {
		value string
		tier  string
	}{
		{s.Tier3Plus, Tier3Plus},
		{s.Tier3, Tier3},
		{s.Tier2SST, Tier2SST},
		{s.Tier2CICO, Tier2CICO},
	}
	for _, f := range flags {
		if f.value == "O" {
			return f.tier
		}
	}
	if s.CurrentTier != "" {
		return s.CurrentTier
	}
	return Tier1
}

// IsEnrolled treats anything but an explicit "X" as enrolled.
func (s StudentStatus) IsEnrolled() bool {
	return s.Enrolled != "X"
}

// TierStatusList is the upstream tier status payload.
type TierStatusList struct {
	Students      []StudentStatus `json:"students"`
	EnrolledCount int             `json:"enrolled_count"`
	TotalCount    int             `json:"total_count"`
}

// TierUpdateRequest toggles tier columns for a student. Nil columns are left alone.
type TierUpdateRequest struct {
	Code      string  `json:"code" validate:"required"`
	Tier1     *string `json:"tier1,omitempty" validate:"omitempty,oneof=O X"`
	Tier2CICO *string `json:"tier2_cico,omitempty" validate:"omitempty,oneof=O X"`
	Tier2SST  *string `json:"tier2_sst,omitempty" validate:"omitempty,oneof=O X"`
	Tier3     *string `json:"tier3,omitempty" validate:"omitempty,oneof=O X"`
	Tier3Plus *string `json:"tier3_plus,omitempty" validate:"omitempty,oneof=O X"`
	Memo      string  `json:"memo"`
}

// EnrollmentUpdateRequest flips a student's enrollment flag.
type EnrollmentUpdateRequest struct {
	Code     string `json:"code" validate:"required"`
	Enrolled string `json:"enrolled" validate:"required,oneof=O X"`
}

// BeAbleUpdateRequest links a student to their BeAble code.
type BeAbleUpdateRequest struct {
	Code       string `json:"code" validate:"required"`
	BeAbleCode string `json:"beable_code" validate:"max=64"`
}

// StudentTierChange is the body of POST /students/tier-update.
type StudentTierChange struct {
	StudentCode string `json:"student_code" validate:"required"`
	Tier        string `json:"tier" validate:"required,oneof='Tier 1' 'Tier2(CICO)' 'Tier2(SST)' 'Tier 3' 'Tier3+'"`
	Memo        string `json:"memo"`
}

// StudentProfile summarises a student on the detail page.
type StudentProfile struct {
	StudentCode    string  `json:"student_code"`
	Name           string  `json:"name"`
	Class          string  `json:"class"`
	Tier           string  `json:"tier"`
	TotalIncidents int     `json:"total_incidents"`
	AvgIntensity   float64 `json:"avg_intensity"`
}

// ABCPoint is one antecedent-behavior-consequence observation.
type ABCPoint struct {
	X        string  `json:"x"`
	Y        string  `json:"y"`
	Z        float64 `json:"z"`
	Function string  `json:"function"`
}

// StudentDetail is the upstream per-student aggregate.
type StudentDetail struct {
	Profile   StudentProfile `json:"profile"`
	ABCData   []ABCPoint     `json:"abc_data"`
	Functions []NamedValue   `json:"functions"`
	CICOTrend []TrendPoint   `json:"cico_trend"`
}

// StudentAnalysis is computed upstream and passed through untouched.
type StudentAnalysis map[string]interface{}
