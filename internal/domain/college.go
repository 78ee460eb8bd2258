package domain

import "encoding/json"

// RawSchoolRecord is one entry of the Scorecard "results" array. Each field
// maps to a requested dotted path; pointer fields are null in the source.
type RawSchoolRecord struct {
	ID            int      `json:"id"`
	Name          *string  `json:"school.name"`
	City          *string  `json:"school.city"`
	State         *string  `json:"school.state"`
	Zip           *string  `json:"school.zip"`
	SchoolURL     *string  `json:"school.school_url"`
	RegionID      *int     `json:"school.region_id"`
	Locale        *int     `json:"school.locale"`
	Ownership     *int     `json:"school.ownership"`
	CarnegieBasic *int     `json:"school.carnegie_basic"`
	StudentSize   *float64 `json:"latest.student.size"`

	AdmissionRate       *float64 `json:"latest.admissions.admission_rate.overall"`
	SATAverage          *float64 `json:"latest.admissions.sat_scores.average.overall"`
	ACTMidpoint         *float64 `json:"latest.admissions.act_scores.midpoint.cumulative"`
	AvgNetPrice         *float64 `json:"latest.cost.avg_net_price.overall"`
	TuitionInState      *float64 `json:"latest.cost.tuition.in_state"`
	TuitionOutOfState   *float64 `json:"latest.cost.tuition.out_of_state"`
	StudentFacultyRatio *float64 `json:"latest.student.demographics.student_faculty_ratio"`
	CompletionRate      *float64 `json:"latest.completion.rate_suppressed.overall"`
	MedianEarnings10Yr  *float64 `json:"latest.earnings.10_yrs_after_entry.median"`

	ProgramComputer    *float64 `json:"latest.academics.program_percentage.computer"`
	ProgramEngineering *float64 `json:"latest.academics.program_percentage.engineering"`
	ProgramBusiness    *float64 `json:"latest.academics.program_percentage.business_marketing"`
	ProgramHealth      *float64 `json:"latest.academics.program_percentage.health"`
	ProgramBiological  *float64 `json:"latest.academics.program_percentage.biological"`
}

// ResponseMetadata is the paging block of a Scorecard response.
type ResponseMetadata struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// ScorecardResponse is the top-level Scorecard API response. Results stay
// undecoded so one malformed entry cannot fail the whole response.
type ScorecardResponse struct {
	Metadata ResponseMetadata  `json:"metadata"`
	Results  []json.RawMessage `json:"results"`
}

// LocationType classifies the campus setting.
type LocationType string

const (
	LocationUrban    LocationType = "Urban"
	LocationSuburban LocationType = "Suburban"
	LocationTown     LocationType = "Town"
	LocationRural    LocationType = "Rural"
)

// SchoolType classifies institutional control.
type SchoolType string

const (
	SchoolPublic           SchoolType = "Public"
	SchoolPrivate          SchoolType = "Private"
	SchoolPrivateForProfit SchoolType = "Private For-Profit"
)

// ParseSchoolType accepts the filterable school types, "Public" and "Private".
func ParseSchoolType(s string) (SchoolType, bool) {
	switch SchoolType(s) {
	case SchoolPublic, SchoolPrivate:
		return SchoolType(s), true
	default:
		return "", false
	}
}

// Program is a field-of-study category reported as a strong program.
type Program string

const (
	ProgramComputerScience Program = "Computer Science"
	ProgramEngineering     Program = "Engineering"
	ProgramBusiness        Program = "Business"
	ProgramHealthSciences  Program = "Health Sciences"
	ProgramBiology         Program = "Biology"
)

// NormalizedCollege is the application representation of a Scorecard record.
// Optional statistics stay nil when the source reports null.
type NormalizedCollege struct {
	ScorecardID  int          `json:"scorecardId"`
	Name         string       `json:"name"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	Region       string       `json:"region"`
	WebsiteURL   *string      `json:"websiteUrl"`
	LocationType LocationType `json:"locationType"`
	SchoolType   SchoolType   `json:"schoolType"`

	EnrollmentSize      int       `json:"enrollmentSize"`
	AcceptanceRate      *float64  `json:"acceptanceRate"`
	AvgSAT              *float64  `json:"avgSAT"`
	AvgACT              *float64  `json:"avgACT"`
	EstimatedCost       *float64  `json:"estimatedCost"`
	InStateTuition      *float64  `json:"inStateTuition"`
	OutOfStateTuition   *float64  `json:"outOfStateTuition"`
	StrongPrograms      []Program `json:"strongPrograms"`
	GraduationRate      *float64  `json:"graduationRate"`
	MedianEarnings      *float64  `json:"medianEarnings"`
	StudentFacultyRatio *float64  `json:"studentFacultyRatio"`
}

// SearchFilters configures a filtered Scorecard search. Zero values mean
// "not set"; enrollment bounds are pointers so 0 can be given explicitly.
type SearchFilters struct {
	Query         string
	States        []string
	MinEnrollment *int
	MaxEnrollment *int
	SchoolTypes   []SchoolType
	Page          int
	PerPage       int
}

// SearchResult pairs admitted colleges with the upstream match count.
// Total counts matches before admission filtering, so it may exceed
// len(Colleges).
type SearchResult struct {
	Colleges []NormalizedCollege
	Total    int
}
