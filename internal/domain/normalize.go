package domain

import "encoding/json"

const (
	// MinEnrollment is the smallest student body a record may report to be
	// admitted. Smaller values are mostly placeholders or closed campuses.
	MinEnrollment = 100

	// StrongProgramThreshold is the share of degrees a field must exceed to
	// count as a strong program.
	StrongProgramThreshold = 0.10

	unknownRegion = "Unknown"
)

var regionNames = map[int]string{
	1: "New England",
	2: "Mid East",
	3: "Great Lakes",
	4: "Plains",
	5: "Southeast",
	6: "Southwest",
	7: "Rocky Mountains",
	8: "Far West",
	9: "Outlying Areas",
}

// NormalizeSchool maps a raw Scorecard record into a NormalizedCollege.
// It returns false when the record has no name or fewer than MinEnrollment
// students. Classification fields default instead of rejecting.
func NormalizeSchool(raw RawSchoolRecord) (NormalizedCollege, bool) {
	if raw.StudentSize == nil || *raw.StudentSize < MinEnrollment {
		return NormalizedCollege{}, false
	}
	if raw.Name == nil || *raw.Name == "" {
		return NormalizedCollege{}, false
	}

	return NormalizedCollege{
		ScorecardID:  raw.ID,
		Name:         *raw.Name,
		City:         stringOrEmpty(raw.City),
		State:        stringOrEmpty(raw.State),
		Region:       RegionName(raw.RegionID),
		WebsiteURL:   nonEmpty(raw.SchoolURL),
		LocationType: ClassifyLocale(raw.Locale),
		SchoolType:   ClassifyOwnership(raw.Ownership),

		EnrollmentSize:      int(*raw.StudentSize),
		AcceptanceRate:      copyFloat(raw.AdmissionRate),
		AvgSAT:              copyFloat(raw.SATAverage),
		AvgACT:              copyFloat(raw.ACTMidpoint),
		EstimatedCost:       copyFloat(raw.AvgNetPrice),
		InStateTuition:      copyFloat(raw.TuitionInState),
		OutOfStateTuition:   copyFloat(raw.TuitionOutOfState),
		StrongPrograms:      strongPrograms(raw),
		GraduationRate:      copyFloat(raw.CompletionRate),
		MedianEarnings:      copyFloat(raw.MedianEarnings10Yr),
		StudentFacultyRatio: copyFloat(raw.StudentFacultyRatio),
	}, true
}

// NormalizeAll normalizes every record in order and drops rejected ones.
func NormalizeAll(raws []RawSchoolRecord) []NormalizedCollege {
	out := make([]NormalizedCollege, 0, len(raws))
	for _, raw := range raws {
		if college, ok := NormalizeSchool(raw); ok {
			out = append(out, college)
		}
	}
	return out
}

// DecodeRecords unmarshals each result entry on its own. Entries whose
// fields have the wrong JSON type are counted as malformed and skipped.
func DecodeRecords(entries []json.RawMessage) (records []RawSchoolRecord, malformed int) {
	records = make([]RawSchoolRecord, 0, len(entries))
	for _, entry := range entries {
		var raw RawSchoolRecord
		if err := json.Unmarshal(entry, &raw); err != nil {
			malformed++
			continue
		}
		records = append(records, raw)
	}
	return records, malformed
}

// ClassifyLocale buckets an IPEDS locale code. Codes outside the four
// bucket ranges, and nil, fall back to Suburban.
func ClassifyLocale(locale *int) LocationType {
	if locale == nil {
		return LocationSuburban
	}
	switch code := *locale; {
	case code >= 11 && code <= 13:
		return LocationUrban
	case code >= 21 && code <= 23:
		return LocationSuburban
	case code >= 31 && code <= 33:
		return LocationTown
	case code >= 41 && code <= 43:
		return LocationRural
	default:
		return LocationSuburban
	}
}

// ClassifyOwnership maps an ownership code to a SchoolType. Anything other
// than 1, 2 or 3 is treated as Private.
func ClassifyOwnership(ownership *int) SchoolType {
	if ownership == nil {
		return SchoolPrivate
	}
	switch *ownership {
	case 1:
		return SchoolPublic
	case 3:
		return SchoolPrivateForProfit
	default:
		return SchoolPrivate
	}
}

// OwnershipCode is the inverse of ClassifyOwnership for filterable types.
// PrivateForProfit cannot be requested as a filter.
func OwnershipCode(t SchoolType) (int, bool) {
	switch t {
	case SchoolPublic:
		return 1, true
	case SchoolPrivate:
		return 2, true
	default:
		return 0, false
	}
}

// RegionName resolves a BEA region code.
func RegionName(regionID *int) string {
	if regionID == nil {
		return unknownRegion
	}
	if name, ok := regionNames[*regionID]; ok {
		return name
	}
	return unknownRegion
}

// strongPrograms checks each program share against the threshold in a fixed
// order, so the result never contains duplicates.
func strongPrograms(raw RawSchoolRecord) []Program {
	candidates := []struct {
		share   *float64
		program Program
	}{
		{raw.ProgramComputer, ProgramComputerScience},
		{raw.ProgramEngineering, ProgramEngineering},
		{raw.ProgramBusiness, ProgramBusiness},
		{raw.ProgramHealth, ProgramHealthSciences},
		{raw.ProgramBiological, ProgramBiology},
	}

	programs := make([]Program, 0, len(candidates))
	for _, c := range candidates {
		if c.share != nil && *c.share > StrongProgramThreshold {
			programs = append(programs, c.program)
		}
	}
	return programs
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

// copyFloat detaches the output from the raw record so callers can't mutate
// one through the other.
func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
