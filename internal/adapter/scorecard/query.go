package scorecard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/college-tracker/internal/domain"
)

const (
	// fourYearCarnegieRange restricts results to baccalaureate through
	// doctoral Carnegie classifications.
	fourYearCarnegieRange = "14..23"

	defaultPerPage       = 20
	defaultMaxEnrollment = 100000
)

// requestedFields is the fixed allow-list sent as the "fields" parameter.
// RawSchoolRecord has one field per entry.
var requestedFields = strings.Join([]string{
	"id",
	"school.name",
	"school.city",
	"school.state",
	"school.zip",
	"school.school_url",
	"school.region_id",
	"school.locale",
	"school.ownership",
	"school.carnegie_basic",
	"latest.student.size",
	"latest.admissions.admission_rate.overall",
	"latest.admissions.sat_scores.average.overall",
	"latest.admissions.act_scores.midpoint.cumulative",
	"latest.cost.avg_net_price.overall",
	"latest.cost.tuition.in_state",
	"latest.cost.tuition.out_of_state",
	"latest.student.demographics.student_faculty_ratio",
	"latest.completion.rate_suppressed.overall",
	"latest.earnings.10_yrs_after_entry.median",
	"latest.academics.program_percentage.computer",
	"latest.academics.program_percentage.engineering",
	"latest.academics.program_percentage.business_marketing",
	"latest.academics.program_percentage.health",
	"latest.academics.program_percentage.biological",
}, ",")

func baseParams(apiKey string) url.Values {
	return url.Values{
		"api_key": {apiKey},
		"fields":  {requestedFields},
	}
}

func nameParams(apiKey, name string, limit int) url.Values {
	if limit <= 0 {
		limit = defaultPerPage
	}
	params := baseParams(apiKey)
	params.Set("school.name", name)
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("page", "0")
	params.Set("school.carnegie_basic__range", fourYearCarnegieRange)
	return params
}

// filterParams translates SearchFilters into Scorecard query parameters.
// Every filter is an additional conjunctive constraint.
func filterParams(apiKey string, f domain.SearchFilters, defaultSize int) url.Values {
	perPage := f.PerPage
	if perPage <= 0 {
		perPage = defaultSize
	}
	page := max(f.Page, 0)

	params := baseParams(apiKey)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	params.Set("school.carnegie_basic__range", fourYearCarnegieRange)

	if f.Query != "" {
		params.Set("school.name", f.Query)
	}

	if len(f.States) > 0 {
		params.Set("school.state", strings.Join(f.States, ","))
	}

	if f.MinEnrollment != nil || f.MaxEnrollment != nil {
		lo, hi := 0, defaultMaxEnrollment
		if f.MinEnrollment != nil {
			lo = *f.MinEnrollment
		}
		// A zero maximum means "no upper bound", not "empty range".
		if f.MaxEnrollment != nil && *f.MaxEnrollment > 0 {
			hi = *f.MaxEnrollment
		}
		params.Set("latest.student.size__range", fmt.Sprintf("%d..%d", lo, hi))
	}

	if codes := ownershipCodes(f.SchoolTypes); len(codes) > 0 {
		params.Set("school.ownership", strings.Join(codes, ","))
	}

	return params
}

func idParams(apiKey string, id int) url.Values {
	params := baseParams(apiKey)
	params.Set("id", strconv.Itoa(id))
	return params
}

// ownershipCodes maps filterable school types to codes, skipping types that
// cannot be filtered on and duplicates.
func ownershipCodes(types []domain.SchoolType) []string {
	codes := make([]string, 0, len(types))
	seen := make(map[int]bool, len(types))
	for _, t := range types {
		code, ok := domain.OwnershipCode(t)
		if !ok || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, strconv.Itoa(code))
	}
	return codes
}
