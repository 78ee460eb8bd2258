package scorecard

import (
	"strings"
	"testing"

	"github.com/couchcryptid/college-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestRequestedFields(t *testing.T) {
	fields := strings.Split(requestedFields, ",")
	assert.Len(t, fields, 25)
	assert.Equal(t, "id", fields[0])
	assert.Contains(t, fields, "latest.student.size")
	assert.Contains(t, fields, "latest.academics.program_percentage.biological")
}

func TestNameParams(t *testing.T) {
	p := nameParams(testKey, "Duke", 5)

	assert.Equal(t, testKey, p.Get("api_key"))
	assert.Equal(t, requestedFields, p.Get("fields"))
	assert.Equal(t, "Duke", p.Get("school.name"))
	assert.Equal(t, "5", p.Get("per_page"))
	assert.Equal(t, "0", p.Get("page"))
	assert.Equal(t, "14..23", p.Get("school.carnegie_basic__range"))
}

func TestNameParams_DefaultLimit(t *testing.T) {
	assert.Equal(t, "20", nameParams(testKey, "Duke", 0).Get("per_page"))
	assert.Equal(t, "20", nameParams(testKey, "Duke", -3).Get("per_page"))
}

func TestFilterParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := filterParams(testKey, domain.SearchFilters{}, 20)

		assert.Equal(t, "20", p.Get("per_page"))
		assert.Equal(t, "0", p.Get("page"))
		assert.Equal(t, "14..23", p.Get("school.carnegie_basic__range"))
		for _, key := range []string{"school.name", "school.state", "latest.student.size__range", "school.ownership", "id"} {
			assert.False(t, p.Has(key), key)
		}
	})

	t.Run("configured default page size", func(t *testing.T) {
		p := filterParams(testKey, domain.SearchFilters{}, 50)
		assert.Equal(t, "50", p.Get("per_page"))
	})

	t.Run("states and public together", func(t *testing.T) {
		p := filterParams(testKey, domain.SearchFilters{
			States:      []string{"NC", "SC"},
			SchoolTypes: []domain.SchoolType{domain.SchoolPublic},
		}, 20)

		assert.Equal(t, "NC,SC", p.Get("school.state"))
		assert.Equal(t, "1", p.Get("school.ownership"))
		assert.Equal(t, "14..23", p.Get("school.carnegie_basic__range"))
	})

	t.Run("all filters", func(t *testing.T) {
		p := filterParams(testKey, domain.SearchFilters{
			Query:         "State University",
			States:        []string{"CA"},
			MinEnrollment: intPtr(5000),
			MaxEnrollment: intPtr(30000),
			SchoolTypes:   []domain.SchoolType{domain.SchoolPublic, domain.SchoolPrivate},
			Page:          3,
			PerPage:       10,
		}, 20)

		assert.Equal(t, "State University", p.Get("school.name"))
		assert.Equal(t, "CA", p.Get("school.state"))
		assert.Equal(t, "5000..30000", p.Get("latest.student.size__range"))
		assert.Equal(t, "1,2", p.Get("school.ownership"))
		assert.Equal(t, "3", p.Get("page"))
		assert.Equal(t, "10", p.Get("per_page"))
	})

	t.Run("negative page clamps to zero", func(t *testing.T) {
		p := filterParams(testKey, domain.SearchFilters{Page: -1}, 20)
		assert.Equal(t, "0", p.Get("page"))
	})
}

func TestFilterParams_EnrollmentRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max *int
		expected string
	}{
		{"min only", intPtr(1000), nil, "1000..100000"},
		{"max only", nil, intPtr(2000), "0..2000"},
		{"both", intPtr(100), intPtr(500), "100..500"},
		{"zero max is open", intPtr(100), intPtr(0), "100..100000"},
		{"explicit zero min", intPtr(0), nil, "0..100000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filterParams(testKey, domain.SearchFilters{MinEnrollment: tt.min, MaxEnrollment: tt.max}, 20)
			assert.Equal(t, tt.expected, p.Get("latest.student.size__range"))
		})
	}
}

func TestOwnershipCodes(t *testing.T) {
	assert.Equal(t, []string{"2", "1"}, ownershipCodes([]domain.SchoolType{domain.SchoolPrivate, domain.SchoolPublic}))
	assert.Equal(t, []string{"1"}, ownershipCodes([]domain.SchoolType{domain.SchoolPublic, domain.SchoolPublic}))
	assert.Empty(t, ownershipCodes([]domain.SchoolType{domain.SchoolPrivateForProfit}))
	assert.Empty(t, ownershipCodes(nil))

	p := filterParams(testKey, domain.SearchFilters{SchoolTypes: []domain.SchoolType{domain.SchoolPrivateForProfit}}, 20)
	assert.False(t, p.Has("school.ownership"))
}

func TestIDParams(t *testing.T) {
	p := idParams(testKey, 198419)
	assert.Equal(t, "198419", p.Get("id"))
	assert.Equal(t, testKey, p.Get("api_key"))
	assert.Equal(t, requestedFields, p.Get("fields"))
	assert.False(t, p.Has("school.carnegie_basic__range"))
}
