// Package domain models U.S. Department of Education College Scorecard data.
//
// # Data Source
//
// Institution records come from the College Scorecard API at
// https://api.data.gov/ed/collegescorecard/v1/schools. The API returns flat
// JSON objects keyed by dotted field paths ("school.name",
// "latest.student.size"). Only the fields listed in the request's "fields"
// parameter are present; any of them may be null.
//
// # Scorecard Conventions
//
// Locale (school.locale), IPEDS urban-centric codes:
//
//	11-13  City (large, midsize, small)      ->  Urban
//	21-23  Suburb (large, midsize, small)    ->  Suburban
//	31-33  Town (fringe, distant, remote)    ->  Town
//	41-43  Rural (fringe, distant, remote)   ->  Rural
//	anything else, including null            ->  Suburban
//
// Ownership (school.ownership):
//
//	1 Public | 2 Private nonprofit | 3 Private for-profit
//	anything else, including null -> Private
//
// Region (school.region_id): BEA regions 1-9, see [RegionName]. Unknown
// codes map to "Unknown".
//
// Carnegie basic classification (school.carnegie_basic): codes 14..23 cover
// baccalaureate through doctoral institutions. Every query is restricted to
// that range so only four-year institutions are returned.
//
// Program percentages (latest.academics.program_percentage.*) are fractions
// of degrees awarded in a field of study, 0.0-1.0. A field counts as a strong
// program when its share is strictly greater than 0.10.
//
// # Admission
//
// A record is normalized only when it carries a name and an enrollment of at
// least 100 students. Records failing either check are dropped; they are
// mostly closed campuses and placeholder entries. Classification fields never
// cause rejection: they fall back to a default instead.
package domain
