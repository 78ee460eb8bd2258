package scorecard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/college-tracker/internal/domain"
	"github.com/couchcryptid/college-tracker/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey           = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

// upstream is a mock Scorecard API that records every request it receives.
type upstream struct {
	srv     *httptest.Server
	calls   atomic.Int64
	mu      sync.Mutex
	queries []url.Values
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		u.mu.Lock()
		u.queries = append(u.queries, r.URL.Query())
		u.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) lastQuery(t *testing.T) url.Values {
	t.Helper()
	u.mu.Lock()
	defer u.mu.Unlock()
	require.NotEmpty(t, u.queries)
	return u.queries[len(u.queries)-1]
}

func respondJSON(t *testing.T, total int, records ...map[string]any) http.HandlerFunc {
	if records == nil {
		records = []map[string]any{}
	}
	body := map[string]any{
		"metadata": map[string]any{"total": total, "page": 0, "per_page": 20},
		"results":  records,
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		assert.NoError(t, json.NewEncoder(w).Encode(body))
	}
}

func record(id int, name string, size any) map[string]any {
	return map[string]any{
		"id":                    id,
		"school.name":           name,
		"school.city":           "Durham",
		"school.state":          "NC",
		"school.region_id":      5,
		"school.locale":         12,
		"school.ownership":      2,
		"school.carnegie_basic": 15,
		"latest.student.size":   size,
	}
}

func testClient(baseURL string, key string) (*Client, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	c := NewClient(5*time.Second, metrics, slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithBaseURL(baseURL),
		WithKeySource(func() string { return key }),
		WithClock(clockwork.NewFakeClock()),
	)
	return c, metrics
}

func TestClient_SearchByName(t *testing.T) {
	records := make([]map[string]any, 5)
	for i := range records {
		records[i] = record(1000+i, fmt.Sprintf("Duke Campus %d", i), 6000+i)
	}
	up := newUpstream(t, respondJSON(t, 5, records...))
	c, metrics := testClient(up.srv.URL, testKey)

	colleges, err := c.SearchByName(context.Background(), "Duke", 5)
	require.NoError(t, err)
	require.Len(t, colleges, 5)
	assert.Equal(t, "Duke Campus 0", colleges[0].Name)
	assert.Equal(t, 6004, colleges[4].EnrollmentSize)

	q := up.lastQuery(t)
	assert.Equal(t, testKey, q.Get("api_key"))
	assert.Equal(t, "Duke", q.Get("school.name"))
	assert.Equal(t, "5", q.Get("per_page"))
	assert.Equal(t, "0", q.Get("page"))
	assert.Equal(t, "14..23", q.Get("school.carnegie_basic__range"))
	assert.Equal(t, requestedFields, q.Get("fields"))

	assert.Equal(t, int64(1), up.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ScorecardRequests.WithLabelValues(opSearchByName, "success")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.ScorecardDuration))
}

func TestClient_SearchByName_DropsRejectedWithoutRefill(t *testing.T) {
	up := newUpstream(t, respondJSON(t, 3,
		record(1, "Big College", 5000),
		record(2, "Tiny College", 40),
		map[string]any{"id": 3, "latest.student.size": 900},
	))
	c, metrics := testClient(up.srv.URL, testKey)

	colleges, err := c.SearchByName(context.Background(), "College", 3)
	require.NoError(t, err)
	require.Len(t, colleges, 1)
	assert.Equal(t, 1, colleges[0].ScorecardID)
	assert.Equal(t, int64(1), up.calls.Load(), "rejected records are not refilled with extra requests")
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RecordsRejected))
}

func TestClient_SearchByName_UpstreamError(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"API_KEY_INVALID"}}`))
	})
	c, metrics := testClient(up.srv.URL, testKey)

	_, err := c.SearchByName(context.Background(), "Duke", 5)
	require.Error(t, err)

	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusForbidden, upErr.StatusCode)
	assert.Contains(t, upErr.Body, "API_KEY_INVALID")
	assert.Equal(t, "API error: 403", err.Error())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ScorecardRequests.WithLabelValues(opSearchByName, "upstream_error")))
}

func TestClient_SearchColleges(t *testing.T) {
	up := newUpstream(t, respondJSON(t, 1, record(243744, "Stanford University", 7841)))
	c, _ := testClient(up.srv.URL, testKey)

	result, err := c.SearchColleges(context.Background(), domain.SearchFilters{Query: "Stanford"})
	require.NoError(t, err)
	require.Len(t, result.Colleges, 1)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "Stanford University", result.Colleges[0].Name)

	q := up.lastQuery(t)
	assert.Equal(t, "Stanford", q.Get("school.name"))
	assert.Equal(t, "20", q.Get("per_page"))
	assert.Equal(t, "0", q.Get("page"))
	assert.False(t, q.Has("school.state"))
	assert.False(t, q.Has("school.ownership"))
}

func TestClient_SearchColleges_ConjunctiveFilters(t *testing.T) {
	up := newUpstream(t, respondJSON(t, 0))
	c, _ := testClient(up.srv.URL, testKey)

	_, err := c.SearchColleges(context.Background(), domain.SearchFilters{
		States:      []string{"NC", "SC"},
		SchoolTypes: []domain.SchoolType{domain.SchoolPublic},
	})
	require.NoError(t, err)

	q := up.lastQuery(t)
	assert.Equal(t, "NC,SC", q.Get("school.state"))
	assert.Equal(t, "1", q.Get("school.ownership"))
	assert.Equal(t, "14..23", q.Get("school.carnegie_basic__range"))
}

func TestClient_SearchColleges_TotalIsUpstreamCount(t *testing.T) {
	up := newUpstream(t, respondJSON(t, 412,
		record(1, "Kept", 2000),
		record(2, "Dropped", 12),
	))
	c, _ := testClient(up.srv.URL, testKey)

	result, err := c.SearchColleges(context.Background(), domain.SearchFilters{States: []string{"TX"}})
	require.NoError(t, err)
	assert.Len(t, result.Colleges, 1)
	assert.Equal(t, 412, result.Total)
}

func TestClient_SearchColleges_DefaultPerPageOption(t *testing.T) {
	up := newUpstream(t, respondJSON(t, 0))
	c, _ := testClient(up.srv.URL, testKey)
	WithDefaultPerPage(40)(c)

	_, err := c.SearchColleges(context.Background(), domain.SearchFilters{})
	require.NoError(t, err)
	assert.Equal(t, "40", up.lastQuery(t).Get("per_page"))
}

func TestClient_SearchColleges_UpstreamError(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c, _ := testClient(up.srv.URL, testKey)

	_, err := c.SearchColleges(context.Background(), domain.SearchFilters{Query: "x"})
	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	assert.Equal(t, int64(1), up.calls.Load(), "no retry")
}

func TestClient_SearchColleges_MalformedBody(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"metadata":`))
	})
	c, _ := testClient(up.srv.URL, testKey)

	_, err := c.SearchColleges(context.Background(), domain.SearchFilters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_SearchColleges_MalformedRecordIsRejected(t *testing.T) {
	tests := []struct {
		name string
		bad  string
	}{
		{"string locale", `{"id":2,"school.name":"Bad U","latest.student.size":5000,"school.locale":"12"}`},
		{"fractional region", `{"id":2,"school.name":"Bad U","latest.student.size":5000,"school.region_id":5.5}`},
		{"numeric name", `{"id":2,"school.name":42,"latest.student.size":5000}`},
		{"not an object", `"oops"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set(headerContentType, contentTypeJSON)
				_, _ = w.Write([]byte(`{"metadata":{"total":2,"page":0,"per_page":20},"results":[` +
					`{"id":1,"school.name":"Good U","latest.student.size":5000},` + tt.bad + `]}`))
			})
			c, metrics := testClient(up.srv.URL, testKey)

			result, err := c.SearchColleges(context.Background(), domain.SearchFilters{Query: "U"})
			require.NoError(t, err)
			require.Len(t, result.Colleges, 1)
			assert.Equal(t, "Good U", result.Colleges[0].Name)
			assert.Equal(t, 2, result.Total)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RecordsRejected))

			colleges, err := c.SearchByName(context.Background(), "U", 2)
			require.NoError(t, err)
			assert.Len(t, colleges, 1)
		})
	}
}

func TestClient_GetCollegeByID(t *testing.T) {
	up := newUpstream(t, respondJSON(t, 1, record(198419, "Duke University", 6640)))
	c, metrics := testClient(up.srv.URL, testKey)

	college, ok, err := c.GetCollegeByID(context.Background(), 198419)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 198419, college.ScorecardID)
	assert.Equal(t, "Duke University", college.Name)
	assert.Equal(t, "198419", up.lastQuery(t).Get("id"))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ScorecardRequests.WithLabelValues(opGetByID, "success")))
}

func TestClient_GetCollegeByID_Absent(t *testing.T) {
	tests := []struct {
		name    string
		handler func(t *testing.T) http.HandlerFunc
	}{
		{"zero results", func(t *testing.T) http.HandlerFunc { return respondJSON(t, 0) }},
		{"upstream failure", func(_ *testing.T) http.HandlerFunc {
			return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) }
		}},
		{"not found status", func(_ *testing.T) http.HandlerFunc {
			return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) }
		}},
		{"rejected record", func(t *testing.T) http.HandlerFunc { return respondJSON(t, 1, record(5, "Tiny", 10)) }},
		{"malformed record", func(_ *testing.T) http.HandlerFunc {
			return func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"metadata":{"total":1},"results":[{"id":5,"school.name":"X","latest.student.size":"lots"}]}`))
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newUpstream(t, tt.handler(t))
			c, _ := testClient(up.srv.URL, testKey)

			college, ok, err := c.GetCollegeByID(context.Background(), 5)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, domain.NormalizedCollege{}, college)
		})
	}
}

func TestClient_GetCollegeByID_TransportErrorIsError(t *testing.T) {
	up := newUpstream(t, respondJSON(t, 0))
	c, _ := testClient(up.srv.URL, testKey)
	up.srv.Close()

	_, ok, err := c.GetCollegeByID(context.Background(), 5)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestClient_MissingCredentialFailsBeforeNetwork(t *testing.T) {
	for _, key := range []string{"", domain.PlaceholderAPIKey} {
		t.Run(fmt.Sprintf("key=%q", key), func(t *testing.T) {
			up := newUpstream(t, respondJSON(t, 0))
			c, metrics := testClient(up.srv.URL, key)
			ctx := context.Background()

			_, err := c.SearchByName(ctx, "Duke", 5)
			assertConfigError(t, err)

			_, err = c.SearchColleges(ctx, domain.SearchFilters{Query: "Duke"})
			assertConfigError(t, err)

			_, ok, err := c.GetCollegeByID(ctx, 198419)
			assertConfigError(t, err)
			assert.False(t, ok)

			assert.Equal(t, int64(0), up.calls.Load())
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ScorecardRequests.WithLabelValues(opGetByID, "config_error")))
			assert.Error(t, c.CheckReadiness(ctx))
		})
	}
}

func TestClient_KeyReadPerOperation(t *testing.T) {
	up := newUpstream(t, respondJSON(t, 0))
	c, _ := testClient(up.srv.URL, "")

	var keyCalls atomic.Int64
	key := ""
	WithKeySource(func() string {
		keyCalls.Add(1)
		return key
	})(c)

	_, err := c.SearchByName(context.Background(), "Duke", 1)
	assertConfigError(t, err)

	key = "rotated-key"
	_, err = c.SearchByName(context.Background(), "Duke", 1)
	require.NoError(t, err)
	assert.Equal(t, "rotated-key", up.lastQuery(t).Get("api_key"))
	assert.Equal(t, int64(2), keyCalls.Load())
	assert.NoError(t, c.CheckReadiness(context.Background()))
}

func TestClient_ContextCancelled(t *testing.T) {
	up := newUpstream(t, respondJSON(t, 0))
	c, _ := testClient(up.srv.URL, testKey)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchByName(ctx, "Duke", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Timeout(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	c, _ := testClient(up.srv.URL, testKey)
	WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond})(c)

	_, err := c.SearchColleges(context.Background(), domain.SearchFilters{})
	require.Error(t, err)
}

func TestClient_ConcurrentSearches(t *testing.T) {
	up := newUpstream(t, respondJSON(t, 1, record(1, "Parallel U", 3000)))
	c, _ := testClient(up.srv.URL, testKey)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			colleges, err := c.SearchByName(context.Background(), "Parallel", 1)
			if err == nil && len(colleges) != 1 {
				err = fmt.Errorf("got %d colleges", len(colleges))
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(10), up.calls.Load())
}

func assertConfigError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}
