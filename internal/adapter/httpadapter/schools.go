package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/college-tracker/internal/domain"
	"github.com/couchcryptid/college-tracker/internal/search"
)

type schoolHandler struct {
	schools SchoolSearcher
	logger  *slog.Logger
}

// handleSearch serves GET /api/schools. Query parameters: q, states, type,
// minSize, maxSize, page, perPage. Comma lists ignore empty elements.
func (h *schoolHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.schools.Search(r.Context(), req)
	if err != nil {
		h.logger.Error("school search failed", "error", err, "query", req.Query)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleGet serves GET /api/schools/{id}.
func (h *schoolHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	college, ok, err := h.schools.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("school lookup failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "college not found")
		return
	}

	writeJSON(w, http.StatusOK, college)
}

func parseSearchRequest(q url.Values) (search.Request, error) {
	req := search.Request{Query: strings.TrimSpace(q.Get("q"))}

	for _, code := range splitList(q.Get("states")) {
		code = strings.ToUpper(code)
		if !domain.IsStateCode(code) {
			return search.Request{}, fmt.Errorf("unknown state code %q", code)
		}
		req.States = append(req.States, code)
	}

	for _, v := range splitList(q.Get("type")) {
		st, ok := domain.ParseSchoolType(v)
		if !ok {
			return search.Request{}, fmt.Errorf("unknown school type %q: must be Public or Private", v)
		}
		req.SchoolTypes = append(req.SchoolTypes, st)
	}

	var err error
	if req.MinEnrollment, err = optionalInt(q, "minSize"); err != nil {
		return search.Request{}, err
	}
	if req.MaxEnrollment, err = optionalInt(q, "maxSize"); err != nil {
		return search.Request{}, err
	}
	if req.Page, err = intOrDefault(q, "page", 0); err != nil {
		return search.Request{}, err
	}
	if req.PerPage, err = intOrDefault(q, "perPage", 20); err != nil {
		return search.Request{}, err
	}
	if req.PerPage < 1 || req.PerPage > 100 {
		return search.Request{}, errors.New("perPage must be between 1 and 100")
	}

	return req, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func optionalInt(q url.Values, key string) (*int, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return &n, nil
}

func intOrDefault(q url.Values, key string, def int) (int, error) {
	n, err := optionalInt(q, key)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return def, nil
	}
	return *n, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}
