package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/college-tracker/internal/domain"
	"github.com/couchcryptid/college-tracker/internal/search"
	"github.com/spf13/cobra"
)

var searchFlags struct {
	states  []string
	types   []string
	minSize int
	maxSize int
	page    int
	perPage int
}

func init() {
	f := searchCmd.Flags()
	f.StringSliceVar(&searchFlags.states, "state", nil, "two-letter state code, repeatable or comma separated")
	f.StringSliceVar(&searchFlags.types, "type", nil, "school type: Public or Private")
	f.IntVar(&searchFlags.minSize, "min-size", -1, "minimum enrollment")
	f.IntVar(&searchFlags.maxSize, "max-size", -1, "maximum enrollment")
	f.IntVar(&searchFlags.page, "page", 0, "zero-based result page")
	f.IntVar(&searchFlags.perPage, "per-page", 20, "results per page")

	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Search four-year colleges by name and filters.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildSearchRequest(args)
		if err != nil {
			return err
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		resp, err := svc.Search(cmd.Context(), req)
		if err != nil {
			if errors.Is(err, domain.ErrMissingAPIKey) {
				return fmt.Errorf("%w\nAdd it to .env.local as COLLEGE_SCORECARD_API_KEY=<key>", err)
			}
			return err
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), resp)
		}
		renderColleges(cmd.OutOrStdout(), resp.Colleges)
		fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d of %d matches\n", resp.Page, len(resp.Colleges), resp.Total)
		return nil
	},
}

func buildSearchRequest(args []string) (search.Request, error) {
	req := search.Request{
		Page:    searchFlags.page,
		PerPage: searchFlags.perPage,
	}
	if len(args) == 1 {
		req.Query = strings.TrimSpace(args[0])
	}

	for _, s := range searchFlags.states {
		code := strings.ToUpper(strings.TrimSpace(s))
		if !domain.IsStateCode(code) {
			return search.Request{}, fmt.Errorf("unknown state code %q", s)
		}
		req.States = append(req.States, code)
	}

	for _, v := range searchFlags.types {
		st, ok := domain.ParseSchoolType(strings.TrimSpace(v))
		if !ok {
			return search.Request{}, fmt.Errorf("unknown school type %q: must be Public or Private", v)
		}
		req.SchoolTypes = append(req.SchoolTypes, st)
	}

	if searchFlags.minSize >= 0 {
		n := searchFlags.minSize
		req.MinEnrollment = &n
	}
	if searchFlags.maxSize >= 0 {
		n := searchFlags.maxSize
		req.MaxEnrollment = &n
	}

	if req.Query == "" && len(req.States) == 0 && len(req.SchoolTypes) == 0 &&
		req.MinEnrollment == nil && req.MaxEnrollment == nil {
		return search.Request{}, errors.New("give a name or at least one filter")
	}
	if req.PerPage < 1 || req.PerPage > 100 {
		return search.Request{}, errors.New("--per-page must be between 1 and 100")
	}
	return req, nil
}
