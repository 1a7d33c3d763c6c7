package engine

import (
	"context"
	"slices"

	"github.com/zjrosen/weft/internal/weave"
)

// CheckResult is the outcome of one fixture check.
type CheckResult struct {
	Index int
	Query weave.Region
	Back  bool
	Want  []weave.Region
	Got   []weave.Region
}

// Pass reports whether the check's regions came out exactly as expected.
func (r CheckResult) Pass() bool {
	return slices.Equal(r.Want, r.Got)
}

// RunChecks runs every check embedded in the fixture, in fixture order.
func (s *Session) RunChecks(ctx context.Context) ([]CheckResult, error) {
	fix := s.Fixture()

	results := make([]CheckResult, 0, len(fix.Checks))
	for i, check := range fix.Checks {
		var (
			got []weave.Region
			err error
		)
		if check.Back {
			got, err = s.MapBack(ctx, check.Query)
		} else {
			got, err = s.Map(ctx, check.Query)
		}
		if err != nil {
			return nil, err
		}

		results = append(results, CheckResult{
			Index: i,
			Query: check.Query,
			Back:  check.Back,
			Want:  check.Want,
			Got:   got,
		})
	}

	return results, nil
}
