package repo

import "context"

// TestsQuerier defines the queries used by TestsRepo.
type TestsQuerier interface {
	ListTestsByLab(ctx context.Context, arg ListByLabParams) ([]TestRow, error)
}

// TestsRepo ensures lab scoping is applied to test bundle queries.
type TestsRepo struct {
	Q TestsQuerier
}

// ByIDs returns the lab's test bundles among ids.
func (r TestsRepo) ByIDs(ctx context.Context, ids []int64) ([]TestRow, error) {
	labID, err := labIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return r.Q.ListTestsByLab(ctx, ListByLabParams{LabID: labID, IDs: ids})
}
