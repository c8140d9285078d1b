package repo

import "context"

// ParametersQuerier defines the queries used by ParametersRepo.
type ParametersQuerier interface {
	ListParametersByLab(ctx context.Context, arg ListByLabParams) ([]ParameterRow, error)
}

// ParametersRepo ensures lab scoping is applied to parameter queries.
type ParametersRepo struct {
	Q ParametersQuerier
}

// ByIDs returns the lab's parameters among ids. Unknown ids are silently absent.
func (r ParametersRepo) ByIDs(ctx context.Context, ids []int64) ([]ParameterRow, error) {
	labID, err := labIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return r.Q.ListParametersByLab(ctx, ListByLabParams{LabID: labID, IDs: ids})
}
