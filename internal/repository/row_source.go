package repository

import (
	"context"
	"marketmap/internal/domain"
)

// RowSource produces the raw rows for one dataset. Implementations fetch
// from wherever (local csv, quote feeds, http listings) but all speak the
// same contract: a full, fresh row set per call, or a
// domain.ErrDataSourceFailure-wrapped error when the dataset is entirely
// unavailable. Per-row garbage is not this layer's problem - it flows
// through and the aggregation stage skips it.
type RowSource interface {
	Load(ctx context.Context) ([]domain.Row, error)
}
