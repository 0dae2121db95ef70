package domain

import "errors"

// ErrDataSourceFailure marks whole-dataset load failures. Per-row junk is
// absorbed during aggregation; only this escalates to the caller, and when
// it does, no partial snapshot is produced.
var ErrDataSourceFailure = errors.New("data source failure")
