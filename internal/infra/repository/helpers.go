package repository

import (
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/pkg/pgconv"
)

// wrapLookupErr maps a missing row to NOT_FOUND and everything else through the usual classifier.
func wrapLookupErr(entity string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(entity+" not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to load "+entity, err)
}

func expectOneRow(entity string, n int64) error {
	if n == 0 {
		return infra.WrapRepoErr(entity+" not found", nil, infra.KindNotFound)
	}
	return nil
}
