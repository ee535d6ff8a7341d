package alerting

import (
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"
)

var ErrCycleInProgress = errs.New("dispatch cycle already in progress")

func markNotFound(err error, msg string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Wrap(err, msg), errs.ErrNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
