package converter

import (
	"facility-booking/internal/domain/alert"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/pgconv"
)

func AlertToInfra(a *alert.Alert) sqlc.CreateAlertParams {
	return sqlc.CreateAlertParams{
		ID:            a.ID(),
		ReservationID: a.ReservationID(),
		Type:          a.Type().String(),
		Channel:       a.Channel().String(),
		Recipient:     a.Recipient(),
		ScheduledAt:   pgconv.TimeToPgtype(a.ScheduledAt()),
		State:         a.State().String(),
		AttemptCount:  int32(a.AttemptCount()), // #nosec G115 -- bounded by max attempts
		FailureReason: pgconv.OptionalText(a.FailureReason()),
		SentAt:        pgconv.TimePtrToPgtype(a.SentAt()),
		CreatedAt:     pgconv.TimeToPgtype(a.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(a.UpdatedAt()),
	}
}

func AlertStateToInfra(a *alert.Alert) sqlc.UpdateAlertParams {
	return sqlc.UpdateAlertParams{
		State:         a.State().String(),
		AttemptCount:  int32(a.AttemptCount()), // #nosec G115 -- bounded by max attempts
		FailureReason: pgconv.OptionalText(a.FailureReason()),
		SentAt:        pgconv.TimePtrToPgtype(a.SentAt()),
		ClaimedUntil:  pgconv.TimePtrToPgtype(a.ClaimedUntil()),
		UpdatedAt:     pgconv.TimeToPgtype(a.UpdatedAt()),
		ID:            a.ID(),
	}
}

func AlertToDomain(row sqlc.Alerts) (*alert.Alert, error) {
	t, err := alert.ParseType(row.Type)
	if err != nil {
		return nil, errs.Wrapf(err, "alert %s", row.ID)
	}
	ch, err := alert.ParseChannel(row.Channel)
	if err != nil {
		return nil, errs.Wrapf(err, "alert %s", row.ID)
	}
	state, err := alert.ParseState(row.State)
	if err != nil {
		return nil, errs.Wrapf(err, "alert %s", row.ID)
	}
	return alert.ReconstructAlert(
		row.ID,
		row.ReservationID,
		t,
		ch,
		row.Recipient,
		pgconv.TimeFromPgtype(row.ScheduledAt),
		state,
		int(row.AttemptCount),
		pgconv.StringFromPgtype(row.FailureReason),
		pgconv.TimePtrFromPgtype(row.SentAt),
		pgconv.TimePtrFromPgtype(row.ClaimedUntil),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func AlertsToDomain(rows []sqlc.Alerts) ([]*alert.Alert, error) {
	out := make([]*alert.Alert, 0, len(rows))
	for _, row := range rows {
		a, err := AlertToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
