package converter

import (
	"facility-booking/internal/domain/reservation"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/pgconv"
)

func ReservationToInfra(res *reservation.Reservation) sqlc.CreateReservationParams {
	slot := res.TimeSlot()
	return sqlc.CreateReservationParams{
		ID:           res.ID(),
		ResourceID:   res.ResourceID(),
		UserID:       res.UserID(),
		StartAt:      pgconv.TimeToPgtype(slot.Start()),
		EndAt:        pgconv.TimeToPgtype(slot.End()),
		Status:       res.Status().String(),
		Reason:       pgconv.OptionalText(res.Reason()),
		RecurrenceID: pgconv.UUIDPtrToPgtype(res.RecurrenceID()),
		CreatedAt:    pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationStatusToInfra(res *reservation.Reservation) sqlc.UpdateReservationStatusParams {
	return sqlc.UpdateReservationStatusParams{
		Status:    res.Status().String(),
		Reason:    pgconv.OptionalText(res.Reason()),
		UpdatedAt: pgconv.TimeToPgtype(res.UpdatedAt()),
		ID:        res.ID(),
	}
}

func ReservationToDomain(row sqlc.Reservations) (*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(row.StartAt.Time, row.EndAt.Time)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s", row.ID)
	}
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s", row.ID)
	}
	return reservation.ReconstructReservation(
		row.ID,
		row.ResourceID,
		row.UserID,
		slot,
		status,
		pgconv.StringFromPgtype(row.Reason),
		pgconv.UUIDPtrFromPgtype(row.RecurrenceID),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func ReservationsToDomain(rows []sqlc.Reservations) ([]*reservation.Reservation, error) {
	out := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := ReservationToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func StatusesToInfra(statuses []reservation.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}
