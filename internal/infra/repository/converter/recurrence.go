package converter

import (
	"time"

	"facility-booking/internal/domain/recurrence"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func RecurrenceToInfra(cfg *recurrence.Config) sqlc.CreateRecurrenceConfigParams {
	rule := cfg.Rule()
	weekdays := make([]int16, len(rule.Weekdays))
	for i, wd := range rule.Weekdays {
		weekdays[i] = int16(wd)
	}
	var dayOfMonth *int
	if rule.Pattern == recurrence.PatternMonthly {
		dayOfMonth = &rule.DayOfMonth
	}

	return sqlc.CreateRecurrenceConfigParams{
		ID:             cfg.ID(),
		ResourceID:     cfg.ResourceID(),
		UserID:         cfg.UserID(),
		Pattern:        rule.Pattern.String(),
		StartDate:      DateToInfra(rule.StartDate),
		EndDate:        DateToInfra(rule.EndDate),
		StartTime:      pgconv.MinutesToPgtime(cfg.StartTime().Minutes()),
		EndTime:        pgconv.MinutesToPgtime(cfg.EndTime().Minutes()),
		Weekdays:       weekdays,
		DayOfMonth:     pgconv.Int2PtrToPgtype(dayOfMonth),
		IntervalCount:  int32(rule.Interval),        // #nosec G115 -- bounded by validation
		MaxOccurrences: int32(rule.MaxOccurrences),  // #nosec G115 -- bounded by validation
		GeneratedCount: int32(cfg.GeneratedCount()), // #nosec G115 -- bounded by MaxOccurrences
		Active:         cfg.Active(),
		CreatedAt:      pgconv.TimeToPgtype(cfg.CreatedAt()),
		UpdatedAt:      pgconv.TimeToPgtype(cfg.UpdatedAt()),
	}
}

func RecurrenceStateToInfra(cfg *recurrence.Config) sqlc.UpdateRecurrenceConfigParams {
	return sqlc.UpdateRecurrenceConfigParams{
		Active:         cfg.Active(),
		GeneratedCount: int32(cfg.GeneratedCount()), // #nosec G115 -- bounded by MaxOccurrences
		UpdatedAt:      pgconv.TimeToPgtype(cfg.UpdatedAt()),
		ID:             cfg.ID(),
	}
}

func RecurrenceToDomain(row sqlc.RecurrenceConfigs) (*recurrence.Config, error) {
	pattern, err := recurrence.ParsePattern(row.Pattern)
	if err != nil {
		return nil, errs.Wrapf(err, "recurrence %s", row.ID)
	}
	weekdays := make([]time.Weekday, len(row.Weekdays))
	for i, wd := range row.Weekdays {
		weekdays[i] = time.Weekday(wd)
	}
	dayOfMonth := 0
	if p := pgconv.IntPtrFromInt2(row.DayOfMonth); p != nil {
		dayOfMonth = *p
	}

	rule := recurrence.Rule{
		Pattern:        pattern,
		StartDate:      DateToDomain(row.StartDate),
		EndDate:        DateToDomain(row.EndDate),
		Weekdays:       weekdays,
		DayOfMonth:     dayOfMonth,
		Interval:       int(row.IntervalCount),
		MaxOccurrences: int(row.MaxOccurrences),
	}
	return recurrence.ReconstructConfig(
		row.ID,
		row.ResourceID,
		row.UserID,
		rule,
		recurrence.TimeOfDayFromMinutes(pgconv.MinutesFromPgtime(row.StartTime)),
		recurrence.TimeOfDayFromMinutes(pgconv.MinutesFromPgtime(row.EndTime)),
		row.Active,
		int(row.GeneratedCount),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func OccurrenceToInfra(occ recurrence.Occurrence) sqlc.InsertRecurrenceOccurrenceParams {
	return sqlc.InsertRecurrenceOccurrenceParams{
		ConfigID:       occ.ConfigID,
		OccurrenceDate: DateToInfra(occ.Date),
		ReservationID:  pgconv.UUIDPtrToPgtype(occ.ReservationID),
		SkipReason:     pgconv.OptionalText(occ.SkipReason),
		CreatedAt:      pgconv.TimeToPgtype(occ.CreatedAt),
	}
}

func OccurrenceToDomain(row sqlc.RecurrenceOccurrences) recurrence.Occurrence {
	return recurrence.Occurrence{
		ConfigID:      row.ConfigID,
		Date:          DateToDomain(row.OccurrenceDate),
		ReservationID: pgconv.UUIDPtrFromPgtype(row.ReservationID),
		SkipReason:    pgconv.StringFromPgtype(row.SkipReason),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func DateToInfra(d recurrence.Date) pgtype.Date {
	return pgconv.DateToPgtype(d.Year, d.Month, d.Day)
}

func DateToDomain(pd pgtype.Date) recurrence.Date {
	return recurrence.NewDate(pgconv.DateFromPgtype(pd))
}
