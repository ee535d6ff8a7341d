package response

import (
	"time"

	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type RecurrenceResponse struct {
	ID             uuid.UUID `json:"id"`
	ResourceID     uuid.UUID `json:"resource_id"`
	UserID         uuid.UUID `json:"user_id"`
	Pattern        string    `json:"pattern"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Weekdays       []int     `json:"weekdays,omitempty"`
	DayOfMonth     int       `json:"day_of_month,omitempty"`
	Interval       int       `json:"interval"`
	MaxOccurrences int       `json:"max_occurrences"`
	GeneratedCount int       `json:"generated_count"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromRecurrence(c *recurrence.Config) *RecurrenceResponse {
	rule := c.Rule()
	weekdays := make([]int, len(rule.Weekdays))
	for i, d := range rule.Weekdays {
		weekdays[i] = int(d)
	}
	return &RecurrenceResponse{
		ID:             c.ID(),
		ResourceID:     c.ResourceID(),
		UserID:         c.UserID(),
		Pattern:        string(rule.Pattern),
		StartDate:      rule.StartDate.String(),
		EndDate:        rule.EndDate.String(),
		StartTime:      c.StartTime().String(),
		EndTime:        c.EndTime().String(),
		Weekdays:       weekdays,
		DayOfMonth:     rule.DayOfMonth,
		Interval:       rule.Interval,
		MaxOccurrences: rule.MaxOccurrences,
		GeneratedCount: c.GeneratedCount(),
		Active:         c.Active(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

type PreviewItemResponse struct {
	Date         string    `json:"date"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	WillConflict bool      `json:"will_conflict"`
}

func FromPreview(items []commands.PreviewItem) []*PreviewItemResponse {
	out := make([]*PreviewItemResponse, len(items))
	for i, it := range items {
		out[i] = &PreviewItemResponse{
			Date:         it.Date.String(),
			StartTime:    it.Start,
			EndTime:      it.End,
			WillConflict: it.WillConflict,
		}
	}
	return out
}

type SkippedResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type GenerationResponse struct {
	RecurrenceID uuid.UUID              `json:"recurrence_id"`
	Created      []*ReservationResponse `json:"created"`
	Skipped      []*SkippedResponse     `json:"skipped"`
	Deactivated  bool                   `json:"deactivated"`
}

func FromGeneration(g *commands.GenerationResult) *GenerationResponse {
	skipped := make([]*SkippedResponse, len(g.Skipped))
	for i, s := range g.Skipped {
		skipped[i] = &SkippedResponse{Date: s.Date.String(), Reason: s.Reason}
	}
	return &GenerationResponse{
		RecurrenceID: g.ConfigID,
		Created:      FromReservations(g.Created),
		Skipped:      skipped,
		Deactivated:  g.Deactivated,
	}
}

type CreateRecurrenceResponse struct {
	Recurrence *RecurrenceResponse `json:"recurrence"`
	Generation *GenerationResponse `json:"generation"`
}

func FromCreateRecurrence(r *commands.CreateRecurrenceResult) *CreateRecurrenceResponse {
	return &CreateRecurrenceResponse{
		Recurrence: FromRecurrence(r.Config),
		Generation: FromGeneration(&r.GenerationResult),
	}
}

type DeleteRecurrenceResponse struct {
	Cancelled int `json:"cancelled"`
}
