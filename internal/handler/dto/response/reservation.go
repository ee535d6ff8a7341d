package response

import (
	"log/slog"
	"time"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID           uuid.UUID  `json:"id"`
	ResourceID   uuid.UUID  `json:"resource_id"`
	UserID       uuid.UUID  `json:"user_id"`
	Status       string     `json:"status"`
	Reason       string     `json:"reason,omitempty"`
	RecurrenceID *uuid.UUID `json:"recurrence_id,omitempty"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FromReservation copies the accessor values of r; the slot is flattened
// by hand.
func FromReservation(r *reservation.Reservation) *ReservationResponse {
	resp := &ReservationResponse{}
	if err := copier.Copy(resp, r); err != nil {
		slog.Error("failed to copy reservation", "reservation_id", r.ID(), "error", err)
	}
	resp.StartTime = r.TimeSlot().Start()
	resp.EndTime = r.TimeSlot().End()
	return resp
}

func FromReservations(rs []*reservation.Reservation) []*ReservationResponse {
	out := make([]*ReservationResponse, len(rs))
	for i, r := range rs {
		out[i] = FromReservation(r)
	}
	return out
}

type ApprovalResponse struct {
	Reservation  *ReservationResponse   `json:"reservation"`
	AutoRejected []*ReservationResponse `json:"auto_rejected"`
}

func FromApproval(res *commands.ApprovalResult) *ApprovalResponse {
	return &ApprovalResponse{
		Reservation:  FromReservation(res.Reservation),
		AutoRejected: FromReservations(res.AutoRejected),
	}
}

type AvailabilityResponse struct {
	Available bool                   `json:"available"`
	Conflicts []*ReservationResponse `json:"conflicts"`
}

func FromAvailability(a *queries.Availability) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available: a.Available,
		Conflicts: FromReservations(a.Conflicts),
	}
}

type AlertResponse struct {
	ID            uuid.UUID  `json:"id"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	Type          string     `json:"type"`
	Channel       string     `json:"channel"`
	Recipient     string     `json:"recipient"`
	ScheduledAt   time.Time  `json:"scheduled_at"`
	State         string     `json:"state"`
	AttemptCount  int        `json:"attempt_count"`
	FailureReason string     `json:"failure_reason,omitempty"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromAlerts(as []*alert.Alert) []*AlertResponse {
	out := make([]*AlertResponse, len(as))
	for i, a := range as {
		resp := &AlertResponse{}
		if err := copier.Copy(resp, a); err != nil {
			slog.Error("failed to copy alert", "alert_id", a.ID(), "error", err)
		}
		out[i] = resp
	}
	return out
}

type CancelAlertsResponse struct {
	Cancelled int `json:"cancelled"`
}
