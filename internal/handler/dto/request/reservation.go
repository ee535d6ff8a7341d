package request

import (
	"time"

	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
}

func (r CreateReservationRequest) ToInput(userID uuid.UUID) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		ResourceID: r.ResourceID,
		UserID:     userID,
		Start:      r.StartTime,
		End:        r.EndTime,
	}
}

// TransitionRequest carries the optional reason of a reject or cancel.
type TransitionRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type IntervalQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
