package components

import (
	"facility-booking/internal/handler"
	"facility-booking/internal/handler/api"
	"facility-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		api.NewRecurrenceHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	reservation *api.ReservationHandler,
	availability *api.AvailabilityHandler,
	recurrence *api.RecurrenceHandler,
) handler.Handlers {
	return handler.Handlers{
		Reservation:  reservation,
		Availability: availability,
		Recurrence:   recurrence,
	}
}
