package components

import (
	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/infra/notifier"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/usecase"
	"facility-booking/internal/usecase/alerting"
	"facility-booking/internal/usecase/authz"
	"facility-booking/internal/usecase/calendarsync"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"
	"facility-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

const eventHandlers = `group:"event_handlers"`

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseEventsModule,
	usecaseCommandsModule,
	usecaseAlertingModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewDurationPolicy,
	NewRecurrenceSettings,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// Every lifecycle transition is handed to the members of the event_handlers
// group inside its own transaction.
var usecaseEventsModule = fx.Module("usecase/events",
	fx.Provide(
		NewScheduler,
		calendarsync.NewRecorder,
		fx.Annotate(
			func(s *alerting.Scheduler) shared.EventHandler { return s },
			fx.ResultTags(eventHandlers),
		),
		fx.Annotate(
			func(r *calendarsync.Recorder) shared.EventHandler { return r },
			fx.ResultTags(eventHandlers),
		),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		fx.Annotate(
			commands.NewBookingService,
			fx.ParamTags(``, ``, ``, eventHandlers),
		),
		fx.Annotate(
			commands.NewRecurrenceService,
			fx.ParamTags(``, ``, ``, ``, eventHandlers),
		),
		NewBookingCommands,
		NewRecurrenceCommands,
	),
)

var usecaseAlertingModule = fx.Module("usecase/alerting",
	fx.Provide(
		NewAlertCommands,
		NewSender,
		NewDispatcher,
		NewRelay,
	),
)

func NewDurationPolicy(cfg config.Config) reservation.DurationPolicy {
	return reservation.DurationPolicy{
		Min: cfg.Booking.MinDuration,
		Max: cfg.Booking.MaxDuration,
	}
}

func NewRecurrenceSettings(cfg config.Config) (commands.RecurrenceSettings, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return commands.RecurrenceSettings{}, err
	}
	return commands.RecurrenceSettings{
		Location:    loc,
		Horizon:     cfg.Recurrence.GenerationHorizon,
		Concurrency: cfg.Recurrence.Concurrency,
	}, nil
}

func NewScheduler(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) (*alerting.Scheduler, error) {
	channels, err := alert.ParseChannels(cfg.Alert.Channels)
	if err != nil {
		return nil, err
	}
	reminders, err := alert.ParseReminders(cfg.Alert.Reminders)
	if err != nil {
		return nil, err
	}
	return alerting.NewScheduler(uow, clk, alerting.SchedulerConfig{
		Channels:       channels,
		Reminders:      reminders,
		AdminRecipient: cfg.Alert.AdminRecipient,
	}), nil
}

// The HTTP surface sees the guarded commands; workers and the CLI use the
// services directly.

func NewBookingCommands(svc *commands.BookingService, q queries.BookingQueries) commands.BookingCommands {
	return authz.NewBookingGuard(svc, q)
}

func NewRecurrenceCommands(svc *commands.RecurrenceService, q queries.BookingQueries) commands.RecurrenceCommands {
	return authz.NewRecurrenceGuard(svc, q)
}

func NewAlertCommands(s *alerting.Scheduler) alerting.AlertCommands {
	return authz.NewAlertGuard(s)
}

func NewSender(senders map[alert.Channel]shared.Sender, directory shared.ContactDirectory) shared.Sender {
	return notifier.NewRouter(directory, senders)
}

func NewDispatcher(uow shared.UnitOfWork, sender shared.Sender, clk clock.Clock, cfg config.Config) (*alerting.Dispatcher, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return nil, err
	}
	return alerting.NewDispatcher(uow, sender, clk, alerting.DispatchConfig{
		MaxAttempts: cfg.Alert.MaxAttempts,
		SendTimeout: cfg.Alert.SendTimeout,
		BatchSize:   cfg.Alert.BatchSize,
		Concurrency: cfg.Alert.Concurrency,
		Location:    loc,
	}), nil
}

func NewRelay(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock, cfg config.Config) *calendarsync.Relay {
	return calendarsync.NewRelay(uow, publisher, clk, cfg.AMQP.BatchSize)
}
