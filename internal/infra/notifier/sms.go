package notifier

import (
	"context"

	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type SMSSender struct {
	api  MessageCreator
	from string
}

func NewSMSSender(cfg config.TwilioConfig) *SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return NewSMSSenderWithAPI(client.Api, cfg.From)
}

func NewSMSSenderWithAPI(api MessageCreator, from string) *SMSSender {
	return &SMSSender{api: api, from: from}
}

// Send runs the blocking Twilio call in a goroutine so ctx cancellation
// returns promptly. The request itself is not aborted.
func (s *SMSSender) Send(ctx context.Context, msg shared.Message) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(msg.Recipient)
	params.SetFrom(s.from)
	params.SetBody(msg.Subject + "\n" + msg.Body)

	done := make(chan error, 1)
	go func() {
		_, err := s.api.CreateMessage(params)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return errs.Wrap(err, "twilio rejected message")
		}
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "sms send interrupted")
	}
}
