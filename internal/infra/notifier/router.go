// Package notifier holds one shared.Sender per alert channel and a Router
// that resolves the recipient and picks the right one.
package notifier

import (
	"context"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"
)

var ErrNoSender = errs.New("no sender configured for channel")

type Router struct {
	directory shared.ContactDirectory
	senders   map[alert.Channel]shared.Sender
}

func NewRouter(directory shared.ContactDirectory, senders map[alert.Channel]shared.Sender) *Router {
	return &Router{directory: directory, senders: senders}
}

func (r *Router) Send(ctx context.Context, msg shared.Message) error {
	sender, ok := r.senders[msg.Channel]
	if !ok {
		return errs.Wrapf(ErrNoSender, "channel %s", msg.Channel)
	}

	addr, err := r.directory.Resolve(ctx, msg.Recipient, msg.Channel)
	if err != nil {
		return errs.Wrapf(err, "failed to resolve recipient for alert %s", msg.AlertID)
	}
	msg.Recipient = addr

	return sender.Send(ctx, msg)
}

var _ shared.Sender = (*Router)(nil)
