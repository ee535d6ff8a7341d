package notifier

import (
	"context"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/user"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNoAddress = errs.New("recipient has no address for channel")

type ContactFinder interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*user.Contact, error)
}

// Directory resolves user ids through stored contacts. Anything that is not
// a uuid is treated as a literal address and returned as is.
type Directory struct {
	contacts ContactFinder
}

func NewDirectory(contacts ContactFinder) *Directory {
	return &Directory{contacts: contacts}
}

func (d *Directory) Resolve(ctx context.Context, recipient string, ch alert.Channel) (string, error) {
	userID, err := uuid.Parse(recipient)
	if err != nil {
		return recipient, nil
	}
	if ch == alert.ChannelSocket {
		return SocketTopic(userID), nil
	}

	contact, err := d.contacts.FindByUserID(ctx, userID)
	if err != nil {
		return "", errs.Wrapf(err, "failed to load contact of user %s", userID)
	}

	var addr string
	switch ch {
	case alert.ChannelEmail:
		if e := contact.Email(); e != nil {
			addr = e.Value()
		}
	case alert.ChannelSMS:
		if p := contact.Phone(); p != nil {
			addr = p.Value()
		}
	case alert.ChannelPush:
		addr = contact.PushEndpoint()
	}
	if addr == "" {
		return "", errs.Wrapf(ErrNoAddress, "user %s on %s", userID, ch)
	}
	return addr, nil
}

func SocketTopic(userID uuid.UUID) string {
	return "user:" + userID.String()
}

var _ shared.ContactDirectory = (*Directory)(nil)
