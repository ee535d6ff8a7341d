package user

import (
	"github.com/google/uuid"
)

// Contact holds the delivery addresses of a user. Alerts addressed to a user
// ID are resolved through it.
type Contact struct {
	userID       uuid.UUID
	email        *Email
	phone        *Phone
	pushEndpoint string
}

func NewContact(userID uuid.UUID, email, phone, pushEndpoint string) (*Contact, error) {
	c := &Contact{userID: userID, pushEndpoint: pushEndpoint}
	if email != "" {
		e, err := NewEmail(email)
		if err != nil {
			return nil, err
		}
		c.email = &e
	}
	if phone != "" {
		p, err := NewPhone(phone)
		if err != nil {
			return nil, err
		}
		c.phone = &p
	}
	return c, nil
}

func (c *Contact) UserID() uuid.UUID    { return c.userID }
func (c *Contact) Email() *Email        { return c.email }
func (c *Contact) Phone() *Phone        { return c.phone }
func (c *Contact) PushEndpoint() string { return c.pushEndpoint }
