//go:build unit

package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/user"
	"facility-booking/internal/infra/notifier"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"
	sharedmock "facility-booking/tests/mock/shared"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/mock/gomock"
)

type recordingSender struct {
	got []shared.Message
	err error
}

func (s *recordingSender) Send(_ context.Context, msg shared.Message) error {
	s.got = append(s.got, msg)
	return s.err
}

type stubContacts map[uuid.UUID]*user.Contact

func (c stubContacts) FindByUserID(_ context.Context, id uuid.UUID) (*user.Contact, error) {
	contact, ok := c[id]
	if !ok {
		return nil, errors.New("contact not found")
	}
	return contact, nil
}

func newMessage(ch alert.Channel, recipient string) shared.Message {
	return shared.Message{
		AlertID:       uuid.New(),
		ReservationID: uuid.New(),
		Type:          alert.TypeApproved,
		Channel:       ch,
		Recipient:     recipient,
		Subject:       alert.TypeApproved.Describe(),
		Body:          "Reservation approved.",
	}
}

func TestRouter_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("routes by channel with resolved address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		directory := sharedmock.NewMockContactDirectory(ctrl)
		email := &recordingSender{}
		sms := &recordingSender{}
		router := notifier.NewRouter(directory,
			map[alert.Channel]shared.Sender{alert.ChannelEmail: email, alert.ChannelSMS: sms})

		directory.EXPECT().Resolve(gomock.Any(), "u1", alert.ChannelEmail).Return("u1@example.com", nil)

		err := router.Send(ctx, newMessage(alert.ChannelEmail, "u1"))

		require.NoError(t, err)
		require.Len(t, email.got, 1)
		assert.Equal(t, "u1@example.com", email.got[0].Recipient)
		assert.Empty(t, sms.got)
	})

	t.Run("unknown channel fails without resolving or sending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		email := &recordingSender{}
		router := notifier.NewRouter(sharedmock.NewMockContactDirectory(ctrl),
			map[alert.Channel]shared.Sender{alert.ChannelEmail: email})

		err := router.Send(ctx, newMessage(alert.ChannelPush, "u1"))

		assert.True(t, errs.Is(err, notifier.ErrNoSender))
		assert.Empty(t, email.got)
	})

	t.Run("resolution failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		directory := sharedmock.NewMockContactDirectory(ctrl)
		email := &recordingSender{}
		router := notifier.NewRouter(directory, map[alert.Channel]shared.Sender{alert.ChannelEmail: email})

		directory.EXPECT().Resolve(gomock.Any(), "missing", alert.ChannelEmail).Return("", errors.New("unknown recipient"))

		err := router.Send(ctx, newMessage(alert.ChannelEmail, "missing"))

		require.Error(t, err)
		assert.Empty(t, email.got)
	})

	t.Run("transport error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		directory := sharedmock.NewMockContactDirectory(ctrl)
		email := &recordingSender{err: errors.New("421 try later")}
		router := notifier.NewRouter(directory, map[alert.Channel]shared.Sender{alert.ChannelEmail: email})

		directory.EXPECT().Resolve(gomock.Any(), "u1", alert.ChannelEmail).Return("a@example.com", nil)

		err := router.Send(ctx, newMessage(alert.ChannelEmail, "u1"))

		assert.EqualError(t, err, "421 try later")
	})
}

func TestDirectory_Resolve(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	bare := uuid.New()

	full, err := user.NewContact(userID, "taro@example.com", "+819012345678", "arn:aws:sns:ap-northeast-1:1:endpoint/APNS/app/x")
	require.NoError(t, err)
	empty, err := user.NewContact(bare, "", "", "")
	require.NoError(t, err)

	dir := notifier.NewDirectory(stubContacts{userID: full, bare: empty})

	tests := []struct {
		name      string
		recipient string
		channel   alert.Channel
		want      string
		wantErr   error
	}{
		{name: "email of user", recipient: userID.String(), channel: alert.ChannelEmail, want: "taro@example.com"},
		{name: "phone of user", recipient: userID.String(), channel: alert.ChannelSMS, want: "+819012345678"},
		{name: "push endpoint of user", recipient: userID.String(), channel: alert.ChannelPush, want: "arn:aws:sns:ap-northeast-1:1:endpoint/APNS/app/x"},
		{name: "socket topic without lookup", recipient: bare.String(), channel: alert.ChannelSocket, want: "user:" + bare.String()},
		{name: "literal address passes through", recipient: "admin@example.com", channel: alert.ChannelEmail, want: "admin@example.com"},
		{name: "missing address", recipient: bare.String(), channel: alert.ChannelEmail, wantErr: notifier.ErrNoAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dir.Resolve(ctx, tt.recipient, tt.channel)

			if tt.wantErr != nil {
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown user", func(t *testing.T) {
		_, err := dir.Resolve(ctx, uuid.NewString(), alert.ChannelEmail)
		assert.Error(t, err)
	})
}

type blockingCreator struct {
	release chan struct{}
	params  *twilioApi.CreateMessageParams
	err     error
}

func (c *blockingCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	if c.release != nil {
		<-c.release
	}
	c.params = params
	return &twilioApi.ApiV2010Message{}, c.err
}

func TestSMSSender_Send(t *testing.T) {
	t.Run("sends with configured sender number", func(t *testing.T) {
		api := &blockingCreator{}
		s := notifier.NewSMSSenderWithAPI(api, "+15005550006")

		err := s.Send(context.Background(), newMessage(alert.ChannelSMS, "+819012345678"))

		require.NoError(t, err)
		require.NotNil(t, api.params)
		assert.Equal(t, "+819012345678", *api.params.To)
		assert.Equal(t, "+15005550006", *api.params.From)
		assert.Contains(t, *api.params.Body, "Reservation approved.")
	})

	t.Run("api error is wrapped", func(t *testing.T) {
		s := notifier.NewSMSSenderWithAPI(&blockingCreator{err: errors.New("21211 invalid number")}, "+15005550006")

		err := s.Send(context.Background(), newMessage(alert.ChannelSMS, "+81"))

		assert.ErrorContains(t, err, "21211 invalid number")
	})

	t.Run("returns when context is cancelled", func(t *testing.T) {
		api := &blockingCreator{release: make(chan struct{})}
		defer close(api.release)
		s := notifier.NewSMSSenderWithAPI(api, "+15005550006")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.Send(ctx, newMessage(alert.ChannelSMS, "+819012345678"))

		assert.ErrorIs(t, err, context.Canceled)
	})
}

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = in
	return &sns.PublishOutput{}, f.err
}

func TestPushSender_Send(t *testing.T) {
	client := &fakeSNS{}
	s := notifier.NewPushSenderWithClient(client)
	msg := newMessage(alert.ChannelPush, "arn:aws:sns:ap-northeast-1:1:endpoint/GCM/app/y")

	require.NoError(t, s.Send(context.Background(), msg))

	require.NotNil(t, client.input)
	assert.Equal(t, msg.Recipient, *client.input.TargetArn)
	assert.Equal(t, msg.ReservationID.String(), *client.input.MessageAttributes["reservation_id"].StringValue)

	client.err = errors.New("EndpointDisabled")
	assert.ErrorContains(t, s.Send(context.Background(), msg), "EndpointDisabled")
}

type fakeRedis struct {
	channel string
	payload []byte
	err     error
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	return redis.NewIntResult(0, f.err)
}

func TestSocketSender_Send(t *testing.T) {
	rdb := &fakeRedis{}
	s := notifier.NewSocketSender(rdb)
	msg := newMessage(alert.ChannelSocket, "user:abc")

	require.NoError(t, s.Send(context.Background(), msg))

	assert.Equal(t, "user:abc", rdb.channel)
	var frame map[string]string
	require.NoError(t, json.Unmarshal(rdb.payload, &frame))
	assert.Equal(t, msg.AlertID.String(), frame["alertId"])
	assert.Equal(t, "APPROVED", frame["type"])

	rdb.err = errors.New("connection refused")
	assert.ErrorContains(t, s.Send(context.Background(), msg), "connection refused")
}
