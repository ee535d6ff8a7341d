package notifier

import (
	"context"

	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// PushSender publishes to SNS platform endpoints. The recipient is the
// endpoint ARN.
type PushSender struct {
	client SNSPublisher
}

func NewPushSender(ctx context.Context, cfg config.PushConfig) (*PushSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, errs.Wrap(err, "failed to load aws config")
	}
	return NewPushSenderWithClient(sns.NewFromConfig(awsCfg)), nil
}

func NewPushSenderWithClient(client SNSPublisher) *PushSender {
	return &PushSender{client: client}
}

func (s *PushSender) Send(ctx context.Context, msg shared.Message) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TargetArn: aws.String(msg.Recipient),
		Message:   aws.String(msg.Subject + "\n" + msg.Body),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"alert_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.Type.String()),
			},
			"reservation_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.ReservationID.String()),
			},
		},
	})
	if err != nil {
		return errs.Wrap(err, "sns publish failed")
	}
	return nil
}
