// internal/workers/notification/send-notification/handler.go
package sendnotification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"credit-pipeline/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"
)

const TaskType = "send-notification"

// Interfaces over the AWS clients so tests can mock delivery.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	h := &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
	if !config.Enabled {
		return h, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	h.sesClient = ses.NewFromConfig(awsCfg)
	h.snsClient = sns.NewFromConfig(awsCfg)
	return h, nil
}

// Execute delivers one notification. Callers treat failures as
// non-fatal: delivery problems are reported in the output status and
// logged, never allowed to roll back an analysis.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	sentAt := time.Now().UTC().Format(time.RFC3339)
	notificationID := uuid.New().String()

	if !h.config.Enabled {
		h.logger.Debug("notifications disabled", map[string]interface{}{
			"event": input.Event,
		})
		return &Output{NotificationID: notificationID, Status: StatusDisabled, SentAt: sentAt}, nil
	}

	var err error
	switch input.Channel {
	case ChannelEmail:
		err = h.sendEmail(ctx, input)
	default:
		err = h.publish(ctx, input)
	}

	if err != nil {
		h.logger.Error("notification delivery failed", map[string]interface{}{
			"event":   input.Event,
			"channel": input.Channel,
			"target":  input.Target,
			"error":   err.Error(),
		})
		return &Output{NotificationID: notificationID, Status: StatusFailed, SentAt: sentAt}, nil
	}

	h.logger.Info("notification sent", map[string]interface{}{
		"event":   input.Event,
		"channel": input.Channel,
		"target":  input.Target,
	})
	return &Output{NotificationID: notificationID, Status: StatusSent, SentAt: sentAt}, nil
}

func (h *Handler) publish(ctx context.Context, input *Input) error {
	body := map[string]interface{}{
		"event":  input.Event,
		"target": input.Target,
	}
	for k, v := range input.Payload {
		body[k] = v
	}
	message, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	_, err = h.snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(h.config.TopicARN),
		Subject:  aws.String(input.Event),
		Message:  aws.String(string(message)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"event": {DataType: aws.String("String"), StringValue: aws.String(input.Event)},
		},
	})
	return err
}

func (h *Handler) sendEmail(ctx context.Context, input *Input) error {
	body, err := json.MarshalIndent(input.Payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal email body: %w", err)
	}

	subject := input.Subject
	if subject == "" {
		subject = input.Event
	}

	_, err = h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{input.Target},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(string(body))},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}
