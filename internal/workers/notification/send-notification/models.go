// internal/workers/notification/send-notification/models.go
package sendnotification

// Delivery channels.
const (
	ChannelPush  = "push"
	ChannelEmail = "email"
)

// Delivery statuses.
const (
	StatusSent     = "SENT"
	StatusFailed   = "FAILED"
	StatusDisabled = "DISABLED"
)

type Input struct {
	// Channel selects SNS push (terminal batch outcomes) or SES email
	// (lender contact on a perfect match).
	Channel string `json:"channel"`
	// Target is the applicant identifier for push, the recipient
	// address for email.
	Target  string                 `json:"target"`
	Event   string                 `json:"event"`
	Subject string                 `json:"subject,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	SentAt         string `json:"sentAt"`
}
