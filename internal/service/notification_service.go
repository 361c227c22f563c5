package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type NotificationType string

const (
	NotificationConsultationBooked    NotificationType = "consultation_booked"
	NotificationConsultationCancelled NotificationType = "consultation_cancelled"
)

// BookingNotification tells a doctor that a patient booked a consultation.
type BookingNotification struct {
	DoctorID      uuid.UUID `json:"doctor_id"`
	AppointmentID int64     `json:"appointment_id"`
	PatientName   string    `json:"patient_name"`
	When          time.Time `json:"appointment_date"`
}

// CancellationNotification tells the other party that a consultation was
// cancelled. CancelerLabel reads "Doctor <name>" or "Patient <name>".
type CancellationNotification struct {
	RecipientID   uuid.UUID `json:"recipient_id"`
	AppointmentID int64     `json:"appointment_id"`
	CancelerLabel string    `json:"canceler"`
	Reason        string    `json:"cancellation_reason"`
	OriginalWhen  time.Time `json:"appointment_date"`
}

// Notifier publishes consultation events for the delivery workers. Callers
// invoke it after commit and treat failures as non-fatal.
type Notifier interface {
	NotifyBooking(ctx context.Context, n BookingNotification) error
	NotifyCancellation(ctx context.Context, n CancellationNotification) error
}

// StreamAdder is the subset of the Redis client the notifier needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

type redisNotifier struct {
	client StreamAdder
	log    *logrus.Logger
	stream string
	maxLen int64
}

// NewRedisNotifier appends events to a Redis stream, trimmed approximately
// to maxLen entries when maxLen is positive.
func NewRedisNotifier(client StreamAdder, log *logrus.Logger, stream string, maxLen int64) Notifier {
	return &redisNotifier{
		client: client,
		log:    log,
		stream: stream,
		maxLen: maxLen,
	}
}

func (n *redisNotifier) NotifyBooking(ctx context.Context, b BookingNotification) error {
	return n.publish(ctx, NotificationConsultationBooked, b.DoctorID, b)
}

func (n *redisNotifier) NotifyCancellation(ctx context.Context, c CancellationNotification) error {
	return n.publish(ctx, NotificationConsultationCancelled, c.RecipientID, c)
}

func (n *redisNotifier) publish(ctx context.Context, typ NotificationType, recipient uuid.UUID, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s notification: %w", typ, err)
	}

	args := &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]interface{}{
			"type":         string(typ),
			"recipient_id": recipient.String(),
			"payload":      string(body),
		},
	}
	if n.maxLen > 0 {
		args.MaxLen = n.maxLen
		args.Approx = true
	}

	id, err := n.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to publish %s notification: %w", typ, err)
	}

	n.log.Debugf("Published %s notification %s for %s", typ, id, recipient)
	return nil
}
