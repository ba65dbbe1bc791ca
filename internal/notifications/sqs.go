package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"ms-booking/internal/models"
)

// SQSAPI is the part of the SQS client the publisher uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// BookingMessage is the JSON payload placed on the bookings queue for
// downstream notifiers (email/SMS senders).
type BookingMessage struct {
	BookingID  string  `json:"bookingId"`
	EventID    string  `json:"eventId"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Tickets    int     `json:"tickets"`
	TotalPrice float64 `json:"totalPrice"`
}

// SQSPublisher forwards confirmed bookings to an SQS queue.
type SQSPublisher struct {
	client   SQSAPI
	queueURL string
}

func NewSQSPublisher(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

// PublishBooking sends one booking confirmation message. Callers treat
// failures as non-fatal; the booking itself has already committed.
func (p *SQSPublisher) PublishBooking(ctx context.Context, b models.Booking) error {
	body, err := json.Marshal(BookingMessage{
		BookingID:  b.ID,
		EventID:    b.EventID,
		Name:       b.Name,
		Phone:      b.Phone,
		Tickets:    b.Tickets,
		TotalPrice: b.TotalPrice,
	})
	if err != nil {
		return fmt.Errorf("marshal booking message: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("send booking message: %w", err)
	}

	log.Printf("Published booking %s to notifications queue", b.ID)
	return nil
}
