package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/travelagent/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TripEvent) error {
	fmt.Printf("send email to %s about %s for trip %s\n", event.CustomerEmail, event.Type, event.Reference)
	return nil
}
