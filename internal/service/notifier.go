package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"leavedesk/internal/cache"
	"leavedesk/internal/errors"
)

const leaveEventsChannel = "leave_events"

// Leave change event names.
const (
	EventLeaveCreated       = "leave.created"
	EventLeaveUpdated       = "leave.updated"
	EventLeaveDeleted       = "leave.deleted"
	EventLeaveStatusChanged = "leave.status_changed"
)

// LeaveEvent is one change notification published after a mutating leave
// operation.
type LeaveEvent struct {
	Event     string `json:"event"`
	LeaveID   string `json:"leave_id"`
	UserID    string `json:"user_id"`
	LeaveDate string `json:"leave_date"`
	Status    string `json:"status"`
}

// Notifier fans leave change events out to admin clients over Redis
// pub/sub. Publishing is fire-and-forget; a failed publish never fails the
// mutation that triggered it.
type Notifier interface {
	PublishLeaveEvent(ctx context.Context, event LeaveEvent)
	Subscribe(ctx context.Context) (<-chan LeaveEvent, error)
}

type notifier struct {
	cache  *cache.Client
	logger zerolog.Logger
}

// NewNotifier creates a new notifier on top of the shared cache client.
func NewNotifier(cache *cache.Client, logger zerolog.Logger) Notifier {
	return &notifier{cache: cache, logger: logger}
}

// PublishLeaveEvent publishes a change event, logging failures only.
func (n *notifier) PublishLeaveEvent(ctx context.Context, event LeaveEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error().Err(err).Str("event", event.Event).Msg("marshal leave event")
		return
	}
	if err := n.cache.Publish(ctx, leaveEventsChannel, payload); err != nil {
		n.logger.Error().Err(err).Str("event", event.Event).Msg("publish leave event")
	}
}

// Subscribe opens a subscription that lives until ctx is canceled. The
// returned channel closes when the subscription is released.
func (n *notifier) Subscribe(ctx context.Context) (<-chan LeaveEvent, error) {
	sub := n.cache.Subscribe(ctx, leaveEventsChannel)
	if sub == nil {
		return nil, errors.ErrNotificationsUnavailable
	}

	events := make(chan LeaveEvent, 16)
	go func() {
		defer close(events)
		defer func() {
			if err := sub.Close(); err != nil {
				n.logger.Debug().Err(err).Msg("close leave event subscription")
			}
		}()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event LeaveEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					n.logger.Warn().Err(err).Msg("skipping malformed leave event")
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}
