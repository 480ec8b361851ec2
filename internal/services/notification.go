package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/clients/onesignal"
	redisbus "github.com/soulcompass/soulcoach-backend/internal/clients/redis"
	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/sse"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

const practiceFinishedPush = "התרגול הסתיים. המאמן מחכה לשמוע איך היה."

// NotificationService manages push subscriptions and fans out realtime
// events. Push and SSE delivery are best effort; failures are logged,
// never returned to the flow that triggered them.
type NotificationService interface {
	Subscribe(ctx context.Context, userID uuid.UUID, playerID string) (*types.PushSubscription, error)
	Unsubscribe(ctx context.Context, userID uuid.UUID) error
	Subscription(ctx context.Context, userID uuid.UUID) (*types.PushSubscription, error)
	SendTest(ctx context.Context, userID uuid.UUID) error

	PracticeFinished(ctx context.Context, userID uuid.UUID, meditationTitle string)
	TrackGenerated(ctx context.Context, userID uuid.UUID, trackName string)
}

type notificationService struct {
	log  *logger.Logger
	subs repos.PushSubscriptionRepo
	push onesignal.Client
	bus  redisbus.SSEBus
	hub  *sse.SSEHub
}

// NewNotificationService accepts a nil push client and a nil bus; pushes
// are then skipped and SSE events go straight to the local hub instead of
// through Redis.
func NewNotificationService(
	log *logger.Logger,
	subs repos.PushSubscriptionRepo,
	push onesignal.Client,
	bus redisbus.SSEBus,
	hub *sse.SSEHub,
) NotificationService {
	return &notificationService{
		log:  log.With("service", "NotificationService"),
		subs: subs,
		push: push,
		bus:  bus,
		hub:  hub,
	}
}

func (s *notificationService) Subscribe(ctx context.Context, userID uuid.UUID, playerID string) (*types.PushSubscription, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, ErrValidation
	}
	sub := &types.PushSubscription{
		UserID:   userID,
		PlayerID: playerID,
		OptedIn:  true,
	}
	if err := s.subs.Upsert(ctx, nil, sub); err != nil {
		s.log.Error("failed to upsert push subscription", "error", err, "user_id", userID)
		return nil, err
	}
	return sub, nil
}

func (s *notificationService) Unsubscribe(ctx context.Context, userID uuid.UUID) error {
	if err := s.subs.DeleteByUserID(ctx, nil, userID); err != nil {
		s.log.Error("failed to delete push subscription", "error", err, "user_id", userID)
		return err
	}
	return nil
}

func (s *notificationService) Subscription(ctx context.Context, userID uuid.UUID) (*types.PushSubscription, error) {
	return s.subs.GetByUserID(ctx, nil, userID)
}

func (s *notificationService) SendTest(ctx context.Context, userID uuid.UUID) error {
	if s.push == nil {
		return ErrValidation
	}
	sub, err := s.subs.GetByUserID(ctx, nil, userID)
	if err != nil {
		return err
	}
	if sub == nil || !sub.OptedIn {
		return ErrNotFound
	}
	if err := s.push.Ready(ctx); err != nil {
		s.log.Warn("push readiness probe failed", "error", err)
		return err
	}
	return s.push.Send(ctx, onesignal.Notification{
		PlayerID: sub.PlayerID,
		Message:  "בדיקת התראות: הכול עובד.",
	})
}

func (s *notificationService) PracticeFinished(ctx context.Context, userID uuid.UUID, meditationTitle string) {
	s.publish(ctx, sse.SSEMessage{
		Channel: sse.UserChannel(userID),
		Event:   sse.SSEEventPracticeFinished,
		Data:    map[string]any{"meditation_title": meditationTitle},
	})
	s.sendPush(ctx, userID, practiceFinishedPush)
}

func (s *notificationService) TrackGenerated(ctx context.Context, userID uuid.UUID, trackName string) {
	s.publish(ctx, sse.SSEMessage{
		Channel: sse.UserChannel(userID),
		Event:   sse.SSEEventTrackGenerated,
		Data:    map[string]any{"track_name": trackName},
	})
}

func (s *notificationService) publish(ctx context.Context, msg sse.SSEMessage) {
	if s.bus == nil {
		// No Redis: events stay instance-local.
		if s.hub != nil {
			s.hub.Broadcast(msg)
		}
		return
	}
	if err := s.bus.Publish(ctx, msg); err != nil {
		s.log.Warn("failed to publish sse message", "error", err, "event", msg.Event)
	}
}

func (s *notificationService) sendPush(ctx context.Context, userID uuid.UUID, message string) {
	if s.push == nil {
		return
	}
	sub, err := s.subs.GetByUserID(ctx, nil, userID)
	if err != nil {
		s.log.Warn("failed to load push subscription", "error", err, "user_id", userID)
		return
	}
	if sub == nil || !sub.OptedIn {
		return
	}
	if err := s.push.Send(ctx, onesignal.Notification{PlayerID: sub.PlayerID, Message: message}); err != nil {
		s.log.Warn("failed to send push", "error", err, "user_id", userID)
	}
}
