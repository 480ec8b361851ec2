package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/sse"
)

func TestPublish_FallsBackToLocalHubWithoutBus(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	hub := sse.NewSSEHub(log)
	userID := uuid.New()
	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, sse.UserChannel(userID))

	svc := NewNotificationService(log, nil, nil, nil, hub)
	svc.PracticeFinished(context.Background(), userID, "נשימה מודעת")

	select {
	case msg := <-client.Outbound:
		if msg.Event != sse.SSEEventPracticeFinished {
			t.Fatalf("got event %q, want %q", msg.Event, sse.SSEEventPracticeFinished)
		}
	default:
		t.Fatalf("expected an event on the local hub when no bus is configured")
	}
}

func TestPublish_NoHubAndNoBusIsANoop(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	svc := NewNotificationService(log, nil, nil, nil, nil)
	// Must not panic.
	svc.TrackGenerated(context.Background(), uuid.New(), "מסלול חדש")
}
