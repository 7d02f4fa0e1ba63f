package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/identity-service/internal/events"
	"github.com/SAP-F-2025/identity-service/internal/models"
)

func TestAuditEventService_RecordImpersonation(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	svc := NewAuditEventService(publisher, logger)

	actorRole := &models.Role{ID: 4, Name: models.RoleAdministrator}
	actor := &models.User{ID: 1, Name: "ada", RoleID: 4, Role: actorRole}
	target := &models.User{ID: 2, Name: "sam", RoleID: 1}

	t.Run("Granted", func(t *testing.T) {
		publisher.ClearEvents()

		if err := svc.RecordImpersonation(ctx, actor, target, true); err != nil {
			t.Fatalf("RecordImpersonation returned error: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.TypeImpersonationGranted {
			t.Errorf("Event type = %s, want %s", published[0].Type, events.TypeImpersonationGranted)
		}
	})

	t.Run("Denied", func(t *testing.T) {
		publisher.ClearEvents()

		if err := svc.RecordImpersonation(ctx, actor, target, false); err != nil {
			t.Fatalf("RecordImpersonation returned error: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.TypeImpersonationDenied {
			t.Errorf("Event type = %s, want %s", published[0].Type, events.TypeImpersonationDenied)
		}
	})

	t.Run("EnvelopeStructure", func(t *testing.T) {
		publisher.ClearEvents()

		if err := svc.RecordImpersonation(ctx, actor, target, true); err != nil {
			t.Fatalf("RecordImpersonation returned error: %v", err)
		}

		event := publisher.GetPublishedEvents()[0]
		if event.ID == "" {
			t.Error("Event ID should not be empty")
		}
		if event.Source != "identity-service" {
			t.Errorf("Event source = %s, want identity-service", event.Source)
		}
		if event.Version != "1.0" {
			t.Errorf("Event version = %s, want 1.0", event.Version)
		}
		if event.Timestamp.IsZero() {
			t.Error("Event timestamp should not be zero")
		}
	})
}
