package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/identity-service/internal/events"
	"github.com/SAP-F-2025/identity-service/internal/models"
)

type auditEventService struct {
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewAuditEventService(publisher events.EventPublisher, logger *slog.Logger) AuditService {
	return &auditEventService{
		publisher: publisher,
		logger:    logger,
	}
}

type impersonationEventData struct {
	ActorID    uint            `json:"actor_id"`
	ActorName  string          `json:"actor_name"`
	ActorRole  models.RoleKind `json:"actor_role,omitempty"`
	TargetID   uint            `json:"target_id"`
	TargetName string          `json:"target_name"`
	TargetRole models.RoleKind `json:"target_role,omitempty"`
}

type userEventData struct {
	UserID uint            `json:"user_id"`
	Name   string          `json:"name,omitempty"`
	Email  string          `json:"email,omitempty"`
	Role   models.RoleKind `json:"role,omitempty"`
}

func (s *auditEventService) RecordImpersonation(ctx context.Context, actor, target *models.User, granted bool) error {
	eventType := events.TypeImpersonationDenied
	if granted {
		eventType = events.TypeImpersonationGranted
	}

	data := impersonationEventData{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		TargetID:   target.ID,
		TargetName: target.Name,
	}
	if actor.Role != nil {
		data.ActorRole = actor.Role.Name
	}
	if target.Role != nil {
		data.TargetRole = target.Role.Name
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		return fmt.Errorf("failed to record impersonation decision: %w", err)
	}
	return nil
}

func (s *auditEventService) RecordUserRegistered(ctx context.Context, user *models.User) error {
	data := userEventData{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}
	if user.Role != nil {
		data.Role = user.Role.Name
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeUserRegistered, data)); err != nil {
		return fmt.Errorf("failed to record user registration: %w", err)
	}
	return nil
}

func (s *auditEventService) RecordUserDeleted(ctx context.Context, userID uint) error {
	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeUserDeleted, userEventData{UserID: userID})); err != nil {
		return fmt.Errorf("failed to record user deletion: %w", err)
	}
	return nil
}
