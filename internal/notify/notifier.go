// Package notify implements the notification fan-out. Fan-out is
// fire-and-forget with respect to the triggering mutation: a failed write is
// logged and counted, never surfaced to the primary action.
package notify

import (
	"context"
	"log"
	"time"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/buildhubhq/buildhub-backend/pkg/firebase"
	"github.com/buildhubhq/buildhub-backend/pkg/metrics"
)

// Notifier appends per-recipient notification rows and optionally forwards
// them as FCM pushes.
type Notifier struct {
	notificationRepository repositories.NotificationRepository
	profileRepository      repositories.ProfileRepository
	push                   *firebase.App // nil when push is not configured
}

// NewNotifier creates a new Notifier. push may be nil.
func NewNotifier(notificationRepo repositories.NotificationRepository, profileRepo repositories.ProfileRepository, push *firebase.App) *Notifier {
	return &Notifier{
		notificationRepository: notificationRepo,
		profileRepository:      profileRepo,
		push:                   push,
	}
}

// Notify writes one notification for the recipient. Self-actions are
// skipped: acting on your own content never notifies you.
func (n *Notifier) Notify(notifType string, actorID, recipientID uint, targetType, targetID, message string) {
	if actorID == recipientID || recipientID == 0 {
		return
	}

	notification := &models.Notification{
		Type:        notifType,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetID:    targetID,
		TargetType:  targetType,
		Message:     message,
	}
	if err := n.notificationRepository.CreateNotification(notification); err != nil {
		metrics.NotificationsFailed.Inc()
		log.Printf("notify: dropping %s notification for user %d: %v", notifType, recipientID, err)
		return
	}
	metrics.NotificationsWritten.Inc()

	n.pushToRecipient(recipientID, message)
}

// pushToRecipient forwards the notification to the recipient's device when
// push is configured and a token is registered. Best-effort.
func (n *Notifier) pushToRecipient(recipientID uint, message string) {
	if n.push == nil {
		return
	}
	profile, err := n.profileRepository.GetByUserID(recipientID)
	if err != nil || profile.DeviceToken == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := n.push.Push(ctx, profile.DeviceToken, "BuildHub", message); err != nil {
		log.Printf("notify: push to user %d failed: %v", recipientID, err)
	}
}
