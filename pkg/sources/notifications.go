package sources

import (
	"context"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

// Field resolution order for notification feed entries:
//
//	id:       id, notification_id
//	type:     type, notification_type, category
//	priority: priority, severity, level
//	message:  message, text, description
//	domain:   domain, related_domain, module
var (
	notificationIDFields       = []string{"id", "notification_id"}
	notificationTypeFields     = []string{"type", "notification_type", "category"}
	notificationPriorityFields = []string{"priority", "severity", "level"}
	notificationMessageFields  = []string{"message", "text", "description"}
	notificationDomainFields   = []string{"domain", "related_domain", "module"}
)

type notificationsAdapter struct {
	store client.RecordLister
	path  string
}

// NewNotificationsAdapter reads the optional pre-computed business
// notifications feed. When this domain fails the alert generator falls
// back to local rule evaluation.
func NewNotificationsAdapter(store client.RecordLister) Adapter {
	return &notificationsAdapter{store: store, path: "/api/notifications"}
}

func (a *notificationsAdapter) Domain() domain.Name { return domain.DomainNotifications }

func (a *notificationsAdapter) Fetch(ctx context.Context, window domain.TimeRange, snap *domain.Snapshot) error {
	rows, err := a.store.List(ctx, a.path, window)
	if err != nil {
		return unavailable(a.Domain(), err)
	}

	items := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		message, ok := pickString(row, notificationMessageFields...)
		if !ok {
			continue
		}
		id, _ := pickString(row, notificationIDFields...)
		kind, _ := pickString(row, notificationTypeFields...)
		priority, _ := pickString(row, notificationPriorityFields...)
		related, _ := pickString(row, notificationDomainFields...)

		items = append(items, domain.Notification{
			ID:       id,
			Type:     kind,
			Priority: priority,
			Message:  message,
			Domain:   related,
		})
	}

	snap.Notifications = domain.Collected(items)
	return nil
}
