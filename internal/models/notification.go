// internal/models/notification.go
package models

import "time"

type Notification struct {
	ID             int64      `json:"id"`
	RecipientEmail *string    `json:"recipientEmail,omitempty"`
	Message        *string    `json:"message,omitempty"`
	Read           bool       `json:"read"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}
