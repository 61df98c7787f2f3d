// internal/models/interview.go
package models

import "time"

type InterviewMode string

const (
	InterviewModeInPerson InterviewMode = "IN_PERSON"
	InterviewModeRemote   InterviewMode = "REMOTE"
	InterviewModePhone    InterviewMode = "PHONE"
)

type InvitationStatus string

const (
	InvitationStatusSent      InvitationStatus = "SENT"
	InvitationStatusAccepted  InvitationStatus = "ACCEPTED"
	InvitationStatusDeclined  InvitationStatus = "DECLINED"
	InvitationStatusCancelled InvitationStatus = "CANCELLED"
)

type InterviewInvitation struct {
	ID            int64            `json:"id"`
	ApplicationID *int64           `json:"applicationId,omitempty"`
	ScheduledAt   *time.Time       `json:"scheduledAt,omitempty"`
	Location      *string          `json:"location,omitempty"`
	Mode          InterviewMode    `json:"mode,omitempty"`
	Message       *string          `json:"message,omitempty"`
	Status        InvitationStatus `json:"status,omitempty"`
}
