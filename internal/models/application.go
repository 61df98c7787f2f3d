// internal/models/application.go
package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusInterview   ApplicationStatus = "INTERVIEW"
	ApplicationStatusAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn   ApplicationStatus = "WITHDRAWN"
)

type Application struct {
	ID           int64             `json:"id"`
	OfferID      *int64            `json:"offerId,omitempty"`
	StudentName  *string           `json:"studentName,omitempty"`
	StudentEmail *string           `json:"studentEmail,omitempty"`
	CoverLetter  *string           `json:"coverLetter,omitempty"`
	Status       ApplicationStatus `json:"status,omitempty"`
	SubmittedAt  *time.Time        `json:"submittedAt,omitempty"`
}

// IsPending reports whether the application still awaits a decision.
func (a Application) IsPending() bool {
	return a.Status == ApplicationStatusPending || a.Status == ApplicationStatusUnderReview
}
