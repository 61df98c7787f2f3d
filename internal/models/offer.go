// internal/models/offer.go
package models

import "time"

// EntityKind tags the record categories the assistant understands.
type EntityKind string

const (
	KindOffer               EntityKind = "offer"
	KindApplication         EntityKind = "application"
	KindAgreement           EntityKind = "agreement"
	KindInterviewInvitation EntityKind = "interview-invitation"
	KindStudentEvaluation   EntityKind = "student-evaluation"
	KindWorkplaceEvaluation EntityKind = "workplace-evaluation"
	KindNotification        EntityKind = "notification"
)

// RoutableKinds lists the kinds that questions can reference or list, in category order.
var RoutableKinds = []EntityKind{
	KindOffer,
	KindApplication,
	KindAgreement,
	KindInterviewInvitation,
	KindStudentEvaluation,
	KindWorkplaceEvaluation,
}

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "PENDING"
	OfferStatusApproved OfferStatus = "APPROVED"
	OfferStatusRejected OfferStatus = "REJECTED"
	OfferStatusClosed   OfferStatus = "CLOSED"
)

type Offer struct {
	ID          int64       `json:"id"`
	Title       *string     `json:"title,omitempty"`
	Company     *string     `json:"company,omitempty"`
	Location    *string     `json:"location,omitempty"`
	Description *string     `json:"description,omitempty"`
	StartDate   *time.Time  `json:"startDate,omitempty"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	WeeklyHours *int        `json:"weeklyHours,omitempty"`
	Salary      *float64    `json:"salary,omitempty"`
	Status      OfferStatus `json:"status,omitempty"`
	Session     *string     `json:"session,omitempty"`
}
