// internal/models/agreement.go
package models

import "time"

type AgreementStatus string

const (
	AgreementStatusDraft             AgreementStatus = "DRAFT"
	AgreementStatusPendingSignatures AgreementStatus = "PENDING_SIGNATURES"
	AgreementStatusSigned            AgreementStatus = "SIGNED"
	AgreementStatusCancelled         AgreementStatus = "CANCELLED"
)

type Agreement struct {
	ID             int64           `json:"id"`
	OfferID        *int64          `json:"offerId,omitempty"`
	ApplicationID  *int64          `json:"applicationId,omitempty"`
	StudentName    *string         `json:"studentName,omitempty"`
	CompanyName    *string         `json:"companyName,omitempty"`
	SupervisorName *string         `json:"supervisorName,omitempty"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	Status         AgreementStatus `json:"status,omitempty"`
	Terms          *string         `json:"terms,omitempty"`
	SignedAt       *time.Time      `json:"signedAt,omitempty"`
}
