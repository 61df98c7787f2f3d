// internal/models/evaluation.go
package models

import "time"

// StudentEvaluation is the employer's evaluation of an intern.
type StudentEvaluation struct {
	ID            int64      `json:"id"`
	AgreementID   *int64     `json:"agreementId,omitempty"`
	StudentName   *string    `json:"studentName,omitempty"`
	EvaluatorName *string    `json:"evaluatorName,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	Strengths     *string    `json:"strengths,omitempty"`
	Improvements  *string    `json:"improvements,omitempty"`
	Comments      *string    `json:"comments,omitempty"`
	Recommended   *bool      `json:"recommended,omitempty"`
	EvaluatedAt   *time.Time `json:"evaluatedAt,omitempty"`
}

// WorkplaceEvaluation is the school's evaluation of the internship workplace.
type WorkplaceEvaluation struct {
	ID          int64      `json:"id"`
	AgreementID *int64     `json:"agreementId,omitempty"`
	CompanyName *string    `json:"companyName,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	Supervision *string    `json:"supervision,omitempty"`
	Environment *string    `json:"environment,omitempty"`
	Comments    *string    `json:"comments,omitempty"`
	WouldReturn *bool      `json:"wouldReturn,omitempty"`
	EvaluatedAt *time.Time `json:"evaluatedAt,omitempty"`
}
