package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"internship-assistant/internal/models"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

type pgStore[T any] struct {
	db      *sql.DB
	table   string
	columns string
	scan    func(scanner) (T, error)
}

func (s *pgStore[T]) FindAll(ctx context.Context) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY id", s.columns, s.table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return out, nil
}

func (s *pgStore[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", s.columns, s.table), id)
	rec, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("query %s %d: %w", s.table, id, err)
	}
	return rec, true, nil
}

// NewPostgresStores builds the postgres-backed stores for every kind.
func NewPostgresStores(db *sql.DB) Stores {
	return Stores{
		Offers: &pgStore[models.Offer]{db: db, table: "offers", scan: scanOffer,
			columns: "id, title, company, location, description, start_date, end_date, weekly_hours, salary, status, session"},
		Applications: &pgStore[models.Application]{db: db, table: "applications", scan: scanApplication,
			columns: "id, offer_id, student_name, student_email, cover_letter, status, submitted_at"},
		Agreements: &pgStore[models.Agreement]{db: db, table: "agreements", scan: scanAgreement,
			columns: "id, offer_id, application_id, student_name, company_name, supervisor_name, start_date, end_date, status, terms, signed_at"},
		Invitations: &pgStore[models.InterviewInvitation]{db: db, table: "interview_invitations", scan: scanInvitation,
			columns: "id, application_id, scheduled_at, location, mode, message, status"},
		StudentEvaluations: &pgStore[models.StudentEvaluation]{db: db, table: "student_evaluations", scan: scanStudentEvaluation,
			columns: "id, agreement_id, student_name, evaluator_name, rating, strengths, improvements, comments, recommended, evaluated_at"},
		WorkplaceEvaluations: &pgStore[models.WorkplaceEvaluation]{db: db, table: "workplace_evaluations", scan: scanWorkplaceEvaluation,
			columns: "id, agreement_id, company_name, rating, supervision, environment, comments, would_return, evaluated_at"},
		Notifications: &pgStore[models.Notification]{db: db, table: "notifications", scan: scanNotification,
			columns: "id, recipient_email, message, is_read, created_at"},
	}
}

func scanOffer(s scanner) (models.Offer, error) {
	var o models.Offer
	var status sql.NullString
	err := s.Scan(&o.ID, &o.Title, &o.Company, &o.Location, &o.Description,
		&o.StartDate, &o.EndDate, &o.WeeklyHours, &o.Salary, &status, &o.Session)
	o.Status = models.OfferStatus(status.String)
	return o, err
}

func scanApplication(s scanner) (models.Application, error) {
	var a models.Application
	var status sql.NullString
	err := s.Scan(&a.ID, &a.OfferID, &a.StudentName, &a.StudentEmail, &a.CoverLetter, &status, &a.SubmittedAt)
	a.Status = models.ApplicationStatus(status.String)
	return a, err
}

func scanAgreement(s scanner) (models.Agreement, error) {
	var a models.Agreement
	var status sql.NullString
	err := s.Scan(&a.ID, &a.OfferID, &a.ApplicationID, &a.StudentName, &a.CompanyName, &a.SupervisorName,
		&a.StartDate, &a.EndDate, &status, &a.Terms, &a.SignedAt)
	a.Status = models.AgreementStatus(status.String)
	return a, err
}

func scanInvitation(s scanner) (models.InterviewInvitation, error) {
	var i models.InterviewInvitation
	var mode, status sql.NullString
	err := s.Scan(&i.ID, &i.ApplicationID, &i.ScheduledAt, &i.Location, &mode, &i.Message, &status)
	i.Mode = models.InterviewMode(mode.String)
	i.Status = models.InvitationStatus(status.String)
	return i, err
}

func scanStudentEvaluation(s scanner) (models.StudentEvaluation, error) {
	var e models.StudentEvaluation
	err := s.Scan(&e.ID, &e.AgreementID, &e.StudentName, &e.EvaluatorName, &e.Rating,
		&e.Strengths, &e.Improvements, &e.Comments, &e.Recommended, &e.EvaluatedAt)
	return e, err
}

func scanWorkplaceEvaluation(s scanner) (models.WorkplaceEvaluation, error) {
	var e models.WorkplaceEvaluation
	err := s.Scan(&e.ID, &e.AgreementID, &e.CompanyName, &e.Rating, &e.Supervision,
		&e.Environment, &e.Comments, &e.WouldReturn, &e.EvaluatedAt)
	return e, err
}

func scanNotification(s scanner) (models.Notification, error) {
	var n models.Notification
	err := s.Scan(&n.ID, &n.RecipientEmail, &n.Message, &n.Read, &n.CreatedAt)
	return n, err
}
