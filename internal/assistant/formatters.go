package assistant

import (
	"strconv"
	"strings"
	"time"

	"internship-assistant/internal/models"
)

// ContextBlock is one record rendered for the generation prompt, e.g.
//
//	{"type": "offer", "id": 42, "title": "Développeur web", "status": "APPROVED"}
type ContextBlock string

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// blockWriter renders fields in call order. Absent values are skipped, free text is
// redacted and escaped before it is quoted.
type blockWriter struct {
	sb strings.Builder
}

func newBlock(kind models.EntityKind, id int64) *blockWriter {
	w := &blockWriter{}
	w.sb.WriteString(`{"type": "`)
	w.sb.WriteString(string(kind))
	w.sb.WriteString(`", "id": `)
	w.sb.WriteString(strconv.FormatInt(id, 10))
	return w
}

func (w *blockWriter) raw(name, value string) *blockWriter {
	w.sb.WriteString(`, "`)
	w.sb.WriteString(name)
	w.sb.WriteString(`": `)
	w.sb.WriteString(value)
	return w
}

func (w *blockWriter) quoted(name, value string) *blockWriter {
	return w.raw(name, `"`+Escape(value)+`"`)
}

func (w *blockWriter) text(name string, v *string) *blockWriter {
	if v == nil {
		return w
	}
	return w.quoted(name, Redact(*v))
}

func (w *blockWriter) enum(name, v string) *blockWriter {
	if v == "" {
		return w
	}
	return w.quoted(name, v)
}

func (w *blockWriter) date(name string, v *time.Time) *blockWriter {
	if v == nil {
		return w
	}
	return w.quoted(name, v.Format(dateLayout))
}

func (w *blockWriter) dateTime(name string, v *time.Time) *blockWriter {
	if v == nil {
		return w
	}
	return w.quoted(name, v.Format(dateTimeLayout))
}

func (w *blockWriter) ref(name string, v *int64) *blockWriter {
	if v == nil {
		return w
	}
	return w.raw(name, strconv.FormatInt(*v, 10))
}

func (w *blockWriter) integer(name string, v *int) *blockWriter {
	if v == nil {
		return w
	}
	return w.raw(name, strconv.Itoa(*v))
}

func (w *blockWriter) decimal(name string, v *float64) *blockWriter {
	if v == nil {
		return w
	}
	return w.raw(name, strconv.FormatFloat(*v, 'f', -1, 64))
}

func (w *blockWriter) flag(name string, v *bool) *blockWriter {
	if v == nil {
		return w
	}
	return w.raw(name, strconv.FormatBool(*v))
}

func (w *blockWriter) block() ContextBlock {
	w.sb.WriteString("}")
	return ContextBlock(w.sb.String())
}

func FormatOffer(o models.Offer) ContextBlock {
	return newBlock(models.KindOffer, o.ID).
		text("title", o.Title).
		text("company", o.Company).
		text("location", o.Location).
		enum("status", string(o.Status)).
		text("session", o.Session).
		date("startDate", o.StartDate).
		date("endDate", o.EndDate).
		integer("weeklyHours", o.WeeklyHours).
		decimal("salary", o.Salary).
		text("description", o.Description).
		block()
}

// FormatApplication leaves out the student's e-mail address.
func FormatApplication(a models.Application) ContextBlock {
	return newBlock(models.KindApplication, a.ID).
		ref("offerId", a.OfferID).
		text("studentName", a.StudentName).
		enum("status", string(a.Status)).
		date("submittedAt", a.SubmittedAt).
		text("coverLetter", a.CoverLetter).
		block()
}

func FormatAgreement(a models.Agreement) ContextBlock {
	return newBlock(models.KindAgreement, a.ID).
		ref("offerId", a.OfferID).
		ref("applicationId", a.ApplicationID).
		text("studentName", a.StudentName).
		text("companyName", a.CompanyName).
		text("supervisorName", a.SupervisorName).
		enum("status", string(a.Status)).
		date("startDate", a.StartDate).
		date("endDate", a.EndDate).
		date("signedAt", a.SignedAt).
		text("terms", a.Terms).
		block()
}

func FormatInterviewInvitation(i models.InterviewInvitation) ContextBlock {
	return newBlock(models.KindInterviewInvitation, i.ID).
		ref("applicationId", i.ApplicationID).
		dateTime("scheduledAt", i.ScheduledAt).
		enum("mode", string(i.Mode)).
		text("location", i.Location).
		enum("status", string(i.Status)).
		text("message", i.Message).
		block()
}

func FormatStudentEvaluation(e models.StudentEvaluation) ContextBlock {
	return newBlock(models.KindStudentEvaluation, e.ID).
		ref("agreementId", e.AgreementID).
		text("studentName", e.StudentName).
		text("evaluatorName", e.EvaluatorName).
		integer("rating", e.Rating).
		flag("recommended", e.Recommended).
		date("evaluatedAt", e.EvaluatedAt).
		text("strengths", e.Strengths).
		text("improvements", e.Improvements).
		text("comments", e.Comments).
		block()
}

func FormatWorkplaceEvaluation(e models.WorkplaceEvaluation) ContextBlock {
	return newBlock(models.KindWorkplaceEvaluation, e.ID).
		ref("agreementId", e.AgreementID).
		text("companyName", e.CompanyName).
		integer("rating", e.Rating).
		flag("wouldReturn", e.WouldReturn).
		date("evaluatedAt", e.EvaluatedAt).
		text("supervision", e.Supervision).
		text("environment", e.Environment).
		text("comments", e.Comments).
		block()
}

// FormatNotification leaves out the recipient address.
func FormatNotification(n models.Notification) ContextBlock {
	read := n.Read
	return newBlock(models.KindNotification, n.ID).
		flag("read", &read).
		date("createdAt", n.CreatedAt).
		text("message", n.Message).
		block()
}

// FormatRecord dispatches on the record's type. ok is false for unknown types.
func FormatRecord(record any) (ContextBlock, bool) {
	switch r := record.(type) {
	case models.Offer:
		return FormatOffer(r), true
	case models.Application:
		return FormatApplication(r), true
	case models.Agreement:
		return FormatAgreement(r), true
	case models.InterviewInvitation:
		return FormatInterviewInvitation(r), true
	case models.StudentEvaluation:
		return FormatStudentEvaluation(r), true
	case models.WorkplaceEvaluation:
		return FormatWorkplaceEvaluation(r), true
	case models.Notification:
		return FormatNotification(r), true
	default:
		return "", false
	}
}

func joinBlocks(blocks []ContextBlock) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = string(b)
	}
	return strings.Join(parts, "\n")
}
