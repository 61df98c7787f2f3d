package assistant

import (
	"regexp"
	"strconv"

	"internship-assistant/internal/models"
)

// ReferenceMatch is an explicit "<entity> <id>" mention found in a question.
type ReferenceMatch struct {
	Kind models.EntityKind
	ID   int64
}

// The id either follows the entity name directly ("offre 42", "offer #5") or comes after an
// id marker ("#", "no", "n°", "numero", "number", "id") with at most two words in between.
// Other numbers in the sentence, like a year, never bind.
const idTail = `(?:[ \t]*[:#]?[ \t]*|[ \t]+(?:[a-z']+[ \t]+){0,2}?(?:#|no\.?|n°|num(?:ero)?|number|id)[ \t]*:?[ \t]*)(\d+)`

type referencePattern struct {
	kind models.EntityKind
	re   *regexp.Regexp
}

func namePattern(names string) string {
	return `\b(?:` + names + `)\b`
}

var (
	offerNames       = `offres?|offers?`
	agreementNames   = `ententes?|agreements?|contrats?|contracts?|conventions?`
	applicationNames = `candidatures?|applications?|postulations?`
	invitationNames  = `convocations?|invitations?|entrevues?|interviews?`

	studentEvaluationNames = `evaluations?\s+(?:de\s+l'\s*|de\s+la\s+|du\s+|des\s+|de\s+|d'\s*|of\s+(?:the\s+|an\s+|a\s+)?)?` +
		`(?:etudiante?s?|eleves?|stagiaires?|students?|interns?)|(?:students?|interns?)\s+evaluations?`
	workplaceEvaluationNames = `evaluations?\s+(?:du\s+|de\s+l'\s*|de\s+la\s+|des\s+|de\s+|d'\s*|of\s+(?:the\s+)?)?` +
		`(?:milieux?(?:\s+de\s+stage)?|workplaces?|entreprises?|employeurs?|compan(?:y|ies)|employers?)|` +
		`(?:workplace|company|employer)\s+evaluations?`
)

// kindNames holds the folded French and English names of every routable kind.
var kindNames = map[models.EntityKind]string{
	models.KindOffer:               offerNames,
	models.KindApplication:         applicationNames,
	models.KindAgreement:           agreementNames,
	models.KindInterviewInvitation: invitationNames,
	models.KindStudentEvaluation:   studentEvaluationNames,
	models.KindWorkplaceEvaluation: workplaceEvaluationNames,
}

// referencePriority decides which kind wins when a question references several.
// It differs from category order: "contrat 3 de la candidature 6" is about the agreement.
var referencePriority = []models.EntityKind{
	models.KindOffer,
	models.KindAgreement,
	models.KindApplication,
	models.KindInterviewInvitation,
	models.KindStudentEvaluation,
	models.KindWorkplaceEvaluation,
}

func namesOf(kind models.EntityKind) string {
	names, ok := kindNames[kind]
	if !ok {
		panic("assistant: no names for entity kind " + string(kind))
	}
	return names
}

var referencePatterns = buildReferencePatterns(referencePriority)

func buildReferencePatterns(order []models.EntityKind) []referencePattern {
	patterns := make([]referencePattern, 0, len(order))
	for _, kind := range order {
		patterns = append(patterns, referencePattern{kind, regexp.MustCompile(namePattern(namesOf(kind)) + idTail)})
	}
	return patterns
}

// ExtractReference finds the highest-priority entity reference in question.
// Matching ignores case and accents.
func ExtractReference(question string) (ReferenceMatch, bool) {
	folded := fold(question)
	for _, p := range referencePatterns {
		m := p.re.FindStringSubmatch(folded)
		if m == nil {
			continue
		}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		return ReferenceMatch{Kind: p.kind, ID: id}, true
	}
	return ReferenceMatch{}, false
}
