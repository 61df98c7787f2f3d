package assistant

import (
	"strconv"
	"strings"

	"internship-assistant/internal/models"
)

type localized struct {
	fr, en string
}

func (l localized) in(lang Language) string {
	if lang == French {
		return l.fr
	}
	return l.en
}

var (
	greetingText = localized{
		fr: "Bonjour ! Je suis l'assistant des stages. Posez-moi une question sur les offres, les candidatures, les ententes, les convocations ou les évaluations.",
		en: "Hello! I am the internship assistant. Ask me about offers, applications, agreements, interview invitations or evaluations.",
	}
	notFoundText = localized{
		fr: "Aucune entité trouvée pour cette référence.",
		en: "No entity found for this reference.",
	}
	noAnswerText = localized{
		fr: "(aucune réponse)",
		en: "(no answer)",
	}
	cleanedEmptyText = localized{
		fr: "(réponse vide après nettoyage)",
		en: "(empty answer after cleanup)",
	}
	detailLabel = localized{
		fr: "Détails de l'entité :",
		en: "Entity details:",
	}
)

// GreetingText is the fixed reply to a greeting.
func GreetingText(lang Language) string { return greetingText.in(lang) }

// NotFoundText is the fixed reply when a referenced record does not exist.
func NotFoundText(lang Language) string { return notFoundText.in(lang) }

type nounForms struct {
	singular, plural localized
}

var kindNouns = map[models.EntityKind]nounForms{
	models.KindOffer: {
		singular: localized{"offre", "offer"},
		plural:   localized{"offres", "offers"},
	},
	models.KindApplication: {
		singular: localized{"candidature", "application"},
		plural:   localized{"candidatures", "applications"},
	},
	models.KindAgreement: {
		singular: localized{"entente", "agreement"},
		plural:   localized{"ententes", "agreements"},
	},
	models.KindInterviewInvitation: {
		singular: localized{"convocation à une entrevue", "interview invitation"},
		plural:   localized{"convocations à une entrevue", "interview invitations"},
	},
	models.KindStudentEvaluation: {
		singular: localized{"évaluation de stagiaire", "student evaluation"},
		plural:   localized{"évaluations de stagiaires", "student evaluations"},
	},
	models.KindWorkplaceEvaluation: {
		singular: localized{"évaluation du milieu de stage", "workplace evaluation"},
		plural:   localized{"évaluations du milieu de stage", "workplace evaluations"},
	},
	models.KindNotification: {
		singular: localized{"notification", "notification"},
		plural:   localized{"notifications", "notifications"},
	},
}

// isPlural follows each language's rule: French treats 0 and 1 as singular.
func isPlural(lang Language, n int) bool {
	if lang == French {
		return n > 1
	}
	return n != 1
}

// CountLabel is the noun phrase for n records of kind, e.g. "pending applications".
func CountLabel(kind models.EntityKind, lang Language, n int, pending bool) string {
	forms, ok := kindNouns[kind]
	if !ok {
		return string(kind)
	}
	label := forms.singular.in(lang)
	if isPlural(lang, n) {
		label = forms.plural.in(lang)
	}
	if !pending {
		return label
	}
	if lang == French {
		return label + " en attente"
	}
	return "pending " + label
}

// CountSentence renders "Il y a 3 offres." or "There are 3 offers.".
func CountSentence(kind models.EntityKind, lang Language, n int, pending bool) string {
	label := CountLabel(kind, lang, n, pending)
	count := strconv.Itoa(n)
	if lang == French {
		return "Il y a " + count + " " + label + "."
	}
	verb := "are"
	if !isPlural(lang, n) {
		verb = "is"
	}
	return "There " + verb + " " + count + " " + label + "."
}

// KindCount is the number of records of one kind.
type KindCount struct {
	Kind    models.EntityKind
	Count   int
	Pending bool
}

// CountAnswer joins one sentence per kind.
func CountAnswer(counts []KindCount, lang Language) string {
	sentences := make([]string, 0, len(counts))
	for _, c := range counts {
		sentences = append(sentences, CountSentence(c.Kind, lang, c.Count, c.Pending))
	}
	return strings.Join(sentences, " ")
}
