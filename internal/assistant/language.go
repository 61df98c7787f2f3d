package assistant

import "strings"

// Language of a response.
type Language string

const (
	French  Language = "fr"
	English Language = "en"
)

// frenchCues are greetings, French-only question words and verbs, and domain nouns.
// Short function words ("de", "le", "pour", "est") are left out since they turn up in English too.
var frenchCues = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// greetings and courtesy
		"bonjour", "bonsoir", "salut", "allo", "allô", "coucou", "merci", "svp", "stp",
		// question words
		"combien", "quel", "quelle", "quels", "quelles", "pourquoi", "quand", "quoi", "où",
		// verbs and pronouns
		"donne", "donner", "donnez", "affiche", "afficher", "montre", "montrer", "liste", "lister",
		"voudrais", "pouvez", "avez", "sommes", "je", "vous", "nous", "moi",
		// domain nouns
		"offre", "offres", "stagiaire", "stagiaires", "candidature", "candidatures",
		"entente", "ententes", "convocation", "convocations", "entrevue", "entrevues",
		"évaluation", "évaluations", "étudiant", "étudiante", "étudiants", "élève", "élèves",
		"employeur", "employeurs", "entreprise", "attente", "numéro",
	} {
		frenchCues[w] = struct{}{}
	}
}

// DetectLanguage picks the response language. A non-blank hint wins outright:
// anything starting with "fr" is French, everything else English. Without a hint a
// blank question is French, and otherwise French cues in the question decide.
func DetectLanguage(question, hint string) Language {
	if h := strings.ToLower(strings.TrimSpace(hint)); h != "" {
		if strings.HasPrefix(h, "fr") {
			return French
		}
		return English
	}
	if strings.TrimSpace(question) == "" {
		return French
	}
	for _, w := range words(question) {
		if _, ok := frenchCues[w]; ok {
			return French
		}
	}
	return English
}
