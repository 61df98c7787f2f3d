package assistant

import "strings"

var (
	languageDirective = localized{
		fr: "Réponds uniquement en français.",
		en: "Respond only in English.",
	}
	persona = localized{
		fr: "Tu es l'assistant de la plateforme de gestion des stages. Tu aides les étudiants, les employeurs et le personnel " +
			"à retrouver l'information sur les offres, les candidatures, les ententes, les convocations et les évaluations. " +
			"Appuie-toi uniquement sur le CONTEXT fourni, n'invente jamais de données et ne dis jamais que tu n'as pas accès aux données.",
		en: "You are the assistant of the internship management platform. You help students, employers and staff " +
			"find information about offers, applications, agreements, interview invitations and evaluations. " +
			"Rely only on the CONTEXT provided, never invent data and never say that you cannot access the data.",
	}
	queryInstructions = map[QueryType]localized{
		QueryDetail: {
			fr: "Décris l'entité du contexte de façon concise, champ par champ.",
			en: "Describe the entity in the context concisely, field by field.",
		},
		QueryList: {
			fr: "Présente les éléments du contexte sous forme de liste à puces, un élément par ligne.",
			en: "Present the context items as a bulleted list, one item per line.",
		},
		QueryCount: {
			fr: "Si la question demande un nombre, compte les éléments pertinents du contexte.",
			en: "If the question asks for a number, count the relevant items in the context.",
		},
	}
	defaultInstruction = localized{
		fr: "Réponds brièvement et précisément à la question.",
		en: "Answer the question briefly and precisely.",
	}
	specifyGuidance = localized{
		fr: "Aucune donnée ne correspond à la question. Invite l'utilisateur à préciser le type d'entité " +
			"(offre, candidature, entente, convocation, évaluation) et son identifiant, par exemple « offre id 42 ».",
		en: "No data matches the question. Ask the user to specify the entity type " +
			"(offer, application, agreement, interview invitation, evaluation) and its id, for example \"offer id 42\".",
	}
)

const contextHeader = "CONTEXT:"

// BuildSystemInstruction assembles the generation instructions. The CONTEXT section
// is present only when there are blocks; without blocks the model is told to ask for
// an entity type and id instead.
func BuildSystemInstruction(lang Language, queryType QueryType, blocks []ContextBlock) string {
	instruction, ok := queryInstructions[queryType]
	if !ok {
		instruction = defaultInstruction
	}

	parts := []string{
		languageDirective.in(lang),
		persona.in(lang),
		instruction.in(lang),
	}
	if len(blocks) == 0 {
		parts = append(parts, specifyGuidance.in(lang))
	}

	prompt := strings.Join(parts, "\n")
	if len(blocks) > 0 {
		prompt += "\n\n" + contextHeader + "\n" + joinBlocks(blocks)
	}
	return prompt
}
