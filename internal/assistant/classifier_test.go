package assistant

import (
	"testing"

	"internship-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		question string
		want     QueryType
	}{
		{"Donne moi l'offre id 42", QueryDetail},
		{"Bonjour, montre-moi l'entente 3", QueryDetail},
		{"bonjour", QueryGreeting},
		{"Hello there", QueryGreeting},
		{"Bonjour, combien d'offres ?", QueryGreeting},
		{"Combien d'offres y a-t-il ?", QueryCount},
		{"How many applications are pending?", QueryCount},
		{"Combien d'offres pour la session 2025 ?", QueryCount},
		{"How many offers were published in 2024?", QueryCount},
		{"What is the number of agreements", QueryCount},
		{"Give me a list of every offer", QueryList},
		{"Affiche toutes les ententes", QueryList},
		{"What are the interviews this week", QueryList},
		{"Which offers are open?", QueryList},
		{"Quel est le statut du dossier numéro 5 ?", QueryDetail},
		{"Détails pour id 5", QueryDetail},
		{"Tell me about internships", QueryFallback},
		{"Thanks", QueryFallback},
		{"", QueryFallback},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.question))
		})
	}
}

func TestClassify_ReferenceAlwaysDetail(t *testing.T) {
	phrases := []string{"offre id 7", "Entente ID 7", "CANDIDATURE id 7", "entrevue id 7",
		"évaluation de l'élève id 7", "evaluation du milieu id 7"}
	for _, p := range phrases {
		for _, q := range []string{p, "bonjour, " + p, "combien pour " + p + " ?", "list all " + p} {
			assert.Equal(t, QueryDetail, Classify(q), q)
			ref, ok := ExtractReference(q)
			require.True(t, ok, q)
			assert.Equal(t, int64(7), ref.ID, q)
		}
	}
}

func TestMatchCategories(t *testing.T) {
	tests := []struct {
		question string
		kinds    []models.EntityKind
		pending  bool
	}{
		{"Liste des offres et des candidatures en attente",
			[]models.EntityKind{models.KindOffer, models.KindApplication}, true},
		{"How many interviews and student evaluations",
			[]models.EntityKind{models.KindInterviewInvitation, models.KindStudentEvaluation}, false},
		{"Les évaluations du milieu de stage",
			[]models.EntityKind{models.KindWorkplaceEvaluation}, false},
		{"Show applications in progress",
			[]models.EntityKind{models.KindApplication}, true},
		{"agreements, offers", []models.EntityKind{models.KindOffer, models.KindAgreement}, false},
		{"bonjour", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			m := MatchCategories(tt.question)
			assert.Equal(t, tt.kinds, m.Kinds)
			assert.Equal(t, tt.pending, m.Pending)
			assert.Equal(t, len(tt.kinds) == 0, m.Empty())
		})
	}
}

func TestMatchCategories_FollowsRoutableKinds(t *testing.T) {
	m := MatchCategories("workplace evaluations, student evaluations, interviews, agreements, applications and offers")
	assert.Equal(t, models.RoutableKinds, m.Kinds)

	require.Len(t, categoryPatterns, len(models.RoutableKinds))
	for i, p := range categoryPatterns {
		assert.Equal(t, models.RoutableKinds[i], p.kind)
	}
}

func TestReferencePriority_CoversRoutableKinds(t *testing.T) {
	assert.ElementsMatch(t, models.RoutableKinds, referencePriority)
	assert.Len(t, kindNames, len(models.RoutableKinds))

	ref, ok := ExtractReference("contrat 3 de la candidature 6")
	require.True(t, ok)
	assert.Equal(t, ReferenceMatch{Kind: models.KindAgreement, ID: 3}, ref)
}

func TestBuildCategoryPatterns_UnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() { buildCategoryPatterns([]models.EntityKind{models.KindNotification}) })
}

func TestRoute(t *testing.T) {
	d := Route("Donne moi l'offre id 42", "")
	assert.Equal(t, QueryDetail, d.QueryType)
	assert.Equal(t, French, d.Language)
	require.NotNil(t, d.Reference)
	assert.Equal(t, ReferenceMatch{Kind: models.KindOffer, ID: 42}, *d.Reference)

	d = Route("Give me a list of every offer", "en")
	assert.Equal(t, QueryList, d.QueryType)
	assert.Equal(t, English, d.Language)
	assert.Nil(t, d.Reference)
	assert.Equal(t, []models.EntityKind{models.KindOffer}, d.Categories.Kinds)
}
