package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostProcess_Detail(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		lang Language
		want string
	}{
		{
			name: "french refusal stripped",
			raw:  "Je ne peux pas accéder aux données. Voici une réponse utile.",
			lang: French,
			want: "Détails de l'entité :\nVoici une réponse utile.",
		},
		{
			name: "unaccented refusal stripped",
			raw:  "Je ne peux pas acceder aux donnees. Offre approuvée.",
			lang: French,
			want: "Détails de l'entité :\nOffre approuvée.",
		},
		{
			name: "decomposed accent refusal stripped",
			raw:  "Je ne peux pas acce\u0301der aux donne\u0301es. Voici une réponse utile.",
			lang: French,
			want: "Détails de l'entité :\nVoici une réponse utile.",
		},
		{
			name: "misspelled accent refusal stripped",
			raw:  "JE NE PEUX PAS ACCÈDER AUX DONNÉES. Voici une réponse utile.",
			lang: French,
			want: "Détails de l'entité :\nVoici une réponse utile.",
		},
		{
			name: "curly apostrophe refusal stripped",
			raw:  "Je n’ai pas la possibilité d’accéder à la base. L’offre est ouverte.",
			lang: French,
			want: "Détails de l'entité :\nL’offre est ouverte.",
		},
		{
			name: "english refusal stripped",
			raw:  "I cannot access your database. The offer is open.",
			lang: English,
			want: "Entity details:\nThe offer is open.",
		},
		{
			name: "contraction",
			raw:  "I'm unable to access live records! Offer 42 is approved.",
			lang: English,
			want: "Entity details:\nOffer 42 is approved.",
		},
		{
			name: "empty after stripping",
			raw:  "I don't have access to that data.",
			lang: English,
			want: "Entity details:\n(empty answer after cleanup)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PostProcess(tt.raw, PostProcessOptions{QueryType: QueryDetail, Language: tt.lang})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostProcess_Blank(t *testing.T) {
	blocks := []ContextBlock{`{"type": "offer", "id": 1}`}

	got := PostProcess("  \n", PostProcessOptions{QueryType: QueryFallback, Language: English, Blocks: blocks, IncludeContextOnEmpty: true})
	assert.Equal(t, "(no answer)\n"+`{"type": "offer", "id": 1}`, got)

	got = PostProcess("", PostProcessOptions{QueryType: QueryList, Language: French, Blocks: blocks})
	assert.Equal(t, "(aucune réponse)", got)

	got = PostProcess("", PostProcessOptions{QueryType: QueryFallback, Language: English, IncludeContextOnEmpty: true})
	assert.Equal(t, "(no answer)", got)
}

func TestPostProcess_CleanedEmpty(t *testing.T) {
	got := PostProcess("I cannot access the data.", PostProcessOptions{QueryType: QueryList, Language: English})
	assert.Equal(t, "(empty answer after cleanup)", got)

	got = PostProcess("En tant qu'IA, je n'ai pas accès à vos données.", PostProcessOptions{QueryType: QueryFallback, Language: French})
	assert.Equal(t, "(réponse vide après nettoyage)", got)
}

func TestPostProcess_Fallback(t *testing.T) {
	got := PostProcess("As an AI language model, I can't browse. Voici   trois    offres.",
		PostProcessOptions{QueryType: QueryFallback, Language: French})
	assert.Equal(t, "Voici trois offres.", got)
}

func TestPostProcess_ListBullets(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain lines", "Offre 1\nOffre 2\n\nOffre 3", "- Offre 1\n- Offre 2\n- Offre 3"},
		{"numbered kept", "1. Offre A\n2. Offre B", "1. Offre A\n2. Offre B"},
		{"stars kept", "* a\n* b", "* a\n* b"},
		{"dashes kept", "Voici la liste :\n- a\n- b", "Voici la liste :\n- a\n- b"},
		{"single line", "Une seule offre", "- Une seule offre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PostProcess(tt.raw, PostProcessOptions{QueryType: QueryList, Language: French})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripRefusals(t *testing.T) {
	assert.Equal(t, " Reste.", StripRefusals("Je n'ai pas accès aux données. Reste."))
	assert.Equal(t, "Rien à retirer.", StripRefusals("Rien à retirer."))
	assert.Equal(t, "Offre ouverte. ", StripRefusals("Offre ouverte. Je n'ai pas acce\u0300s aux données."))
}

func TestFoldIndexed(t *testing.T) {
	src := "Acce\u0301der É’"
	folded, offsets := foldIndexed(src)
	assert.Equal(t, "acceder e'", folded)
	assert.Len(t, offsets, len(folded)+1)
	assert.Equal(t, len(src), offsets[len(folded)])
	assert.Equal(t, "der", src[offsets[4]:offsets[7]])
	assert.Equal(t, "É", src[offsets[8]:offsets[9]])
}
