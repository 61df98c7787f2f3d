package assistant

import (
	"regexp"

	"internship-assistant/internal/models"
)

// QueryType is the routing category of a question.
type QueryType string

const (
	QueryCount    QueryType = "COUNT"
	QueryList     QueryType = "LIST"
	QueryDetail   QueryType = "DETAIL"
	QueryGreeting QueryType = "GREETING"
	QueryFallback QueryType = "FALLBACK"
)

// Cue patterns run on folded text.
var (
	greetingCue = regexp.MustCompile(`\b(?:bonjour|salut|allo|coucou|bonsoir|hello|hi|hey|greetings)\b|\bgood\s+(?:morning|afternoon|evening)\b`)
	countCue    = regexp.MustCompile(`\b(?:combien|nombre|count|total)\b|\bhow\s+many\b|\bnumber\s+of\b`)
	listCue     = regexp.MustCompile(`\b(?:liste[rsz]?|list|all|every|show|display|affich\w*|montr\w*|tous|toutes|quels|quelles|which)\b|\bwhat\s+are\b`)
	genericRef  = regexp.MustCompile(`\bid\b|\bnumero\b|\bno\.?\s*\d|#|n°`)
	pendingCue  = regexp.MustCompile(`\ben\s+attente\b|\bpending\b|\ben\s+cours\b|\bin\s+progress\b|\bnon\s+traite[es]*\b|\bawaiting\b`)
)

// Classify routes a question. Rules are tried in order and the first hit wins:
// explicit entity reference, greeting, count, list, generic id cue, fallback.
func Classify(question string) QueryType {
	if _, ok := ExtractReference(question); ok {
		return QueryDetail
	}
	folded := fold(question)
	switch {
	case greetingCue.MatchString(folded):
		return QueryGreeting
	case countCue.MatchString(folded):
		return QueryCount
	case listCue.MatchString(folded):
		return QueryList
	case genericRef.MatchString(folded):
		return QueryDetail
	default:
		return QueryFallback
	}
}

// CategoryMatch holds the entity kinds a question talks about, in category order.
type CategoryMatch struct {
	Kinds []models.EntityKind
	// Pending restricts applications to those still awaiting a decision.
	Pending bool
}

func (c CategoryMatch) Empty() bool { return len(c.Kinds) == 0 }

type categoryPattern struct {
	kind models.EntityKind
	re   *regexp.Regexp
}

// categoryPatterns follow models.RoutableKinds so listing and counting use category order.
var categoryPatterns = buildCategoryPatterns(models.RoutableKinds)

func buildCategoryPatterns(kinds []models.EntityKind) []categoryPattern {
	patterns := make([]categoryPattern, 0, len(kinds))
	for _, kind := range kinds {
		patterns = append(patterns, categoryPattern{kind, regexp.MustCompile(namePattern(namesOf(kind)))})
	}
	return patterns
}

// MatchCategories finds every entity kind named in question.
func MatchCategories(question string) CategoryMatch {
	folded := fold(question)
	var m CategoryMatch
	for _, p := range categoryPatterns {
		if p.re.MatchString(folded) {
			m.Kinds = append(m.Kinds, p.kind)
		}
	}
	m.Pending = pendingCue.MatchString(folded)
	return m
}

// RoutingDecision is everything derived from the question before any store access.
type RoutingDecision struct {
	QueryType  QueryType
	Language   Language
	Reference  *ReferenceMatch
	Categories CategoryMatch
}

// Route classifies question and detects its response language.
func Route(question, languageHint string) RoutingDecision {
	d := RoutingDecision{
		QueryType:  Classify(question),
		Language:   DetectLanguage(question, languageHint),
		Categories: MatchCategories(question),
	}
	if ref, ok := ExtractReference(question); ok {
		d.Reference = &ref
	}
	return d
}
