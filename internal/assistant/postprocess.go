package assistant

import (
	"regexp"
	"strings"
)

// Each pattern removes one refusal sentence, terminal punctuation included.
// Patterns run on folded text (lowercase, no accents, straight apostrophes).
var refusalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`je\s+(?:ne\s+)?(?:peux|puis)\s+pas\s+acceder[^.!?\n]*[.!?]?`),
	regexp.MustCompile(`je\s+n'ai\s+pas\s+(?:acces|la\s+possibilite\s+d'acceder)[^.!?\n]*[.!?]?`),
	regexp.MustCompile(`je\s+(?:ne\s+)?suis\s+pas\s+en\s+mesure\s+d'acceder[^.!?\n]*[.!?]?`),
	regexp.MustCompile(`en\s+tant\s+qu'\s*(?:ia|intelligence\s+artificielle|assistant\s+virtuel|modele\s+de\s+langage)[^.!?\n]*[.!?]?`),
	regexp.MustCompile(`\bi(?:\s+cannot|\s+can't|\s+can\s+not|\s+am\s+(?:not\s+able|unable)\s+to|'m\s+(?:not\s+able|unable)\s+to)\s+access[^.!?\n]*[.!?]?`),
	regexp.MustCompile(`\bi\s+(?:do\s+not|don't)\s+have\s+(?:direct\s+)?access[^.!?\n]*[.!?]?`),
	regexp.MustCompile(`as\s+an\s+ai\b[^.!?\n]*[.!?]?`),
}

var (
	multiSpace   = regexp.MustCompile(`[ \t]{2,}`)
	bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s`)
)

// PostProcessOptions carries the values PostProcess needs besides the raw text.
type PostProcessOptions struct {
	QueryType QueryType
	Language  Language
	Blocks    []ContextBlock
	// IncludeContextOnEmpty appends the context blocks to the "(no answer)" reply.
	IncludeContextOnEmpty bool
}

// PostProcess cleans a generated answer: refusal sentences are removed, DETAIL answers
// get a label, LIST answers are bulleted, and empty results become a localized marker.
func PostProcess(raw string, opts PostProcessOptions) string {
	lang := opts.Language

	if opts.QueryType == QueryDetail {
		cleaned := cleanText(raw)
		if cleaned == "" {
			cleaned = cleanedEmptyText.in(lang)
		}
		return detailLabel.in(lang) + "\n" + cleaned
	}

	if strings.TrimSpace(raw) == "" {
		answer := noAnswerText.in(lang)
		if opts.IncludeContextOnEmpty && len(opts.Blocks) > 0 {
			answer += "\n" + joinBlocks(opts.Blocks)
		}
		return answer
	}

	cleaned := cleanText(raw)
	if cleaned == "" {
		return cleanedEmptyText.in(lang)
	}
	if opts.QueryType == QueryList {
		cleaned = bulletize(cleaned)
	}
	return cleaned
}

// StripRefusals removes "I cannot access the data" style sentences. Matching ignores
// case and accents; the text that remains is returned as written.
func StripRefusals(text string) string {
	for _, re := range refusalPatterns {
		folded, offsets := foldIndexed(text)
		locs := re.FindAllStringIndex(folded, -1)
		if locs == nil {
			continue
		}
		var b strings.Builder
		prev := 0
		for _, loc := range locs {
			b.WriteString(text[prev:offsets[loc[0]]])
			prev = offsets[loc[1]]
		}
		b.WriteString(text[prev:])
		text = b.String()
	}
	return text
}

func cleanText(text string) string {
	text = StripRefusals(text)
	text = multiSpace.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// bulletize prefixes each non-empty line with "- " unless the text is already a list.
func bulletize(text string) string {
	lines := strings.Split(text, "\n")
	for _, l := range lines {
		if bulletPrefix.MatchString(l) {
			return text
		}
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" {
			continue
		}
		out = append(out, "- "+l)
	}
	return strings.Join(out, "\n")
}
