package ai

import (
	"regexp"
	"strings"
	"unicode"
)

// Word cap applied to formatted replies.
const (
	maxWords  = 450
	keepWords = 420
)

var (
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	spacedStarsRe  = regexp.MustCompile(`\*[ \t]+\*`)
	starRunRe      = regexp.MustCompile(`\*{3,}`)
	strayStarRe    = regexp.MustCompile(`([^\s*])[ \t]\*[ \t]`)
	boldTrimRe     = regexp.MustCompile(`\*\*[ \t]*([^*\n]+?)[ \t]*\*\*`)
	bulletStarRe   = regexp.MustCompile(`(?m)^([ \t]*)\*[ \t]*([^*\s])`)
	bulletSpaceRe  = regexp.MustCompile(`(?m)^([ \t]*)-[ \t]*([^\s-])`)
	headingRe      = regexp.MustCompile(`(?m)^(#{1,6})[ \t]*([^#\s])`)
	orderedRe      = regexp.MustCompile(`(?m)^([ \t]*\d+)\.[ \t]*(\S)`)
	multiSpaceRe   = regexp.MustCompile(`[ \t]{2,}`)
)

// Filler phrases stripped from AI output. Sentence openers ("So,", "Anyway,")
// only match at the start of a line so ordinary prose survives.
var fillerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwell,?[ \t]+(?:to be honest|let me think|you know),?[ \t]*`),
	regexp.MustCompile(`(?i)\bi would say that[ \t]*`),
	regexp.MustCompile(`(?i)\bin my opinion,?[ \t]*`),
	regexp.MustCompile(`(?i)\bbasically,?[ \t]*`),
	regexp.MustCompile(`(?i)\bactually,?[ \t]*`),
	regexp.MustCompile(`(?im)^so,[ \t]*`),
	regexp.MustCompile(`(?im)^anyway,[ \t]*`),
	regexp.MustCompile(`(?i)\bas an (?:ai|assistant),?[ \t]*`),
}

// FormatResponse normalizes raw AI text into clean, length-bounded markdown.
// The cleanup guarantees consistent chat output regardless of which provider
// answered. Every transformation is deterministic and the whole pipeline is
// idempotent.
func FormatResponse(raw string) string {
	s := raw

	// Line endings, then collapse runs of blank lines to one blank line.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = multiNewlineRe.ReplaceAllString(s, "\n\n")

	// Canonicalize asterisks: "* *" sequences and runs of 3+ stars become a
	// double-star bold marker. Iterate to a fixpoint so mixed runs converge.
	for {
		prev := s
		s = spacedStarsRe.ReplaceAllString(s, "**")
		s = starRunRe.ReplaceAllString(s, "**")
		if s == prev {
			break
		}
	}
	s = strayStarRe.ReplaceAllString(s, "$1 ")
	s = balanceBold(s)
	s = boldTrimRe.ReplaceAllString(s, "**$1**")

	// Bullets: leading "*" becomes "-", exactly one space after the dash.
	s = bulletStarRe.ReplaceAllString(s, "$1- $2")
	s = bulletSpaceRe.ReplaceAllString(s, "$1- $2")

	// One space after heading markers and ordered-list dots.
	s = headingRe.ReplaceAllString(s, "$1 $2")
	s = orderedRe.ReplaceAllString(s, "$1. $2")

	for _, re := range fillerRes {
		s = re.ReplaceAllString(s, "")
	}

	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = capitalizeParagraphs(s)
	s = truncateWords(s)
	return strings.TrimSpace(s)
}

// balanceBold closes a bold marker left dangling on a line that opens with
// one, so "** Point" renders as bold instead of leaking raw asterisks.
func balanceBold(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "**") && strings.Count(line, "**")%2 == 1 {
			lines[i] = strings.TrimRight(line, " \t") + "**"
		}
	}
	return strings.Join(lines, "\n")
}

// capitalizeParagraphs upper-cases the first visible character of each
// paragraph when it is a lowercase letter. Markdown markers are left alone.
func capitalizeParagraphs(s string) string {
	paras := strings.Split(s, "\n\n")
	for i, p := range paras {
		runes := []rune(p)
		for j, r := range runes {
			if unicode.IsSpace(r) {
				continue
			}
			if unicode.IsLower(r) {
				runes[j] = unicode.ToUpper(r)
				paras[i] = string(runes)
			}
			break
		}
	}
	return strings.Join(paras, "\n\n")
}

// truncateWords caps the reply at maxWords; over the cap, the first keepWords
// words survive and an ellipsis marker is appended on its own paragraph.
func truncateWords(s string) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:keepWords], " ") + "\n\n..."
}
