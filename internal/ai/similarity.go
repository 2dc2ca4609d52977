package ai

import (
	"sort"
	"strings"

	"github.com/ultroi/sixbits/internal/store"
)

// Similarity knobs. Tokens of length <= minTokenLen carry no signal.
const (
	minTokenLen         = 2
	similarityThreshold = 0.3
	maxSimilarExchanges = 3
)

// Exchange pairs a prior user message with the reply that followed it.
type Exchange struct {
	Question string
	Answer   string
	Score    float64
}

// SimilarExchanges scans a session's prior messages for user turns similar to
// the current message and returns up to three, each with the message that
// immediately followed (empty when the candidate was the last message).
// The result is advisory context for the AI prompt.
func SimilarExchanges(current string, history []store.ChatMessage) []Exchange {
	cur := tokenSet(current)
	if len(cur) == 0 {
		return nil
	}

	var found []Exchange
	for i, m := range history {
		if m.Sender != store.SenderUser || m.Content == current {
			continue
		}
		cand := tokenSet(m.Content)
		score := overlap(cur, cand)
		if score <= similarityThreshold {
			continue
		}
		answer := ""
		if i+1 < len(history) {
			answer = history[i+1].Content
		}
		found = append(found, Exchange{Question: m.Content, Answer: answer, Score: score})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].Score > found[j].Score })
	if len(found) > maxSimilarExchanges {
		found = found[:maxSimilarExchanges]
	}
	return found
}

// overlap computes |intersection| / max(|a|, |b|).
func overlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for t := range a {
		if _, ok := b[t]; ok {
			common++
		}
	}
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	return float64(common) / float64(max)
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range strings.Fields(strings.ToLower(s)) {
		if len(t) > minTokenLen {
			out[t] = struct{}{}
		}
	}
	return out
}
