package ai

import (
	"testing"

	"github.com/ultroi/sixbits/internal/store"
)

func msg(sender, content string) store.ChatMessage {
	return store.ChatMessage{Sender: sender, Content: content}
}

func TestSimilarExchangesRanksIdenticalFirst(t *testing.T) {
	history := []store.ChatMessage{
		msg(store.SenderUser, "which colleges offer engineering in srinagar"),
		msg(store.SenderBot, "several colleges offer engineering programs"),
		msg(store.SenderUser, "when are neet exam dates announced"),
		msg(store.SenderBot, "neet dates are usually announced in december"),
	}

	got := SimilarExchanges("which colleges offer engineering courses in srinagar", history)
	if len(got) != 1 {
		t.Fatalf("got %d exchanges, want 1", len(got))
	}
	if got[0].Question != "which colleges offer engineering in srinagar" {
		t.Fatalf("wrong exchange ranked first: %q", got[0].Question)
	}
	if got[0].Answer != "several colleges offer engineering programs" {
		t.Fatalf("exchange must carry the following reply, got %q", got[0].Answer)
	}
	if got[0].Score <= similarityThreshold {
		t.Fatalf("score %v not above threshold", got[0].Score)
	}
}

func TestSimilarExchangesExactTokensScoreOne(t *testing.T) {
	history := []store.ChatMessage{
		msg(store.SenderUser, "best commerce colleges jammu"),
		msg(store.SenderBot, "here are some options"),
	}
	got := SimilarExchanges("jammu best colleges commerce", history)
	if len(got) != 1 || got[0].Score != 1.0 {
		t.Fatalf("identical token sets must score 1.0, got %+v", got)
	}
}

func TestSimilarExchangesSkipsBotAndSelf(t *testing.T) {
	history := []store.ChatMessage{
		msg(store.SenderBot, "scholarship deadlines for students"),
		msg(store.SenderUser, "scholarship deadlines for students"),
	}
	got := SimilarExchanges("scholarship deadlines for students", history)
	if len(got) != 0 {
		t.Fatalf("bot turns and the current message itself must be skipped, got %+v", got)
	}
}

func TestSimilarExchangesCapsAtThree(t *testing.T) {
	var history []store.ChatMessage
	for i := 0; i < 5; i++ {
		history = append(history,
			msg(store.SenderUser, "scholarship forms deadline college"),
			msg(store.SenderBot, "reply"),
		)
	}
	got := SimilarExchanges("college scholarship forms deadline today", history)
	if len(got) != maxSimilarExchanges {
		t.Fatalf("got %d exchanges, want %d", len(got), maxSimilarExchanges)
	}
}

func TestSimilarExchangesBelowThreshold(t *testing.T) {
	history := []store.ChatMessage{
		msg(store.SenderUser, "tell me about vocational courses"),
		msg(store.SenderBot, "sure"),
	}
	got := SimilarExchanges("when is the jee mains registration window", history)
	if len(got) != 0 {
		t.Fatalf("unrelated questions must not match, got %+v", got)
	}
}
