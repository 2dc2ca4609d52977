package news

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
)

// Region phrase anchoring the first, strictest fetch stage.
const regionPhrase = "Jammu and Kashmir"

// Education keywords matched against articles at every stage.
var educationKeywords = []string{
	"admission", "university", "college", "scholarship", "exam", "result",
	"counselling", "NEET", "JEE", "CUET", "education", "school", "board",
}

// Preferred sources. Matching is a plain substring test against the article
// URL or source name; the whitelist narrows results but never empties them.
var domainWhitelist = []string{
	"thehindu.com", "indianexpress.com", "timesofindia", "hindustantimes.com",
	"ndtv.com", "greaterkashmir.com", "risingkashmir.com", "tribuneindia.com",
	"telegraphindia.com", "educationtimes.com",
}

var keywordWordRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(educationKeywords, "|") + `)\b`)

const defaultFetchPageSize = 12

// Aggregator serves education-relevant headlines with a one-hour cache and
// three progressively relaxed fetch strategies.
type Aggregator struct {
	Provider Provider
	Cache    *Cache
	Logger   *log.Logger

	pageSize int
}

func NewAggregator(provider Provider, cache *Cache, pageSize int, logger *log.Logger) *Aggregator {
	if pageSize <= 0 {
		pageSize = defaultFetchPageSize
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[NEWS] ", log.LstdFlags)
	}
	return &Aggregator{Provider: provider, Cache: cache, Logger: logger, pageSize: pageSize}
}

func cacheKey(limit int, relaxed bool) string {
	r := 0
	if relaxed {
		r = 1
	}
	return fmt.Sprintf("%d_%d", limit, r)
}

// TopHeadlines returns up to limit education news articles. limit is clamped
// to [1,5]. With relaxed set, the generic fallback stage returns unfiltered
// articles rather than an empty set.
func (a *Aggregator) TopHeadlines(ctx context.Context, limit int, relaxed bool) ([]Article, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 5 {
		limit = 5
	}
	key := cacheKey(limit, relaxed)

	if cached, ok := a.Cache.Get(key); ok {
		cacheHits.Inc()
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached, nil
	}
	cacheMisses.Inc()

	// An all-stages fetch failure surfaces as an error and is never cached,
	// so a recovered provider is consulted on the next request. Only a
	// successful fetch whose filter keeps nothing caches an empty set.
	chosen, err := a.fetchStages(ctx, relaxed)
	if err != nil {
		return nil, err
	}
	if chosen == nil {
		chosen = []Article{}
	}
	if len(chosen) > limit {
		chosen = chosen[:limit]
	}
	a.Cache.Put(key, chosen)
	return chosen, nil
}

// fetchStages walks the three strategies in order; a provider failure at the
// first two stages falls through to the next, a failure at the final stage
// means no stage produced a result and is returned as an error.
func (a *Aggregator) fetchStages(ctx context.Context, relaxed bool) ([]Article, error) {
	keywordClause := strings.Join(educationKeywords, " OR ")

	// Region-first: region phrase AND any education keyword.
	articles, err := a.Provider.Everything(ctx, Query{
		Q:        fmt.Sprintf("%q AND (%s)", regionPhrase, keywordClause),
		Language: "en",
		SortBy:   "publishedAt",
		PageSize: a.pageSize,
	})
	if err != nil {
		fetchFailures.Inc()
		a.Logger.Printf("region query failed: %v", err)
	} else if kept := filterArticles(articles); len(kept) > 0 {
		return kept, nil
	}

	// Title-only fallback: same keywords restricted to headlines.
	articles, err = a.Provider.Everything(ctx, Query{
		QInTitle: keywordClause,
		Language: "en",
		SortBy:   "publishedAt",
		PageSize: a.pageSize,
	})
	if err != nil {
		fetchFailures.Inc()
		a.Logger.Printf("title query failed: %v", err)
	} else if kept := filterArticles(articles); len(kept) > 0 {
		return kept, nil
	}

	// Generic fallback.
	articles, err = a.Provider.Everything(ctx, Query{
		Q:        "education",
		Language: "en",
		SortBy:   "publishedAt",
		PageSize: a.pageSize,
	})
	if err != nil {
		fetchFailures.Inc()
		a.Logger.Printf("generic query failed: %v", err)
		return nil, fmt.Errorf("all news fetch stages failed: %w", err)
	}
	kept := filterArticles(articles)
	if len(kept) == 0 && relaxed {
		return articles, nil
	}
	return kept, nil
}

// filterArticles keeps education-relevant articles. Headline relevance is
// stricter than full-text relevance: whole-word keyword matches in the title
// win; only when no title matches exist does substring matching across
// title+description+content apply. Within either tier, whitelist-matching
// articles are preferred when any exist.
func filterArticles(articles []Article) []Article {
	var titleMatches []Article
	for _, art := range articles {
		if keywordWordRe.MatchString(art.Title) {
			titleMatches = append(titleMatches, art)
		}
	}
	if len(titleMatches) > 0 {
		return preferWhitelisted(titleMatches)
	}

	var substrMatches []Article
	for _, art := range articles {
		haystack := strings.ToLower(art.Title + " " + art.Description + " " + art.Content)
		for _, kw := range educationKeywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				substrMatches = append(substrMatches, art)
				break
			}
		}
	}
	return preferWhitelisted(substrMatches)
}

func preferWhitelisted(articles []Article) []Article {
	var whitelisted []Article
	for _, art := range articles {
		if onWhitelist(art) {
			whitelisted = append(whitelisted, art)
		}
	}
	if len(whitelisted) > 0 {
		return whitelisted
	}
	return articles
}

func onWhitelist(art Article) bool {
	u := strings.ToLower(art.URL)
	src := strings.ToLower(art.Source.Name)
	for _, d := range domainWhitelist {
		if strings.Contains(u, d) || strings.Contains(src, d) {
			return true
		}
	}
	return false
}
