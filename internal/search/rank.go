package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/texttheater/golang-levenshtein/levenshtein"
	"github.com/xrash/smetrics"
)

const (
	// MatchThreshold is the absolute cutoff; candidates scoring at or below
	// it are dropped regardless of how well the best candidate did.
	MatchThreshold = 0.3

	// Queries up to this many runes are scored with Jaro-Winkler.
	shortQueryRunes = 3

	substringBonus = 0.5

	jaroWinklerBoostThreshold = 0.7
	jaroWinklerPrefixSize     = 4
)

// ScoredIndex is a candidate's original index with its score for one query.
type ScoredIndex struct {
	Index uint32
	Score float64
}

// Keys is the read side of a candidate store the ranker needs.
type Keys interface {
	Len() int
	KeyOf(i int) (string, error)
}

// Ranker scores every key against a query. It keeps its result buffer
// between calls, so a returned slice is only valid until the next Rank.
type Ranker struct {
	buf []ScoredIndex
}

// NewRanker creates a ranker sized for sizeHint candidates.
func NewRanker(sizeHint int) *Ranker {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Ranker{buf: make([]ScoredIndex, 0, sizeHint)}
}

// Rank returns the candidates matching query, best first. An empty query
// is the browse ranking: every index in original order with a zero score.
// Equal scores keep original order.
func (r *Ranker) Rank(query string, keys Keys) []ScoredIndex {
	n := keys.Len()
	out := r.buf[:0]
	if cap(out) < n {
		out = make([]ScoredIndex, 0, n)
	}

	if query == "" {
		for i := 0; i < n; i++ {
			out = append(out, ScoredIndex{Index: uint32(i)})
		}
		r.buf = out
		return out
	}

	q := newQuery(query)
	for i := 0; i < n; i++ {
		key, err := keys.KeyOf(i)
		if err != nil {
			continue
		}
		if score := q.score(key); score > MatchThreshold {
			out = append(out, ScoredIndex{Index: uint32(i), Score: score})
		}
	}

	slices.SortStableFunc(out, func(a, b ScoredIndex) int {
		return cmp.Compare(b.Score, a.Score)
	})
	r.buf = out
	return out
}

// Indices appends the original indices of scored to dst.
func Indices(dst []uint32, scored []ScoredIndex) []uint32 {
	for _, s := range scored {
		dst = append(dst, s.Index)
	}
	return dst
}

type query struct {
	text  string
	runes []rune
	short bool
	ascii bool
	// folded is the short query with one byte per rune, see foldKey.
	folded string
}

func newQuery(text string) query {
	lower := strings.ToLower(text)
	q := query{
		text:  lower,
		runes: []rune(lower),
		ascii: isASCII(lower),
	}
	q.short = len(q.runes) <= shortQueryRunes
	if q.short {
		q.folded = string(q.foldKey(lower))
	}
	return q
}

func (q query) score(key string) float64 {
	if q.short {
		return q.jaroWinkler(key)
	}
	score := normalizedLevenshtein([]rune(key), q.runes)
	if strings.Contains(key, q.text) {
		score += substringBonus
	}
	return score
}

// jaroWinkler compares per rune. smetrics indexes bytes, so non-ASCII input
// goes through foldKey first.
func (q query) jaroWinkler(key string) float64 {
	if q.ascii && isASCII(key) {
		return smetrics.JaroWinkler(key, q.text, jaroWinklerBoostThreshold, jaroWinklerPrefixSize)
	}
	return smetrics.JaroWinkler(string(q.foldKey(key)), q.folded, jaroWinklerBoostThreshold, jaroWinklerPrefixSize)
}

// foldKey maps each rune of s to one byte: a query rune becomes one plus
// the position of its first occurrence in the query, any other rune 0. Jaro-Winkler only
// tests runes for equality, so scores over the folded bytes equal scores
// over the runes.
func (q query) foldKey(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, q.foldRune(r))
	}
	return out
}

func (q query) foldRune(r rune) byte {
	for i, qr := range q.runes {
		if qr == r {
			// first occurrence, so repeated query runes share a byte
			return byte(i + 1)
		}
	}
	return 0
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func normalizedLevenshtein(a, b []rune) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	distance := levenshtein.DistanceForStrings(a, b, levenshtein.DefaultOptionsWithSub)
	return 1 - float64(distance)/float64(longest)
}
