package store

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FuzzyThreshold is the minimum Jaro-Winkler similarity for a fuzzy name match.
const FuzzyThreshold = 0.85

// SearchOptions narrows a snapshot search.
type SearchOptions struct {
	Favorites bool
	Limit     int
}

// Search finds snapshots whose name, abbreviation, title, suffix,
// description or tags contain query, ignoring case. When nothing matches
// it falls back to fuzzy name matching. An empty query lists everything.
func (s *Store) Search(query string, opts SearchOptions) ([]*Snapshot, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(Filter{Favorites: opts.Favorites, Limit: opts.Limit})
	}

	where := `(name LIKE ? ESCAPE '\' OR abbreviation LIKE ? ESCAPE '\' OR title LIKE ? ESCAPE '\'
		OR suffix LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\')`
	if opts.Favorites {
		where += " AND favorite = 1"
	}
	pattern := "%" + escapeLike(query) + "%"
	args := []any{pattern, pattern, pattern, pattern, pattern, pattern}

	q := "SELECT " + snapshotColumns + " FROM snapshots WHERE " + where + " ORDER BY name COLLATE NOCASE"
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []*Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		all, err := s.List(Filter{Favorites: opts.Favorites})
		if err != nil {
			return nil, err
		}
		results = fuzzyMatch(query, all)
	}
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// Suggest returns snapshot names similar to name, best first.
func (s *Store) Suggest(name string, limit int) ([]string, error) {
	all, err := s.List(Filter{})
	if err != nil {
		return nil, err
	}
	matches := fuzzyMatch(name, all)
	var names []string
	for _, m := range matches {
		if limit > 0 && len(names) == limit {
			break
		}
		names = append(names, m.Name)
	}
	return names, nil
}

func fuzzyMatch(query string, candidates []*Snapshot) []*Snapshot {
	q := foldName(query)
	if q == "" {
		return nil
	}

	type scored struct {
		snap  *Snapshot
		score float32
	}
	var matches []scored
	for _, c := range candidates {
		score := edlib.JaroWinklerSimilarity(q, foldName(c.Name))
		if score >= FuzzyThreshold {
			matches = append(matches, scored{c, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	out := make([]*Snapshot, len(matches))
	for i, m := range matches {
		out[i] = m.snap
	}
	return out
}

// foldName lowercases s, strips accents and treats separators as spaces.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	folded = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == '.' {
			return ' '
		}
		return r
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
