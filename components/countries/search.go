package countries

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-phoneform/pkg/form"
)

// Search filters choices by query. A query matches the region code, the
// calling code ("33" or "+33") or any part of the country name; exact region
// and calling-code matches rank first, then name prefixes, then the rest in
// their original order.
func Search(choices []form.CountryChoice, query string, limit int, opts Options) []form.CountryChoice {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(choices) <= limit {
				return append([]form.CountryChoice{}, choices...)
			}
			return append([]form.CountryChoice{}, choices[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	code := strings.TrimPrefix(q, "+")
	matches := make([]matchedChoice, 0, 16)
	for _, choice := range choices {
		name := strings.ToLower(choice.Name)
		rank := -1
		switch {
		case strings.EqualFold(choice.Region, query), code == strconv.Itoa(choice.CallingCode):
			rank = 0
		case strings.HasPrefix(name, q):
			rank = 1
		case strings.Contains(name, q):
			rank = 2
		}
		if rank < 0 {
			continue
		}
		matches = append(matches, matchedChoice{choice: choice, rank: rank})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]form.CountryChoice, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.choice)
	}
	return out
}

func SearchOptions(choices []form.CountryChoice, query string, limit int, opts Options) []Option {
	results := Search(choices, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, choice := range results {
		out = append(out, Option{Value: choice.Region, Label: choice.Label})
	}
	return out
}

type matchedChoice struct {
	choice form.CountryChoice
	rank   int
}
