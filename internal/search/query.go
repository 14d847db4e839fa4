package search

import (
	"strings"
	"unicode"
)

const maxVariants = 8

// Synonyms maps a normalised role phrase to the phrasings postings commonly
// use for it.
var Synonyms = map[string][]string{
	"frontend":  {"front end", "frontend developer", "ui engineer"},
	"backend":   {"back end", "server side", "backend engineer"},
	"fullstack": {"full stack", "fullstack developer"},
	"devops":    {"site reliability", "sre", "platform engineer"},
	"golang":    {"go developer", "go engineer"},
	"ml":        {"machine learning", "ai engineer"},
	"qa":        {"quality assurance", "test engineer"},
	"ux":        {"ui ux", "product designer"},
}

// Normalize lowercases the query, drops punctuation and collapses
// whitespace. "Back-End,  Go!" becomes "backend go".
func Normalize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range strings.ToLower(input) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Expand returns the normalised query followed by its synonym variants. The
// leading word (or two) is swapped for each synonym while the rest of the
// query is kept, so "frontend jakarta" also yields "front end jakarta" and
// "front end" also yields "frontend". Every variant is normalised, so it can
// be matched against text passed through Normalize or its SQL counterpart.
func Expand(input string) []string {
	q := Normalize(input)
	if q == "" {
		return nil
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		if len(out) == maxVariants {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	add(q)

	words := strings.Fields(q)
	for n := 1; n <= 2 && n <= len(words); n++ {
		head := strings.Join(words[:n], "")
		rest := strings.Join(words[n:], " ")
		syns := Synonyms[head]
		if len(syns) == 0 {
			continue
		}
		for _, v := range append([]string{head}, syns...) {
			v = Normalize(v)
			if rest != "" {
				v += " " + rest
			}
			add(v)
		}
	}
	return out
}
