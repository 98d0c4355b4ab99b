package modifier

import (
	"log/slog"
	"strings"
)

// Parser turns modifier lines into Modifier records.
// A Parser is safe for concurrent use when its Cache is.
type Parser struct {
	cache *Cache
}

// NewParser creates a parser backed by cache. A nil cache disables
// memoization.
func NewParser(cache *Cache) *Parser {
	return &Parser{cache: cache}
}

// Parse parses a single modifier line. It returns false when no template
// matches; on success the slice holds at least one modifier, each
// stamped with src. Returned modifiers are owned by the caller.
func (p *Parser) Parse(text string, src Source) ([]Modifier, bool) {
	var (
		mods []Modifier
		ok   bool
	)
	if p.cache != nil {
		e := p.cache.load(text, func() ([]Modifier, bool) { return parse(text) })
		mods, ok = CloneAll(e.mods), e.ok
	} else {
		mods, ok = parse(text)
	}
	if !ok {
		return nil, false
	}
	for i := range mods {
		mods[i].Source = src
	}
	return mods, true
}

// ParseLines parses every non-empty line of text and concatenates the
// results. Lines that fail to parse contribute nothing.
func (p *Parser) ParseLines(text string, src Source) []Modifier {
	var out []Modifier
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if mods, ok := p.Parse(line, src); ok {
			out = append(out, mods...)
		}
	}
	return out
}

func parse(text string) ([]Modifier, bool) {
	rest, tr := stripEndings(strings.ToLower(text))
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(rest)
		if m == nil {
			continue
		}
		mods, ok := r.build(m)
		if !ok || len(mods) == 0 {
			continue
		}
		tr.apply(mods)
		return mods, true
	}
	slog.Debug("modifier parse failed", "text", text)
	return nil, false
}
