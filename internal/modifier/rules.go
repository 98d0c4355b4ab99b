package modifier

import (
	"regexp"
	"strconv"
	"strings"
)

// rule is one template: if pattern matches, build turns the submatches
// into modifiers. A build returning false makes the parser try the next
// rule.
type rule struct {
	pattern *regexp.Regexp
	build   func(m []string) ([]Modifier, bool)
}

// rules are evaluated in declaration order; the first rule whose
// pattern matches and whose builder succeeds wins.
var rules = []rule{
	{
		pattern: regexp.MustCompile(`^(minions (?:have|deal) )?([0-9]+)% (increased|reduced|decreased) ([a-z ]+)$`),
		build: func(m []string) ([]Modifier, bool) {
			parts, ok := parseStat(m[4])
			if !ok {
				return nil, false
			}
			return fromParts(parts, Inc, signed(m[2], m[3] != "increased"), minionTags(m[1])), true
		},
	},
	{
		pattern: regexp.MustCompile(`^(minions (?:have|deal) )?([0-9]+)% (increased|reduced|decreased) ([a-z ]+) and ([a-z ]+)$`),
		build: func(m []string) ([]Modifier, bool) {
			first, ok := parseStat(m[4])
			if !ok {
				return nil, false
			}
			second, ok := parseStat(m[5])
			if !ok {
				return nil, false
			}
			amount := signed(m[2], m[3] != "increased")
			tags := minionTags(m[1])
			mods := fromParts(first, Inc, amount, tags)
			return append(mods, fromParts(second, Inc, amount, tags)...), true
		},
	},
	{
		pattern: regexp.MustCompile(`^(minions have )?([+-])?([0-9]+)%? (?:to )?(?:all )?([a-z ]+)$`),
		build: func(m []string) ([]Modifier, bool) {
			parts, ok := parseStat(m[4])
			if !ok {
				return nil, false
			}
			return fromParts(parts, Base, signed(m[3], m[2] == "-"), minionTags(m[1])), true
		},
	},
	{
		pattern: regexp.MustCompile(`^([0-9]+)% more ([a-z ]+)$`),
		build: func(m []string) ([]Modifier, bool) {
			parts, ok := parseStat(m[2])
			if !ok {
				return nil, false
			}
			return fromParts(parts, More, signed(m[1], false), 0), true
		},
	},
	{
		pattern: regexp.MustCompile(`^([0-9]+)% less ([a-z ]+)$`),
		build: func(m []string) ([]Modifier, bool) {
			parts, ok := parseStat(m[2])
			if !ok {
				return nil, false
			}
			return fromParts(parts, More, signed(m[1], true), 0), true
		},
	},
	{
		pattern: regexp.MustCompile(`^\+([0-9]+)%? to ([a-z ]+) and ([a-z ]+)$`),
		build: func(m []string) ([]Modifier, bool) {
			first, ok := parseStatSingle(m[2])
			if !ok {
				return nil, false
			}
			second, ok := parseStatSingle(m[3])
			if !ok {
				return nil, false
			}
			return fromParts([]statPart{first, second}, Base, signed(m[1], false), 0), true
		},
	},
	{
		pattern: regexp.MustCompile(`^\+([0-9]+)%? to ([a-z]+) and ([a-z]+) resistances$`),
		build: func(m []string) ([]Modifier, bool) {
			first, ok := lookupStatName(m[2] + " resistance")
			if !ok {
				return nil, false
			}
			second, ok := lookupStatName(m[3] + " resistance")
			if !ok {
				return nil, false
			}
			amount := signed(m[1], false)
			return []Modifier{
				{Stat: first, Kind: Base, Amount: amount},
				{Stat: second, Kind: Base, Amount: amount},
			}, true
		},
	},
	{
		pattern: regexp.MustCompile(`^adds ([0-9]+) to ([0-9]+) ([a-z ]+)$`),
		build: func(m []string) ([]Modifier, bool) {
			pair, ok := addedDamage[m[3]]
			if !ok {
				return nil, false
			}
			return []Modifier{
				{Stat: pair[0], Kind: Base, Amount: signed(m[1], false)},
				{Stat: pair[1], Kind: Base, Amount: signed(m[2], false)},
			}, true
		},
	},
	{
		pattern: regexp.MustCompile(`^regenerate ([0-9]+) life per second$`),
		build: func(m []string) ([]Modifier, bool) {
			return []Modifier{{Stat: LifeRegeneration, Kind: Base, Amount: signed(m[1], false)}}, true
		},
	},
	{
		pattern: regexp.MustCompile(`^regenerate ([0-9.]+)% of life per second$`),
		build: func(m []string) ([]Modifier, bool) {
			v, ok := parseVal100(m[1])
			if !ok {
				return nil, false
			}
			return []Modifier{{Stat: LifeRegenerationPct, Kind: Base, Amount: v}}, true
		},
	},
	{
		pattern: regexp.MustCompile(`^damage penetrates ([0-9]+)% ([a-z]+) resistance$`),
		build: func(m []string) ([]Modifier, bool) {
			stat, ok := penetration[m[2]]
			if !ok {
				return nil, false
			}
			v, ok := parseVal100(m[1])
			if !ok {
				return nil, false
			}
			return []Modifier{{Stat: stat, Kind: Base, Amount: v}}, true
		},
	},
	{
		pattern: regexp.MustCompile(`^([a-z ]+) becomes (-?[0-9]+)%?$`),
		build: func(m []string) ([]Modifier, bool) {
			parts, ok := parseStat(m[1])
			if !ok {
				return nil, false
			}
			amount, err := strconv.ParseInt(m[2], 10, 64)
			if err != nil {
				return nil, false
			}
			return fromParts(parts, Override, amount, 0), true
		},
	},
}

// fromParts builds one modifier per resolved stat.
func fromParts(parts []statPart, kind Kind, amount int64, extra TagSet) []Modifier {
	mods := make([]Modifier, 0, len(parts))
	for _, p := range parts {
		mods = append(mods, Modifier{
			Stat:        p.stat,
			Kind:        kind,
			Amount:      amount,
			Tags:        p.tags.Union(extra),
			DamageTypes: p.damage,
		})
	}
	return mods
}

func minionTags(prefix string) TagSet {
	if prefix == "" {
		return 0
	}
	return Tags(TagMinion)
}

// signed parses a digit-only capture. Captures come from [0-9]+ groups,
// so only overflow can fail; it yields 0.
func signed(digits string, negate bool) int64 {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	if negate {
		return -v
	}
	return v
}

// parseVal100 parses a decimal with at most two fractional digits into
// hundredths: "1.75" -> 175, "2" -> 200.
func parseVal100(s string) (int64, bool) {
	whole, frac, found := strings.Cut(s, ".")
	if found && (frac == "" || len(frac) > 2 || strings.Contains(frac, ".")) {
		return 0, false
	}
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, false
	}
	var f int64
	if frac != "" {
		f, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, false
		}
		if len(frac) == 1 {
			f *= 10
		}
	}
	return w*100 + f, true
}
