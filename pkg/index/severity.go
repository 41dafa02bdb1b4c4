package index

import "strings"

// Rule maps a keyword found in an event title to a category and a point
// value. Negative points mark corrective events that pull the index down.
type Rule struct {
	Keyword  string `json:"keyword" yaml:"keyword"`
	Category string `json:"category" yaml:"category"`
	Points   int    `json:"points" yaml:"points"`
}

// Corrective indicates the rule reduces the index.
func (r Rule) Corrective() bool {
	return r.Points < 0
}

// DefaultRules returns the built-in severity rule set.
func DefaultRules() []Rule {
	return []Rule{
		{Keyword: "ending crime and disorder", Category: CategoryCivilRights, Points: 10},
		{Keyword: "export of the american ai technology stack", Category: CategoryForeignPolicy, Points: 5},
		{Keyword: "captive nations week", Category: CategoryPolarization, Points: 4},
		{Keyword: "ban", Category: CategoryCivilRights, Points: 4},
		{Keyword: "tariff", Category: CategoryEconomy, Points: 3},
		{Keyword: "voter suppression", Category: CategoryElections, Points: 7},
		{Keyword: "court ruling overturns", Category: CategoryRuleOfLaw, Points: -5},
		{Keyword: "rights restored", Category: CategoryCivilRights, Points: -6},
		{Keyword: "supreme court blocks", Category: CategoryRuleOfLaw, Points: -6},
		{Keyword: "election safeguards", Category: CategoryElections, Points: -4},
		{Keyword: "freedom of press", Category: CategoryMedia, Points: -3},
		{Keyword: "judicial independence", Category: CategoryJudicial, Points: -5},
		{Keyword: "civil liberties upheld", Category: CategoryCivilRights, Points: -5},
	}
}

// MatchRules returns every rule whose keyword occurs in the title.
// Matching is case-insensitive substring.
func MatchRules(rules []Rule, title string) []Rule {
	t := strings.ToLower(title)
	var out []Rule
	for _, r := range rules {
		if strings.Contains(t, r.Keyword) {
			out = append(out, r)
		}
	}
	return out
}

// Classify returns the strongest matching rule for a title, preferring the
// largest absolute point value, or false when nothing matches.
func Classify(rules []Rule, title string) (Rule, bool) {
	matches := MatchRules(rules, title)
	if len(matches) == 0 {
		return Rule{}, false
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if abs(m.Points) > abs(best.Points) {
			best = m
		}
	}
	return best, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
