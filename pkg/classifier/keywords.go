package classifier

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GeneralLabel is returned when no keyword rule matches.
const GeneralLabel = "General"

type Rule struct {
	Category string   `yaml:"category" json:"category"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

type RuleSet struct {
	Rules []Rule `yaml:"rules" json:"rules"`
}

// LoadRules reads a keyword ruleset from a YAML file. An empty path yields
// the built-in defaults; a missing, malformed, or empty file also returns
// the defaults alongside the error so a bad deployment still labels.
func LoadRules(path string) (RuleSet, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultRules(), err
	}

	var rs RuleSet
	if err := yaml.Unmarshal(content, &rs); err != nil {
		return DefaultRules(), err
	}

	if len(rs.Rules) == 0 {
		return DefaultRules(), errors.New("no keyword rules configured")
	}

	return rs, nil
}

// DefaultRules is the compiled-in keyword table. Rule order is the
// tie-break: the first matching group wins.
func DefaultRules() RuleSet {
	return RuleSet{Rules: []Rule{
		{Category: "Sports", Keywords: []string{"cricket", "football", "tennis", "match", "score"}},
		{Category: "Politics", Keywords: []string{"election", "government", "vote", "policy"}},
		{Category: "Entertainment", Keywords: []string{"movie", "music", "celebrity", "film"}},
		{Category: "Finance", Keywords: []string{"stock", "market", "finance", "bank"}},
		{Category: "Technology", Keywords: []string{"app", "software", "ai", "technology", "computer"}},
		{Category: "Food", Keywords: []string{"recipe", "restaurant", "food", "cuisine"}},
		{Category: "Healthcare", Keywords: []string{"health", "doctor", "medicine", "covid"}},
		{Category: "Travel", Keywords: []string{"travel", "flight", "hotel", "tour"}},
	}}
}

// KeywordClassifier is the deterministic fallback: lowercase substring
// matching against an ordered rule table.
type KeywordClassifier struct {
	rules []Rule
}

func NewKeywordClassifier(rs RuleSet) *KeywordClassifier {
	return &KeywordClassifier{rules: rs.Rules}
}

func (c *KeywordClassifier) Classify(_ context.Context, text string) (string, error) {
	lowered := strings.ToLower(text)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(lowered, kw) {
				return rule.Category, nil
			}
		}
	}
	return GeneralLabel, nil
}
