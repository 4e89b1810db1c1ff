package classifier

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestKeywordClassifierMatchesFirstGroup(t *testing.T) {
	c := NewKeywordClassifier(DefaultRules())

	cases := []struct {
		text string
		want string
	}{
		{"Team wins the cricket match", "Sports"},
		{"Government announces new election policy", "Politics"},
		{"New AI software for computers", "Technology"},
		{"Stock market hits record high", "Finance"},
		{"Best recipe for Italian cuisine", "Food"},
		{"Doctor recommends covid vaccine", "Healthcare"},
		{"Book your flight and hotel now", "Travel"},
		{"Random unrelated sentence about nothing notable", "General"},
	}

	for _, tc := range cases {
		got, err := c.Classify(context.Background(), tc.text)
		if err != nil {
			t.Fatalf("classify %q: %v", tc.text, err)
		}
		if got != tc.want {
			t.Fatalf("classify %q: got %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestKeywordClassifierRuleOrderIsTheTieBreak(t *testing.T) {
	c := NewKeywordClassifier(DefaultRules())

	// Mentions both an election and a football match; Sports is listed first.
	got, err := c.Classify(context.Background(), "election coverage interrupts the football match")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got != "Sports" {
		t.Fatalf("expected Sports to win the tie-break, got %q", got)
	}
}

func TestKeywordClassifierIsCaseInsensitive(t *testing.T) {
	c := NewKeywordClassifier(DefaultRules())

	got, err := c.Classify(context.Background(), "CRICKET SEASON OPENS")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got != "Sports" {
		t.Fatalf("expected Sports, got %q", got)
	}
}

func TestLoadRulesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := []byte(`rules:
  - category: Gardening
    keywords: [soil, compost]
  - category: Astronomy
    keywords: [telescope]
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}

	rs, err := LoadRules(path)
	if err != nil {
		t.Fatalf("loading rules: %v", err)
	}
	if len(rs.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rs.Rules))
	}

	c := NewKeywordClassifier(rs)
	got, _ := c.Classify(context.Background(), "turning the compost heap")
	if got != "Gardening" {
		t.Fatalf("expected Gardening, got %q", got)
	}
}

func TestLoadRulesEmptyPathUsesDefaults(t *testing.T) {
	rs, err := LoadRules("")
	if err != nil {
		t.Fatalf("loading default rules: %v", err)
	}
	if len(rs.Rules) == 0 {
		t.Fatal("expected built-in rules")
	}
	if rs.Rules[0].Category != "Sports" {
		t.Fatalf("expected Sports first, got %q", rs.Rules[0].Category)
	}
}

func TestLoadRulesMissingFileFallsBackToDefaults(t *testing.T) {
	rs, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if len(rs.Rules) == 0 {
		t.Fatal("expected defaults alongside the error")
	}
}

func TestLoadRulesMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("rules: [this is: not: valid"), 0o600); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}

	rs, err := LoadRules(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if len(rs.Rules) == 0 {
		t.Fatal("expected defaults alongside the error")
	}

	// A classifier built from the returned ruleset must still label with
	// the built-in table, not answer General for everything.
	c := NewKeywordClassifier(rs)
	got, _ := c.Classify(context.Background(), "Team wins the cricket match")
	if got != "Sports" {
		t.Fatalf("expected Sports from the default rules, got %q", got)
	}
}

func TestLoadRulesEmptyRulesFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("rules: []\n"), 0o600); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}

	rs, err := LoadRules(path)
	if err == nil {
		t.Fatal("expected an error for an empty ruleset")
	}
	if len(rs.Rules) == 0 {
		t.Fatal("expected defaults alongside the error")
	}
}
