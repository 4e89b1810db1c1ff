package classifier

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/labelworks/labeler/pkg/common/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type stubRemote struct {
	label string
	err   error
}

func (s stubRemote) Classify(context.Context, string) (string, error) {
	return s.label, s.err
}

func TestLabelerUsesRemoteAnswer(t *testing.T) {
	l := NewLabeler(stubRemote{label: "Sports"}, nil)

	if got := l.Label(context.Background(), "anything"); got != "Sports" {
		t.Fatalf("expected Sports, got %q", got)
	}
}

func TestLabelerCleansRemoteAnswer(t *testing.T) {
	l := NewLabeler(stubRemote{label: `"Finance."`}, nil)

	if got := l.Label(context.Background(), "anything"); got != "Finance" {
		t.Fatalf("expected cleaned Finance, got %q", got)
	}
}

func TestLabelerEmptyRemoteAnswerBecomesGeneral(t *testing.T) {
	// The remote call succeeded but the answer cleans to nothing; this is
	// not a failure, so the keyword fallback is not consulted.
	l := NewLabeler(stubRemote{label: "42!?"}, nil)

	if got := l.Label(context.Background(), "stock market rally"); got != GeneralLabel {
		t.Fatalf("expected %q, got %q", GeneralLabel, got)
	}
}

func TestLabelerFallsBackOnRemoteError(t *testing.T) {
	l := NewLabeler(stubRemote{err: errors.New("connection refused")}, nil)

	if got := l.Label(context.Background(), "stock market rally"); got != "Finance" {
		t.Fatalf("expected keyword fallback Finance, got %q", got)
	}
}

func TestLabelerWithoutRemoteUsesFallback(t *testing.T) {
	l := NewLabeler(nil, nil)

	if got := l.Label(context.Background(), "doctor prescribes medicine"); got != "Healthcare" {
		t.Fatalf("expected Healthcare, got %q", got)
	}
}

func TestLabelerNeverReturnsEmptyOrUncleanLabels(t *testing.T) {
	inputs := []string{
		"", "   ", "cricket", "nothing matches here", "Stock market crash!",
		"日本語のテキスト", "a b c d e f",
	}
	labelers := []*Labeler{
		NewLabeler(nil, nil),
		NewLabeler(stubRemote{err: errors.New("down")}, nil),
		NewLabeler(stubRemote{label: "  Mixed-Case Label!  "}, nil),
	}

	for _, l := range labelers {
		for _, text := range inputs {
			got := l.Label(context.Background(), text)
			if got == "" {
				t.Fatalf("empty label for input %q", text)
			}
			for _, r := range got {
				if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == ' ') {
					t.Fatalf("label %q contains %q", got, r)
				}
			}
		}
	}
}

func TestCleanLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Sports", "Sports"},
		{`"Sports."`, "Sports"},
		{"  Current Events  ", "Current Events"},
		{"123!?", ""},
		{"Tech/AI", "TechAI"},
	}
	for _, tc := range cases {
		if got := CleanLabel(tc.in); got != tc.want {
			t.Fatalf("CleanLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
