package classifier

import (
	"context"
	"strings"

	"github.com/labelworks/labeler/pkg/common/logger"
)

// Classifier assigns a short category label to a text snippet.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Labeler composes a remote classifier with the deterministic keyword
// fallback. Label never fails: any remote error is swallowed and the
// fallback answer is used instead.
type Labeler struct {
	remote   Classifier
	fallback *KeywordClassifier
}

// NewLabeler builds the try/fallback composition. remote may be nil, in
// which case every call goes straight to the keyword fallback.
func NewLabeler(remote Classifier, fallback *KeywordClassifier) *Labeler {
	if fallback == nil {
		fallback = NewKeywordClassifier(DefaultRules())
	}
	return &Labeler{remote: remote, fallback: fallback}
}

func (l *Labeler) Label(ctx context.Context, text string) string {
	if l.remote != nil {
		raw, err := l.remote.Classify(ctx, text)
		if err == nil {
			if label := CleanLabel(raw); label != "" {
				return label
			}
			// The model answered but left nothing usable after cleanup.
			return GeneralLabel
		}
		logger.Log.WithError(err).Warn("remote classification failed, using keyword fallback")
	}

	label, _ := l.fallback.Classify(ctx, text)
	return label
}

// CleanLabel strips everything that is not an ASCII letter or a space and
// trims the result. Model output routinely arrives with quotes, punctuation
// or trailing periods.
func CleanLabel(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == ' ' {
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(cleaned)
}
