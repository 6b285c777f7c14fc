// Package tracking mints the public identifiers residents use to follow up on a complaint.
package tracking

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	DefaultPrefix      = "ALE-5"
	DefaultMaxAttempts = 16
	SuffixLength       = 5

	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// largest multiple of len(alphabet) below 256; bytes above it are rejected to keep the draw uniform
	rejectionBound = 252
)

var ErrExhausted = errors.New("tracking id attempts exhausted")

// Oracle answers whether an identifier is already taken.
type Oracle interface {
	Exists(ctx context.Context, trackingID string) (bool, error)
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(ctx context.Context, trackingID string) (bool, error)

func (f OracleFunc) Exists(ctx context.Context, trackingID string) (bool, error) {
	return f(ctx, trackingID)
}

type Generator struct {
	prefix      string
	maxAttempts int
	random      io.Reader
	pattern     *regexp.Regexp
}

type Option func(*Generator)

// WithRandom replaces crypto/rand as the entropy source.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		g.random = r
	}
}

func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func NewGenerator(prefix string, opts ...Option) *Generator {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultPrefix
	}
	g := &Generator{
		prefix:      prefix,
		maxAttempts: DefaultMaxAttempts,
		random:      rand.Reader,
		pattern:     regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-[A-Z0-9]{5}$`),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Prefix() string {
	return g.prefix
}

// Generate draws identifiers until the oracle reports one as free.
func (g *Generator) Generate(ctx context.Context, oracle Oracle) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate, err := g.candidate()
		if err != nil {
			return "", err
		}
		taken, err := oracle.Exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check tracking id: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrExhausted, g.maxAttempts)
}

func (g *Generator) candidate() (string, error) {
	suffix := make([]byte, 0, SuffixLength)
	buf := make([]byte, SuffixLength*2)
	for len(suffix) < SuffixLength {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		for _, b := range buf {
			if b >= rejectionBound {
				continue
			}
			suffix = append(suffix, alphabet[int(b)%len(alphabet)])
			if len(suffix) == SuffixLength {
				break
			}
		}
	}
	return g.prefix + "-" + string(suffix), nil
}

// Valid reports whether id has this generator's shape. Case is ignored.
func (g *Generator) Valid(id string) bool {
	return g.pattern.MatchString(Normalize(id))
}

// Normalize trims user input and upper-cases it for comparison.
func Normalize(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
