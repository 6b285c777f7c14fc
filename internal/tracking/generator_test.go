package tracking_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-service/internal/tracking"
)

var idPattern = regexp.MustCompile(`^ALE-5-[A-Z0-9]{5}$`)

type setOracle map[string]bool

func (s setOracle) Exists(_ context.Context, id string) (bool, error) {
	return s[id], nil
}

// repeatReader yields the same byte forever.
type repeatReader byte

func (r repeatReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r)
	}
	return len(p), nil
}

func TestGenerate_Format(t *testing.T) {
	g := tracking.NewGenerator("")
	id, err := g.Generate(context.Background(), setOracle{})
	require.NoError(t, err)
	assert.Regexp(t, idPattern, id)
	assert.True(t, g.Valid(id))
	assert.Equal(t, tracking.DefaultPrefix, g.Prefix())
}

func TestGenerate_UniqueAgainstGrowingStore(t *testing.T) {
	g := tracking.NewGenerator("ALE-5")
	seen := setOracle{}
	for i := 0; i < 10000; i++ {
		id, err := g.Generate(context.Background(), seen)
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 10000)
}

func TestGenerate_RerollsOnCollision(t *testing.T) {
	// Each draw reads ten bytes: the first read yields "00000", the second "11111".
	random := bytes.NewReader(append(bytes.Repeat([]byte{0}, 10), bytes.Repeat([]byte{1}, 10)...))
	g := tracking.NewGenerator("ALE-5", tracking.WithRandom(random))

	id, err := g.Generate(context.Background(), setOracle{"ALE-5-00000": true})
	require.NoError(t, err)
	assert.Equal(t, "ALE-5-11111", id)
}

func TestGenerate_RejectsBiasedBytes(t *testing.T) {
	// 255 is above the rejection bound and must be skipped, 10 maps to 'A'.
	random := bytes.NewReader(append(bytes.Repeat([]byte{255}, 10), bytes.Repeat([]byte{10}, 10)...))
	g := tracking.NewGenerator("ALE-5", tracking.WithRandom(random))

	id, err := g.Generate(context.Background(), setOracle{})
	require.NoError(t, err)
	assert.Equal(t, "ALE-5-AAAAA", id)
}

func TestGenerate_Exhausted(t *testing.T) {
	g := tracking.NewGenerator("ALE-5", tracking.WithRandom(repeatReader(0)), tracking.WithMaxAttempts(3))
	calls := 0
	oracle := tracking.OracleFunc(func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})

	_, err := g.Generate(context.Background(), oracle)
	assert.ErrorIs(t, err, tracking.ErrExhausted)
	assert.Equal(t, 3, calls)
}

func TestGenerate_OracleError(t *testing.T) {
	boom := errors.New("store unavailable")
	g := tracking.NewGenerator("ALE-5")
	_, err := g.Generate(context.Background(), tracking.OracleFunc(func(context.Context, string) (bool, error) {
		return false, boom
	}))
	assert.ErrorIs(t, err, boom)
}

func TestGenerate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tracking.NewGenerator("ALE-5").Generate(ctx, setOracle{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidAndNormalize(t *testing.T) {
	g := tracking.NewGenerator("ale-5")
	assert.Equal(t, "ALE-5", g.Prefix())
	assert.True(t, g.Valid(" ale-5-abcde "))
	assert.False(t, g.Valid("ALE-5-ABCD"))
	assert.False(t, g.Valid("XYZ-ABCDE"))
	assert.Equal(t, "ALE-5-ABCDE", tracking.Normalize(" ale-5-abcde\n"))
}
