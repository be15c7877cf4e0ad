package normalize

import (
	"math"
	"testing"

	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToInt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want int
	}{
		{name: "trailing space", in: "23 ", want: 23},
		{name: "currency noise", in: "€23M", want: 23},
		{name: "nil", in: nil, want: 0},
		{name: "nan", in: math.NaN(), want: 0},
		{name: "infinity", in: math.Inf(1), want: 0},
		{name: "float floors", in: 7.9, want: 7},
		{name: "negative float floors", in: -1.5, want: -2},
		{name: "negative string", in: " -4 ", want: -4},
		{name: "double minus", in: "--5", want: 0},
		{name: "no digits", in: "abc", want: 0},
		{name: "empty", in: "", want: 0},
		{name: "int passthrough", in: 12, want: 12},
		{name: "int64 passthrough", in: int64(99), want: 99},
		{name: "bool true", in: true, want: 1},
		{name: "digits separated by text", in: "12 of 20", want: 1220},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ToInt(tc.in))
		})
	}
}

func TestToIntOK_ReportsSubstitution(t *testing.T) {
	t.Parallel()

	_, ok := ToIntOK("n/a")
	assert.False(t, ok)

	v, ok := ToIntOK("0")
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestToCleanString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ToCleanString(nil))
	assert.Equal(t, "Arsenal", ToCleanString("  Arsenal \n"))
	assert.Equal(t, "42", ToCleanString(42))
	assert.Equal(t, "true", ToCleanString(true))
}

func TestNormalizer_LogsDefaultAtDebug(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	n := New(logging.FromZap(zap.New(core)))

	assert.Equal(t, 0, n.Int("—"))
	assert.Equal(t, 30, n.Int("30"))
	assert.Equal(t, Unknown, n.StringOr("   ", Unknown))

	entries := logs.FilterMessage("int default substituted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "—", entries[0].ContextMap()["input"])
	assert.Len(t, logs.FilterMessage("string default substituted").All(), 1)
}

func TestFirstLineAndCollapseSpaces(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Bukayo Saka", FirstLine("\n  Bukayo Saka \n Right Winger"))
	assert.Equal(t, "", FirstLine("  \n "))
	assert.Equal(t, "€ 12.00m", CollapseSpaces("€   12.00m \n"))
}
