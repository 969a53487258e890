package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/oauthd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestMonotonic(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	a := idx.NewAt(at)
	b := idx.NewAt(at)

	// same millisecond, still strictly increasing
	require.Less(t, a.String(), b.String())
	require.WithinDuration(t, at, a.Time(), time.Millisecond)
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", true},
		{"", false},
		{"   ", false},
		{"not-a-ulid", false},
		{"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z", false},
		{"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZU", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, idx.Valid(tt.in))
		})
	}
}

func TestTimeOfInvalid(t *testing.T) {
	require.True(t, idx.Zero.Time().IsZero())
}
