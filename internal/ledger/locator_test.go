package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securityinshadows/sish/internal/common"
)

func TestResolve(t *testing.T) {
	snapshot := []string{"a", "b", "c"}

	tests := []struct {
		name    string
		want    string
		ordinal int
		wantErr bool
	}{
		{name: "first", ordinal: 1, want: "a"},
		{name: "last", ordinal: 3, want: "c"},
		{name: "zero", ordinal: 0, wantErr: true},
		{name: "negative", ordinal: -1, wantErr: true},
		{name: "past end", ordinal: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.ordinal, snapshot)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveEmptySnapshot(t *testing.T) {
	_, err := Resolve[int](1, nil)
	assert.ErrorIs(t, err, common.ErrOutOfRange)
}
