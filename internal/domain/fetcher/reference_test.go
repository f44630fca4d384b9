package fetcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePostReference(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    Reference
		wantErr bool
	}{
		{
			name: "bare id",
			ref:  "1640000000000000001",
			want: Reference{PostID: "1640000000000000001"},
		},
		{
			name: "twitter url",
			ref:  "https://twitter.com/alice/status/123",
			want: Reference{PostID: "123", Handle: "alice"},
		},
		{
			name: "x url with query",
			ref:  "https://x.com/alice/status/123?s=20&t=abc",
			want: Reference{PostID: "123", Handle: "alice"},
		},
		{
			name: "mobile url with photo",
			ref:  "https://mobile.twitter.com/alice/status/123/photo/1",
			want: Reference{PostID: "123", Handle: "alice"},
		},
		{
			name: "www without scheme and fragment",
			ref:  "www.x.com/alice/status/123#top",
			want: Reference{PostID: "123", Handle: "alice"},
		},
		{
			name:    "other domain",
			ref:     "https://example.com/alice/status/123",
			wantErr: true,
		},
		{
			name:    "profile url",
			ref:     "https://twitter.com/alice",
			wantErr: true,
		},
		{
			name:    "non numeric id",
			ref:     "https://twitter.com/alice/status/abc",
			wantErr: true,
		},
		{
			name:    "empty",
			ref:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePostReference(tt.ref)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidReference)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeHandle(t *testing.T) {
	require.Equal(t, "alice", NormalizeHandle(" @Alice "))
	require.Equal(t, "bob", NormalizeHandle("bob"))
}
