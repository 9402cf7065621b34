//go:build unit

package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want Reference
	}{
		{name: "owner/repo", ref: "lerenn/push-issues", want: Reference{Owner: "lerenn", Repository: "push-issues"}},
		{name: "https url", ref: "https://github.com/test/repo", want: Reference{Owner: "test", Repository: "repo"}},
		{name: "https url with .git", ref: "https://github.com/test/repo.git", want: Reference{Owner: "test", Repository: "repo"}},
		{name: "ssh url", ref: "git@github.com:test/repo.git", want: Reference{Owner: "test", Repository: "repo"}},
		{name: "surrounding spaces", ref: "  test/repo ", want: Reference{Owner: "test", Repository: "repo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReference(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Owner+"/"+tt.want.Repository, got.String())
		})
	}
}

func TestParseReference_Invalid(t *testing.T) {
	for _, ref := range []string{"", "repo", "a/b/c", "/repo", "owner/", "owner/re po"} {
		t.Run(ref, func(t *testing.T) {
			_, err := ParseReference(ref)
			assert.ErrorIs(t, err, ErrInvalidReference)
		})
	}
}
