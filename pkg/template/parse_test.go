//go:build unit

package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "header with body",
			content:   "# Title\n\nBody line 1\nBody line 2\n",
			wantTitle: "Title",
			wantBody:  "Body line 1\nBody line 2\n",
		},
		{
			name:      "title only without newline",
			content:   "Just a title",
			wantTitle: "Just a title",
			wantBody:  "",
		},
		{
			name:      "title only with newline",
			content:   "Just a title\n",
			wantTitle: "Just a title",
			wantBody:  "",
		},
		{
			name:      "leading blank lines are skipped",
			content:   "\n  \n## Do you use source control?\n\nI've used CVS.\n",
			wantTitle: "Do you use source control?",
			wantBody:  "I've used CVS.\n",
		},
		{
			name:      "body keeps further blank lines",
			content:   "# joel\n\nKeep track.\n\n[joel-test]: http://example.com\n\n",
			wantTitle: "joel",
			wantBody:  "Keep track.\n\n[joel-test]: http://example.com\n\n",
		},
		{
			name:      "missing separator drops body",
			content:   "Title\nNot a body\n",
			wantTitle: "Title",
			wantBody:  "",
		},
		{
			name:      "crlf line endings",
			content:   "# Title\r\n\r\nBody\r\n",
			wantTitle: "Title",
			wantBody:  "Body\r\n",
		},
		{
			name:      "byte order mark",
			content:   "\xEF\xBB\xBF# Title\n\nBody\n",
			wantTitle: "Title",
			wantBody:  "Body\n",
		},
		{
			name:      "hashes without space",
			content:   "###Title###\n",
			wantTitle: "Title###",
			wantBody:  "",
		},
		{
			name:      "case and inner whitespace preserved",
			content:   "#   Set  Up  CI   \n",
			wantTitle: "Set  Up  CI",
			wantBody:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body, err := Parse([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		wantErr error
	}{
		{name: "empty", content: []byte(""), wantErr: ErrEmptyContent},
		{name: "blank lines only", content: []byte("\n \n\t\n"), wantErr: ErrEmptyContent},
		{name: "hashes only", content: []byte("###\n\nbody\n"), wantErr: ErrEmptyContent},
		{name: "binary", content: []byte{0xff, 0xfe, 0x00, 0x41}, wantErr: ErrNotText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.content)
			assert.ErrorIs(t, err, ErrTemplate)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
