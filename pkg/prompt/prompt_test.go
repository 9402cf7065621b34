//go:build unit

package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompt(input string, terminal bool, secret string, secretErr error) (*realPrompt, *bytes.Buffer) {
	var out bytes.Buffer
	return &realPrompt{
		reader:     bufio.NewReader(strings.NewReader(input)),
		out:        &out,
		isTerminal: func(int) bool { return terminal },
		readPassword: func(int) ([]byte, error) {
			return []byte(secret), secretErr
		},
	}, &out
}

func TestRealPrompt_PromptForConfirmation(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		expected   bool
		wantErr    error
	}{
		{name: "empty input uses default yes", input: "\n", defaultYes: true, expected: true},
		{name: "empty input uses default no", input: "\n", defaultYes: false, expected: false},
		{name: "yes", input: "y\n", expected: true},
		{name: "full yes with whitespace", input: "  YES \n", expected: true},
		{name: "no", input: "n\n", defaultYes: true, expected: false},
		{name: "answer without newline", input: "y", expected: true},
		{name: "invalid", input: "maybe\n", wantErr: ErrInvalidConfirmationInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompt(tt.input, true, "", nil)

			got, err := p.PromptForConfirmation("Create 5 items?", tt.defaultYes)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Contains(t, out.String(), "Create 5 items?")
		})
	}
}

func TestRealPrompt_PromptForConfirmation_ClosedInput(t *testing.T) {
	p, _ := newTestPrompt("", true, "", nil)

	_, err := p.PromptForConfirmation("Continue?", true)

	assert.Error(t, err)
}

func TestRealPrompt_PromptForToken(t *testing.T) {
	p, out := newTestPrompt("", true, " ghp_secret \n", nil)

	token, err := p.PromptForToken("GITHUB_TOKEN")

	require.NoError(t, err)
	assert.Equal(t, "ghp_secret", token)
	assert.Contains(t, out.String(), "GITHUB_TOKEN")
	assert.NotContains(t, out.String(), "ghp_secret")
}

func TestRealPrompt_PromptForToken_Errors(t *testing.T) {
	p, _ := newTestPrompt("", false, "ignored", nil)
	_, err := p.PromptForToken("GITHUB_TOKEN")
	assert.ErrorIs(t, err, ErrNotInteractive)

	p, _ = newTestPrompt("", true, "   ", nil)
	_, err = p.PromptForToken("GITHUB_TOKEN")
	assert.ErrorIs(t, err, ErrEmptyToken)

	readErr := errors.New("tty gone")
	p, _ = newTestPrompt("", true, "", readErr)
	_, err = p.PromptForToken("GITHUB_TOKEN")
	assert.ErrorIs(t, err, readErr)
}
