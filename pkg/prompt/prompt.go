package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=prompt.go -destination=mocks/prompt.gen.go -package=mocks

// Prompter interface provides user interaction functionality.
type Prompter interface {
	// PromptForConfirmation prompts the user for confirmation with a default value.
	PromptForConfirmation(message string, defaultYes bool) (bool, error)

	// PromptForToken prompts the user for an API token without echoing it.
	PromptForToken(tokenEnv string) (string, error)

	// IsInteractive reports whether the user can answer prompts.
	IsInteractive() bool
}

type realPrompt struct {
	reader       *bufio.Reader
	out          io.Writer
	fd           int
	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

// NewPrompt creates a new Prompt instance reading stdin. Prompts are
// written to stderr so that stdout only carries the run report.
func NewPrompt() Prompter {
	return &realPrompt{
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stderr,
		fd:           int(os.Stdin.Fd()),
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

// IsInteractive reports whether stdin is a terminal.
func (p *realPrompt) IsInteractive() bool {
	return p.isTerminal(p.fd)
}

// PromptForConfirmation prompts the user for confirmation with a default value.
func (p *realPrompt) PromptForConfirmation(message string, defaultYes bool) (bool, error) {
	var defaultText string
	if defaultYes {
		defaultText = "[Y/n]"
	} else {
		defaultText = "[y/N]"
	}

	fmt.Fprintf(p.out, "%s %s: ", message, defaultText)

	input, err := p.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	input = strings.TrimSpace(strings.ToLower(input))

	if input == "" {
		return defaultYes, nil
	}

	switch input {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, ErrInvalidConfirmationInput
	}
}

// PromptForToken prompts the user for an API token with hidden input.
func (p *realPrompt) PromptForToken(tokenEnv string) (string, error) {
	if !p.IsInteractive() {
		return "", ErrNotInteractive
	}

	fmt.Fprintf(p.out, "GitHub token (set %s to skip this prompt): ", tokenEnv)
	secret, err := p.readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(string(secret))
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}
