package issue

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	urlReferenceRe = regexp.MustCompile(`^(?:https?://|git@)[^/:]+[/:]([^/]+)/([^/]+?)(?:\.git)?/?$`)
	namePartRe     = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// ParseReference parses "owner/repo", "https://github.com/owner/repo(.git)"
// and "git@github.com:owner/repo.git" forms.
func ParseReference(ref string) (Reference, error) {
	ref = strings.TrimSpace(ref)

	var owner, repo string
	if matches := urlReferenceRe.FindStringSubmatch(ref); len(matches) == 3 {
		owner, repo = matches[1], matches[2]
	} else {
		parts := strings.Split(ref, "/")
		if len(parts) != 2 {
			return Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
		}
		owner, repo = parts[0], parts[1]
	}

	if !namePartRe.MatchString(owner) || !namePartRe.MatchString(repo) {
		return Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	return Reference{Owner: owner, Repository: repo}, nil
}
