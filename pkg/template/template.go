// Package template loads milestone and issue templates from a directory tree.
//
// The expected layout is one directory per milestone, each holding a
// README.md describing the milestone and one file per issue:
//
//	.
//	|-- milestone-1
//	|   |-- README.md
//	|   |-- issue-1.1.md
//	|   `-- issue-1.2.md
//	`-- milestone-2
//	    |-- README.md
//	    `-- issue-2.1.md
package template

// ReadmeName is the file holding a milestone's title and description.
const ReadmeName = "README.md"

// Template is the in-memory model of a template tree.
type Template struct {
	Root       string      `yaml:"root"`
	Milestones []Milestone `yaml:"milestones"`
}

// Milestone is a milestone to create, with the issues it owns.
type Milestone struct {
	Name   string  `yaml:"name"`
	Title  string  `yaml:"title"`
	Body   string  `yaml:"body,omitempty"`
	Issues []Issue `yaml:"issues,omitempty"`
}

// Issue is an issue to create under its milestone.
type Issue struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	Body  string `yaml:"body,omitempty"`
}

// IssueCount returns the number of issues across all milestones.
func (t Template) IssueCount() int {
	count := 0
	for _, m := range t.Milestones {
		count += len(m.Issues)
	}
	return count
}
