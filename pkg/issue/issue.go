// Package issue provides the data structures describing issue-tracker entities.
package issue

// Milestone is a milestone as it exists on the issue tracker.
// Its identity for matching purposes is Title, compared exactly.
type Milestone struct {
	Number int    `yaml:"number"`
	Title  string `yaml:"title"`
	State  string `yaml:"state,omitempty"`
	URL    string `yaml:"url,omitempty"`
}

// Info represents an issue as it exists on the issue tracker.
// MilestoneNumber is zero when the issue has no milestone.
type Info struct {
	Number          int    `yaml:"number"`
	Title           string `yaml:"title"`
	MilestoneNumber int    `yaml:"milestone_number,omitempty"`
	State           string `yaml:"state,omitempty"`
	URL             string `yaml:"url,omitempty"`
}

// Reference identifies a project on the issue tracker.
type Reference struct {
	Owner      string
	Repository string
}

// String returns the owner/repository form of the reference.
func (r Reference) String() string {
	return r.Owner + "/" + r.Repository
}
