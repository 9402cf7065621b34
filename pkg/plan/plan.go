// Package plan computes the creation operations needed to make a
// project's remote state a superset of a template.
package plan

import (
	"fmt"

	"github.com/lerenn/push-issues/pkg/template"
)

// Kind is the kind of a plan operation or item.
type Kind int

const (
	// KindCreateMilestone creates a milestone.
	KindCreateMilestone Kind = iota + 1
	// KindCreateIssue creates an issue under a milestone.
	KindCreateIssue
)

// String returns a human-readable kind.
func (k Kind) String() string {
	switch k {
	case KindCreateMilestone:
		return "milestone"
	case KindCreateIssue:
		return "issue"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalYAML encodes the kind as its name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Operation is one creation step. Milestone is always set; Issue is set
// for KindCreateIssue only. For issues, the milestone is referenced by
// title and resolved against the remote snapshot at execution time.
type Operation struct {
	Kind      Kind
	Milestone *template.Milestone
	Issue     *template.Issue
}

// MilestoneTitle returns the title of the milestone the operation targets.
func (o Operation) MilestoneTitle() string {
	return o.Milestone.Title
}

// Title returns the title of the item the operation creates.
func (o Operation) Title() string {
	if o.Kind == KindCreateIssue {
		return o.Issue.Title
	}
	return o.Milestone.Title
}

// Body returns the body of the item the operation creates.
func (o Operation) Body() string {
	if o.Kind == KindCreateIssue {
		return o.Issue.Body
	}
	return o.Milestone.Body
}

// String describes the operation for logs.
func (o Operation) String() string {
	if o.Kind == KindCreateIssue {
		return fmt.Sprintf("create issue %q in milestone %q", o.Issue.Title, o.Milestone.Title)
	}
	return fmt.Sprintf("create milestone %q", o.Milestone.Title)
}

// SkipReason tells why a template item is not part of the operations.
type SkipReason string

const (
	// SkipExisting marks an item already present on the remote.
	SkipExisting SkipReason = "already exists"
	// SkipDuplicate marks an item whose title appears earlier in the template.
	SkipDuplicate SkipReason = "duplicate in template"
)

// Item is a template item that needs no creation.
type Item struct {
	Kind           Kind       `yaml:"kind"`
	MilestoneTitle string     `yaml:"milestone"`
	Title          string     `yaml:"title"`
	Number         int        `yaml:"number,omitempty"`
	Reason         SkipReason `yaml:"reason"`
}

// Plan is the ordered list of operations produced by reconciliation.
//
// Every KindCreateIssue operation references a milestone that either
// exists remotely or is created by an earlier operation of the plan.
type Plan struct {
	Operations []Operation
	Skipped    []Item
}

// IsEmpty reports whether the plan creates nothing.
func (p *Plan) IsEmpty() bool {
	return len(p.Operations) == 0
}

// Count returns the number of milestone and issue creations.
func (p *Plan) Count() (milestones, issues int) {
	for _, op := range p.Operations {
		if op.Kind == KindCreateMilestone {
			milestones++
		} else {
			issues++
		}
	}
	return milestones, issues
}

// Group is a run of consecutive operations targeting one milestone.
// Milestone is the index of the group's KindCreateMilestone operation,
// or -1 when the milestone already exists. Issues holds operation indexes.
type Group struct {
	MilestoneTitle string
	Milestone      int
	Issues         []int
}

// Groups splits the operations into per-milestone groups, in plan order.
func (p *Plan) Groups() []Group {
	var groups []Group
	for idx, op := range p.Operations {
		startsGroup := len(groups) == 0 ||
			op.Kind == KindCreateMilestone ||
			groups[len(groups)-1].MilestoneTitle != op.MilestoneTitle()
		if startsGroup {
			groups = append(groups, Group{MilestoneTitle: op.MilestoneTitle(), Milestone: -1})
		}

		current := &groups[len(groups)-1]
		if op.Kind == KindCreateMilestone {
			current.Milestone = idx
		} else {
			current.Issues = append(current.Issues, idx)
		}
	}
	return groups
}
