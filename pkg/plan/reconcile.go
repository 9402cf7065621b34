package plan

import (
	"fmt"

	"github.com/lerenn/push-issues/pkg/remote"
	"github.com/lerenn/push-issues/pkg/template"
)

type issueKey struct {
	milestone string
	title     string
}

// Reconcile computes the plan creating every template item missing from
// the snapshot. Titles are matched exactly and case-sensitively; issues
// are matched within their milestone only.
//
// Reconcile does no I/O and does not modify the snapshot.
func Reconcile(tmpl *template.Template, snapshot *remote.Snapshot) *Plan {
	p := &Plan{}
	plannedMilestones := make(map[string]bool)
	seenIssues := make(map[issueKey]bool)

	for mIdx := range tmpl.Milestones {
		milestone := &tmpl.Milestones[mIdx]

		remoteMilestone, exists := snapshot.Milestone(milestone.Title)
		switch {
		case plannedMilestones[milestone.Title]:
			p.Skipped = append(p.Skipped, Item{
				Kind:           KindCreateMilestone,
				MilestoneTitle: milestone.Title,
				Title:          milestone.Title,
				Reason:         SkipDuplicate,
			})
		case exists:
			p.Skipped = append(p.Skipped, Item{
				Kind:           KindCreateMilestone,
				MilestoneTitle: milestone.Title,
				Title:          milestone.Title,
				Number:         remoteMilestone.Number,
				Reason:         SkipExisting,
			})
		default:
			p.Operations = append(p.Operations, Operation{
				Kind:      KindCreateMilestone,
				Milestone: milestone,
			})
		}
		plannedMilestones[milestone.Title] = true

		for iIdx := range milestone.Issues {
			tmplIssue := &milestone.Issues[iIdx]
			key := issueKey{milestone: milestone.Title, title: tmplIssue.Title}

			if seenIssues[key] {
				p.Skipped = append(p.Skipped, Item{
					Kind:           KindCreateIssue,
					MilestoneTitle: milestone.Title,
					Title:          tmplIssue.Title,
					Reason:         SkipDuplicate,
				})
				continue
			}
			seenIssues[key] = true

			if remoteIssue, exists := snapshot.Issue(milestone.Title, tmplIssue.Title); exists {
				p.Skipped = append(p.Skipped, Item{
					Kind:           KindCreateIssue,
					MilestoneTitle: milestone.Title,
					Title:          tmplIssue.Title,
					Number:         remoteIssue.Number,
					Reason:         SkipExisting,
				})
				continue
			}

			p.Operations = append(p.Operations, Operation{
				Kind:      KindCreateIssue,
				Milestone: milestone,
				Issue:     tmplIssue,
			})
		}
	}

	return p
}

// Validate checks that every issue creation references a milestone that
// exists in the snapshot or is created earlier in the plan, and that no
// milestone is created twice or over an existing one.
func (p *Plan) Validate(snapshot *remote.Snapshot) error {
	created := make(map[string]bool)
	for idx, op := range p.Operations {
		title := op.MilestoneTitle()
		_, exists := snapshot.Milestone(title)

		switch op.Kind {
		case KindCreateMilestone:
			if exists || created[title] {
				return fmt.Errorf("%w: operation %d creates milestone %q which already exists", ErrPlanInvariant, idx, title)
			}
			created[title] = true
		case KindCreateIssue:
			if op.Issue == nil {
				return fmt.Errorf("%w: operation %d creates an issue without content", ErrPlanInvariant, idx)
			}
			if !exists && !created[title] {
				return fmt.Errorf("%w: operation %d creates issue %q in unresolved milestone %q",
					ErrPlanInvariant, idx, op.Issue.Title, title)
			}
		default:
			return fmt.Errorf("%w: operation %d has unknown kind %v", ErrPlanInvariant, idx, op.Kind)
		}
	}
	return nil
}
