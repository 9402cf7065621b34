// Package report collects the per-item outcomes of a run and renders them.
package report

import (
	"github.com/lerenn/push-issues/pkg/plan"
)

// Status is the final state of a template item after a run.
type Status string

const (
	// StatusCreated marks an item created by this run.
	StatusCreated Status = "created"
	// StatusExisting marks an item found on the remote, before or during the run.
	StatusExisting Status = "existing"
	// StatusDuplicate marks an item repeating an earlier template title.
	StatusDuplicate Status = "duplicate"
	// StatusPlanned marks an item a dry run would create.
	StatusPlanned Status = "planned"
	// StatusFailed marks an item that could not be created.
	StatusFailed Status = "failed"
)

// Outcome is the result for one template item.
type Outcome struct {
	Kind           plan.Kind `yaml:"kind"`
	MilestoneTitle string    `yaml:"milestone"`
	Title          string    `yaml:"title"`
	Number         int       `yaml:"number,omitempty"`
	Status         Status    `yaml:"status"`
	Attempts       int       `yaml:"attempts,omitempty"`
	Err            error     `yaml:"-"`
	Error          string    `yaml:"error,omitempty"`
}

// Report is the outcome of a run, in plan order followed by skipped items.
type Report struct {
	Repository string    `yaml:"repository"`
	DryRun     bool      `yaml:"dry_run"`
	Outcomes   []Outcome `yaml:"items"`
}

// Counts summarizes a report per status.
type Counts struct {
	Created   int `yaml:"created"`
	Existing  int `yaml:"existing"`
	Duplicate int `yaml:"duplicate"`
	Planned   int `yaml:"planned"`
	Failed    int `yaml:"failed"`
}

// New creates a report holding the skipped items of a plan.
func New(repository string, p *plan.Plan) *Report {
	r := &Report{Repository: repository}
	for _, item := range p.Skipped {
		status := StatusExisting
		if item.Reason == plan.SkipDuplicate {
			status = StatusDuplicate
		}
		r.Outcomes = append(r.Outcomes, Outcome{
			Kind:           item.Kind,
			MilestoneTitle: item.MilestoneTitle,
			Title:          item.Title,
			Number:         item.Number,
			Status:         status,
		})
	}
	return r
}

// NewDryRun creates a report listing every operation of the plan as planned.
func NewDryRun(repository string, p *plan.Plan) *Report {
	r := &Report{Repository: repository, DryRun: true}
	for _, op := range p.Operations {
		r.Outcomes = append(r.Outcomes, Outcome{
			Kind:           op.Kind,
			MilestoneTitle: op.MilestoneTitle(),
			Title:          op.Title(),
			Status:         StatusPlanned,
		})
	}
	r.Outcomes = append(r.Outcomes, New(repository, p).Outcomes...)
	return r
}

// Add appends outcomes before the skipped items already in the report.
func (r *Report) Add(outcomes ...Outcome) {
	for i := range outcomes {
		if outcomes[i].Err != nil && outcomes[i].Error == "" {
			outcomes[i].Error = outcomes[i].Err.Error()
		}
	}
	r.Outcomes = append(append([]Outcome(nil), outcomes...), r.Outcomes...)
}

// Counts returns the number of outcomes per status.
func (r *Report) Counts() Counts {
	var c Counts
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusCreated:
			c.Created++
		case StatusExisting:
			c.Existing++
		case StatusDuplicate:
			c.Duplicate++
		case StatusPlanned:
			c.Planned++
		case StatusFailed:
			c.Failed++
		}
	}
	return c
}

// Failed returns the failed outcomes.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// HasFailures reports whether any item failed.
func (r *Report) HasFailures() bool {
	return r.Counts().Failed > 0
}
