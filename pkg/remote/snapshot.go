// Package remote holds the state of the issue tracker as seen by a run.
package remote

import (
	"sync"

	"github.com/lerenn/push-issues/pkg/issue"
)

// Snapshot is the known remote state of a project: its milestones and,
// per milestone, its issues. Titles are matched exactly.
//
// A Snapshot is fetched once per run and then updated in memory as
// creations succeed. It is safe for concurrent use.
type Snapshot struct {
	mu         sync.RWMutex
	milestones []issue.Milestone
	byTitle    map[string]int
	issues     map[int]map[string]issue.Info
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		byTitle: make(map[string]int),
		issues:  make(map[int]map[string]issue.Info),
	}
}

// AddMilestone records a milestone. When several milestones share a
// title, the first one recorded wins.
func (s *Snapshot) AddMilestone(m issue.Milestone) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byTitle[m.Title]; exists {
		return
	}
	s.byTitle[m.Title] = len(s.milestones)
	s.milestones = append(s.milestones, m)
}

// Milestone returns the milestone with the given title.
func (s *Snapshot) Milestone(title string) (issue.Milestone, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, exists := s.byTitle[title]
	if !exists {
		return issue.Milestone{}, false
	}
	return s.milestones[idx], true
}

// Milestones returns every recorded milestone in insertion order.
func (s *Snapshot) Milestones() []issue.Milestone {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]issue.Milestone(nil), s.milestones...)
}

// AddIssue records an issue under its milestone. Issues without a
// milestone are ignored since they can never match a template issue.
func (s *Snapshot) AddIssue(i issue.Info) {
	if i.MilestoneNumber == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byTitle, exists := s.issues[i.MilestoneNumber]
	if !exists {
		byTitle = make(map[string]issue.Info)
		s.issues[i.MilestoneNumber] = byTitle
	}
	if _, exists := byTitle[i.Title]; !exists {
		byTitle[i.Title] = i
	}
}

// Issue returns the issue with the given title under the milestone with
// the given title.
func (s *Snapshot) Issue(milestoneTitle, title string) (issue.Info, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, exists := s.byTitle[milestoneTitle]
	if !exists {
		return issue.Info{}, false
	}
	i, exists := s.issues[s.milestones[idx].Number][title]
	return i, exists
}

// IssueCount returns the number of recorded issues.
func (s *Snapshot) IssueCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, byTitle := range s.issues {
		count += len(byTitle)
	}
	return count
}

// Clone returns an independent copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clone := NewSnapshot()
	clone.milestones = append(clone.milestones, s.milestones...)
	for title, idx := range s.byTitle {
		clone.byTitle[title] = idx
	}
	for number, byTitle := range s.issues {
		copied := make(map[string]issue.Info, len(byTitle))
		for title, i := range byTitle {
			copied[title] = i
		}
		clone.issues[number] = copied
	}
	return clone
}
