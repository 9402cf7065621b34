package plan

import "errors"

// Plan errors.
var (
	// ErrPlanInvariant reports an internal consistency violation of a plan.
	// It indicates a defect, not a runtime condition.
	ErrPlanInvariant = errors.New("plan invariant violated")
)
