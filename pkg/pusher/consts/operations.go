// Package consts provides operation name constants for the hook system.
package consts

// Operation names for the hook system.
const (
	Push             = "Push"
	FetchArchive     = "FetchArchive"
	LoadTemplate     = "LoadTemplate"
	FetchRemoteState = "FetchRemoteState"
	ApplyPlan        = "ApplyPlan"
)

// Operations lists every hooked operation.
var Operations = []string{Push, FetchArchive, LoadTemplate, FetchRemoteState, ApplyPlan}
