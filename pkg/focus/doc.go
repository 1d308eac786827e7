// Package focus implements the single-selection model of the family viewer.
//
// A [Controller] is a two-state machine over the selected person:
//
//	Idle    --Select(id)-->  Focused(id)
//	Focused --Select(id)-->  Focused(id)
//	Focused --Clear()---->   Idle
//
// Entering Focused runs one highlight pass that marks exactly the edges
// touching the selected person as connected, and asks the [Camera] to frame
// that person. Entering Idle resets every highlight and asks the camera to
// frame the whole graph with wider padding.
//
// The graph is read-only through this package. Deletions, drags and new
// connections coming from the interactive surface are vetoed without error;
// a delete attempt also clears the selection. Structural data lives in
// [family.Graph] and is never written here; highlights and the selection are
// kept in side tables keyed by ID.
//
// Camera requests are fire and forget. [Viewport] is a concrete camera that
// animates towards the latest request and retargets from its current
// interpolated state when a new request arrives mid-flight.
package focus
