package syntax

import "errors"

var (
	// ErrNodeNotReachable reports a mutation whose target is not part of the
	// tree the batch was created for.
	ErrNodeNotReachable = errors.New("syntax: node not reachable from batch root")
	// ErrOverlappingEdits reports two recorded replacements where one target
	// contains the other.
	ErrOverlappingEdits = errors.New("syntax: overlapping edits")
	// ErrIncompatibleSlot reports a replacement whose kind cannot occupy the
	// slot of the element it replaces.
	ErrIncompatibleSlot = errors.New("syntax: incompatible slot")
	// ErrForeignTree reports merging batches built for different roots.
	ErrForeignTree = errors.New("syntax: batches belong to different trees")
)
