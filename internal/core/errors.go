package core

import "errors"

// Rejection errors for expected conditions. Handlers translate these into
// user-facing responses; none of them indicates a broken invariant, and a
// caller that wants the old silent-no-op behavior can simply ignore them.
var (
	ErrNameRequired      = errors.New("name is required")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrDuplicateProduct  = errors.New("product already exists")
	ErrDuplicateItem     = errors.New("item is already on the list")
	ErrDuplicateMember   = errors.New("member already invited")
	ErrFallbackCategory  = errors.New("the fallback category cannot be changed")
	ErrSelfRemoval       = errors.New("cannot remove yourself from a list")
	ErrNothingToUndo     = errors.New("nothing to undo")
)
