package repo

import "context"

// StructureSource fetches a structure document keyed by a source-specific
// identifier. One call is one network attempt.
type StructureSource interface {
	Name() string
	Fetch(ctx context.Context, id string) (string, error)
}
