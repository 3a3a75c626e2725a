package structure

import "context"

// Service resolves structure documents for the molecular viewer.
type Service interface {
	// Resolve tries the primary source, then the secondary one. Failure of
	// both is reported as code.StructureUnavailable.
	Resolve(ctx context.Context, req *Request) (*Document, error)
	// ResolveOutcome is Resolve returning the full tagged outcome.
	ResolveOutcome(ctx context.Context, req *Request) *Outcome
	// View merges display overrides onto the configured defaults and
	// resolves the structure to render.
	View(ctx context.Context, override *DisplayConfig) (*ViewResp, error)
	// ViewWithProgress is View reporting every state the resolution enters.
	ViewWithProgress(ctx context.Context, override *DisplayConfig, progress Progress) (*ViewResp, error)
}

// Progress receives state transitions in order, on the resolving goroutine.
type Progress func(State)
