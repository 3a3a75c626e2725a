package resolver

import (
	"context"
	"strings"

	"github.com/scienceol/molview/internal/config"
	"github.com/scienceol/molview/pkg/common/code"
	"github.com/scienceol/molview/pkg/core/structure"
	"github.com/scienceol/molview/pkg/middleware/logger"
	"github.com/scienceol/molview/pkg/repo"
	"github.com/scienceol/molview/pkg/repo/pubchem"
	"github.com/scienceol/molview/pkg/repo/workbench"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentation = "github.com/scienceol/molview/pkg/core/structure"

type resolverImpl struct {
	primary   repo.StructureSource
	secondary repo.StructureSource
	display   structure.DisplayConfig

	tracer      trace.Tracer
	resolutions metric.Int64Counter
}

// New wires PubChem as the primary source and Metabolomics Workbench as the
// secondary one, with display defaults from the global config.
func New() structure.Service {
	return NewWithSources(
		pubchem.NewPubChemRepo(),
		workbench.NewWorkbenchRepo(),
		structure.DisplayFromViewer(config.Global().Viewer),
	)
}

func NewWithSources(primary, secondary repo.StructureSource, display structure.DisplayConfig) structure.Service {
	r := &resolverImpl{
		primary:   primary,
		secondary: secondary,
		display:   display,
		tracer:    otel.Tracer(instrumentation),
	}

	counter, err := otel.Meter(instrumentation).Int64Counter(
		"structure.resolutions",
		metric.WithDescription("structure resolutions by outcome and source"),
	)
	if err != nil {
		logger.Warnf(context.Background(), "create structure.resolutions counter err: %+v", err)
	}
	r.resolutions = counter
	return r
}

func (r *resolverImpl) Resolve(ctx context.Context, req *structure.Request) (*structure.Document, error) {
	out := r.ResolveOutcome(ctx, req)
	if !out.Resolved() {
		return nil, out.Err
	}
	return out.Document, nil
}

func (r *resolverImpl) ResolveOutcome(ctx context.Context, req *structure.Request) *structure.Outcome {
	return r.resolve(ctx, req, nil)
}

func (r *resolverImpl) resolve(ctx context.Context, req *structure.Request, progress structure.Progress) *structure.Outcome {
	out := &structure.Outcome{State: structure.AttemptingPrimary}
	notify := func() {
		if progress != nil {
			progress(out.State)
		}
	}
	if err := validate(req); err != nil {
		out.State, out.Err = structure.Failed, err
		notify()
		return out
	}
	notify()

	ctx, span := r.tracer.Start(ctx, "structure.Resolve", trace.WithAttributes(
		attribute.String("structure.primary_id", req.PrimaryID),
		attribute.String("structure.secondary_id", req.SecondaryID),
	))
	defer span.End()

	if r.attempt(ctx, out, r.primary, structure.SourcePrimary, req.PrimaryID) {
		r.finish(ctx, span, out)
		notify()
		return out
	}

	// cancelled while talking to the primary: the secondary is not a fallback for that
	if err := ctx.Err(); err != nil {
		out.State, out.Err = structure.Failed, err
		r.finish(ctx, span, out)
		notify()
		return out
	}

	logger.Warnf(ctx, "primary structure source %s failed for id: %s, falling back to %s id: %s",
		r.primary.Name(), req.PrimaryID, r.secondary.Name(), req.SecondaryID)
	out.State = structure.AttemptingSecondary
	notify()

	if !r.attempt(ctx, out, r.secondary, structure.SourceSecondary, req.SecondaryID) {
		out.State = structure.Failed
		if err := ctx.Err(); err != nil {
			out.Err = err
			r.finish(ctx, span, out)
			notify()
			return out
		}
		out.Err = code.StructureUnavailable.
			WithMsgf("no structure for %s: %s or %s: %s",
				r.primary.Name(), req.PrimaryID, r.secondary.Name(), req.SecondaryID).
			WithErr(out.Attempts[len(out.Attempts)-1].Err)
	}
	r.finish(ctx, span, out)
	notify()
	return out
}

// attempt performs exactly one fetch and records it on out.
func (r *resolverImpl) attempt(ctx context.Context, out *structure.Outcome,
	src repo.StructureSource, tag structure.Source, id string,
) bool {
	ctx, span := r.tracer.Start(ctx, "structure.Fetch", trace.WithAttributes(
		attribute.String("structure.source", string(tag)),
		attribute.String("structure.origin", src.Name()),
		attribute.String("structure.id", id),
	))
	defer span.End()

	data, err := src.Fetch(ctx, id)
	if err != nil {
		err = code.SourceUnreachable.WithMsgf("%s unreachable for id: %s", src.Name(), id).WithErr(err)
	}
	out.Attempts = append(out.Attempts, structure.Attempt{
		Source: tag,
		Origin: src.Name(),
		ID:     id,
		Err:    err,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, code.SourceUnreachable.Msg)
		logger.Warnf(ctx, "fetch %s structure id: %s err: %v", src.Name(), id, err)
		return false
	}

	out.State = structure.Resolved
	out.Document = &structure.Document{
		Source: tag,
		Origin: src.Name(),
		ID:     id,
		Format: structure.FormatSDF,
		Data:   data,
	}
	return true
}

func (r *resolverImpl) finish(ctx context.Context, span trace.Span, out *structure.Outcome) {
	source := "none"
	if out.Document != nil {
		source = string(out.Document.Source)
	}
	span.SetAttributes(
		attribute.String("structure.state", out.State.String()),
		attribute.Int("structure.attempts", len(out.Attempts)),
	)

	if out.Resolved() {
		logger.Infof(ctx, "resolved structure from %s %s id: %s",
			out.Document.Source, out.Document.Origin, out.Document.ID)
	} else {
		span.RecordError(out.Err)
		span.SetStatus(otelcodes.Error, out.Err.Error())
		logger.Errorf(ctx, "resolve structure err: %+v", out.Err)
	}

	if r.resolutions != nil {
		r.resolutions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", out.State.String()),
			attribute.String("source", source),
		))
	}
}

func validate(req *structure.Request) error {
	switch {
	case req == nil:
		return code.ParamErr.WithMsg("structure request is required")
	case strings.TrimSpace(req.PrimaryID) == "":
		return code.ParamErr.WithMsg("primary id is required")
	case strings.TrimSpace(req.SecondaryID) == "":
		return code.ParamErr.WithMsg("secondary id is required")
	}
	return nil
}

func (r *resolverImpl) View(ctx context.Context, override *structure.DisplayConfig) (*structure.ViewResp, error) {
	return r.ViewWithProgress(ctx, override, nil)
}

func (r *resolverImpl) ViewWithProgress(ctx context.Context, override *structure.DisplayConfig,
	progress structure.Progress,
) (*structure.ViewResp, error) {
	display := r.display.Merge(override)
	out := r.resolve(ctx, display.Request(), progress)
	if !out.Resolved() {
		return nil, out.Err
	}

	mode := display.Mode
	if !mode.Valid() {
		mode = structure.ModeStick
	}
	return &structure.ViewResp{
		Title:      display.Title,
		Mode:       mode,
		Style:      structure.StyleFor(mode),
		Background: display.Background,
		Document:   out.Document,
	}, nil
}
