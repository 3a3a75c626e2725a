package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/scienceol/molview/internal/config"
	"github.com/scienceol/molview/pkg/common/code"
	"github.com/scienceol/molview/pkg/core/structure"
	"github.com/scienceol/molview/pkg/repo/pubchem"
	"github.com/scienceol/molview/pkg/repo/workbench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, s)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeSource struct {
	name string
	log  *callLog
	docs map[string]string
	err  error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context, id string) (string, error) {
	f.log.add(f.name + ":" + id)
	if f.err != nil {
		return "", f.err
	}
	doc, ok := f.docs[id]
	if !ok {
		return "", code.RPCHttpCodeErr.WithMsgf("%s: status 404", f.name)
	}
	return doc, nil
}

var display = structure.DisplayConfig{
	CID: "3084463", Regno: "5772", Title: "3-D Molecular Viewer", Mode: structure.ModeStick, Background: "0xC0C0C0",
}

func newFakes(primaryDocs, secondaryDocs map[string]string) (*callLog, structure.Service) {
	log := &callLog{}
	svc := NewWithSources(
		&fakeSource{name: "primary", log: log, docs: primaryDocs},
		&fakeSource{name: "secondary", log: log, docs: secondaryDocs},
		display,
	)
	return log, svc
}

func TestPrimarySuccessSkipsSecondary(t *testing.T) {
	log, svc := newFakes(map[string]string{"3084463": "P"}, map[string]string{"5772": "S"})

	out := svc.ResolveOutcome(context.Background(), &structure.Request{PrimaryID: "3084463", SecondaryID: "5772"})
	require.True(t, out.Resolved())
	assert.Equal(t, structure.Resolved, out.State)
	assert.Equal(t, structure.SourcePrimary, out.Document.Source)
	assert.Equal(t, "P", out.Document.Data)
	assert.Equal(t, structure.FormatSDF, out.Document.Format)
	assert.Len(t, out.Attempts, 1)
	assert.Equal(t, []string{"primary:3084463"}, log.list())
}

func TestFallbackToSecondary(t *testing.T) {
	log, svc := newFakes(nil, map[string]string{"5772": "S"})

	doc, err := svc.Resolve(context.Background(), &structure.Request{PrimaryID: "3084463", SecondaryID: "5772"})
	require.NoError(t, err)
	assert.Equal(t, structure.SourceSecondary, doc.Source)
	assert.Equal(t, "secondary", doc.Origin)
	assert.Equal(t, "5772", doc.ID)
	assert.Equal(t, "S", doc.Data)
	assert.Equal(t, []string{"primary:3084463", "secondary:5772"}, log.list())
}

func TestBothFailIsStructureUnavailable(t *testing.T) {
	log, svc := newFakes(nil, nil)

	out := svc.ResolveOutcome(context.Background(), &structure.Request{PrimaryID: "1", SecondaryID: "2"})
	assert.Equal(t, structure.Failed, out.State)
	assert.Nil(t, out.Document)
	assert.ErrorIs(t, out.Err, code.StructureUnavailable)
	// the last source failure stays reachable for diagnostics
	assert.ErrorIs(t, out.Err, code.RPCHttpCodeErr)
	require.Len(t, out.Attempts, 2)
	assert.Equal(t, structure.SourcePrimary, out.Attempts[0].Source)
	assert.Equal(t, structure.SourceSecondary, out.Attempts[1].Source)
	for _, a := range out.Attempts {
		assert.ErrorIs(t, a.Err, code.SourceUnreachable)
		assert.ErrorIs(t, a.Err, code.RPCHttpCodeErr)
	}
	assert.Equal(t, []string{"primary:1", "secondary:2"}, log.list())
}

func TestPrimaryFailureKindsFallBack(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{name: "transport", err: code.RPCHttpErr.WithErr(errors.New("connection refused"))},
		{name: "status", err: code.RPCHttpCodeErr.WithMsg("status 503")},
		{name: "empty body", err: code.RPCHttpEmptyErr},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := &callLog{}
			svc := NewWithSources(
				&fakeSource{name: "primary", log: log, err: tc.err},
				&fakeSource{name: "secondary", log: log, docs: map[string]string{"5772": "S"}},
				display,
			)

			out := svc.ResolveOutcome(context.Background(), &structure.Request{PrimaryID: "3084463", SecondaryID: "5772"})
			require.True(t, out.Resolved())
			assert.Equal(t, structure.SourceSecondary, out.Document.Source)
			require.Len(t, out.Attempts, 2)
			assert.ErrorIs(t, out.Attempts[0].Err, code.SourceUnreachable)
			assert.ErrorIs(t, out.Attempts[0].Err, tc.err)
			assert.NoError(t, out.Attempts[1].Err)
			assert.Equal(t, []string{"primary:3084463", "secondary:5772"}, log.list())
		})
	}
}

func TestRepeatedRequestsAreNotMemoized(t *testing.T) {
	log, svc := newFakes(nil, map[string]string{"5772": "S"})
	req := &structure.Request{PrimaryID: "3084463", SecondaryID: "5772"}

	for i := 0; i < 3; i++ {
		_, err := svc.Resolve(context.Background(), req)
		require.NoError(t, err)
	}
	assert.Len(t, log.list(), 6)
}

func TestBlankIDsAreRejectedWithoutNetwork(t *testing.T) {
	log, svc := newFakes(nil, nil)

	for _, req := range []*structure.Request{
		nil,
		{PrimaryID: "", SecondaryID: "5772"},
		{PrimaryID: "3084463", SecondaryID: "  "},
	} {
		_, err := svc.Resolve(context.Background(), req)
		assert.ErrorIs(t, err, code.ParamErr)
	}
	assert.Empty(t, log.list())
}

func TestCancelledDuringPrimarySkipsSecondary(t *testing.T) {
	log := &callLog{}
	ctx, cancel := context.WithCancel(context.Background())
	primary := &cancelSource{fakeSource: fakeSource{name: "primary", log: log}, cancel: cancel}
	svc := NewWithSources(primary, &fakeSource{name: "secondary", log: log, docs: map[string]string{"2": "S"}}, display)

	_, err := svc.Resolve(ctx, &structure.Request{PrimaryID: "1", SecondaryID: "2"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"primary:1"}, log.list())
}

func TestCancelledDuringSecondaryIsNotUnavailable(t *testing.T) {
	log := &callLog{}
	ctx, cancel := context.WithCancel(context.Background())
	secondary := &cancelSource{fakeSource: fakeSource{name: "secondary", log: log}, cancel: cancel}
	svc := NewWithSources(&fakeSource{name: "primary", log: log}, secondary, display)

	out := svc.ResolveOutcome(ctx, &structure.Request{PrimaryID: "1", SecondaryID: "2"})
	assert.Equal(t, structure.Failed, out.State)
	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.NotErrorIs(t, out.Err, code.StructureUnavailable)
	assert.Equal(t, []string{"primary:1", "secondary:2"}, log.list())
}

type cancelSource struct {
	fakeSource
	cancel context.CancelFunc
}

func (c *cancelSource) Fetch(ctx context.Context, id string) (string, error) {
	c.log.add(c.name + ":" + id)
	c.cancel()
	return "", code.RPCHttpErr.WithErr(ctx.Err())
}

func TestViewMergesDefaults(t *testing.T) {
	_, svc := newFakes(map[string]string{"2244": "aspirin"}, nil)

	resp, err := svc.View(context.Background(), &structure.DisplayConfig{CID: "2244", Mode: structure.ModeBalls})
	require.NoError(t, err)
	assert.Equal(t, "3-D Molecular Viewer", resp.Title)
	assert.Equal(t, "0xC0C0C0", resp.Background)
	assert.Equal(t, structure.ModeBalls, resp.Mode)
	assert.Contains(t, resp.Style, "sphere")
	assert.Equal(t, "aspirin", resp.Data)
	assert.Equal(t, structure.SourcePrimary, resp.Source)
}

func TestViewUnknownModeFallsBackToStick(t *testing.T) {
	_, svc := newFakes(map[string]string{"3084463": "P"}, nil)

	resp, err := svc.View(context.Background(), &structure.DisplayConfig{Mode: "ribbon"})
	require.NoError(t, err)
	assert.Equal(t, structure.ModeStick, resp.Mode)
	assert.Equal(t, structure.Style{"stick": {}}, resp.Style)
}

func TestViewPropagatesUnavailable(t *testing.T) {
	_, svc := newFakes(nil, nil)

	_, err := svc.View(context.Background(), nil)
	assert.True(t, errors.Is(err, code.StructureUnavailable))
}

// The scenarios below run the real PubChem / Workbench clients against
// local servers.

func newUpstream(t *testing.T, name string, log *callLog, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(name + ":" + r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newHTTPResolver(pc, mw *httptest.Server) structure.Service {
	return NewWithSources(
		pubchem.New(config.RPCPubChem{Addr: pc.URL}),
		workbench.New(config.RPCWorkbench{Addr: mw.URL}),
		display,
	)
}

func TestScenarioPrimaryDocument(t *testing.T) {
	log := &callLog{}
	pc := newUpstream(t, "pubchem", log, http.StatusOK, "3084463\nM  END\n$$$$\n")
	mw := newUpstream(t, "workbench", log, http.StatusOK, "5772\nM  END\n$$$$\n")

	doc, err := newHTTPResolver(pc, mw).Resolve(context.Background(),
		&structure.Request{PrimaryID: "3084463", SecondaryID: "5772"})
	require.NoError(t, err)
	assert.Equal(t, structure.SourcePrimary, doc.Source)
	assert.Equal(t, pubchem.Name, doc.Origin)
	assert.Equal(t, []string{"pubchem:/rest/pug/compound/cid/3084463/SDF"}, log.list())
}

func TestScenarioPrimaryNotFound(t *testing.T) {
	log := &callLog{}
	pc := newUpstream(t, "pubchem", log, http.StatusNotFound, "PUGREST.NotFound")
	mw := newUpstream(t, "workbench", log, http.StatusOK, "5772\nM  END\n$$$$\n")

	doc, err := newHTTPResolver(pc, mw).Resolve(context.Background(),
		&structure.Request{PrimaryID: "3084463", SecondaryID: "5772"})
	require.NoError(t, err)
	assert.Equal(t, structure.SourceSecondary, doc.Source)
	assert.Equal(t, workbench.Name, doc.Origin)
	assert.Equal(t, []string{
		"pubchem:/rest/pug/compound/cid/3084463/SDF",
		"workbench:/rest/compound/regno/5772/sdf",
	}, log.list())
}

func TestScenarioBothUnavailable(t *testing.T) {
	log := &callLog{}
	pc := newUpstream(t, "pubchem", log, http.StatusNotFound, "")
	mw := newUpstream(t, "workbench", log, http.StatusInternalServerError, "")

	_, err := newHTTPResolver(pc, mw).Resolve(context.Background(),
		&structure.Request{PrimaryID: "3084463", SecondaryID: "5772"})
	assert.ErrorIs(t, err, code.StructureUnavailable)
	assert.Len(t, log.list(), 2)
}

func TestProgressStates(t *testing.T) {
	cases := []struct {
		name      string
		primary   map[string]string
		secondary map[string]string
		want      []structure.State
	}{
		{
			name:    "primary",
			primary: map[string]string{"3084463": "P"},
			want:    []structure.State{structure.AttemptingPrimary, structure.Resolved},
		},
		{
			name:      "secondary",
			secondary: map[string]string{"5772": "S"},
			want:      []structure.State{structure.AttemptingPrimary, structure.AttemptingSecondary, structure.Resolved},
		},
		{
			name: "failed",
			want: []structure.State{structure.AttemptingPrimary, structure.AttemptingSecondary, structure.Failed},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, svc := newFakes(tc.primary, tc.secondary)
			var got []structure.State
			_, _ = svc.ViewWithProgress(context.Background(), nil, func(s structure.State) {
				got = append(got, s)
			})
			assert.Equal(t, tc.want, got)
		})
	}
}
