package sdf

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/scienceol/molview/pkg/common/code"
	"github.com/scienceol/molview/pkg/middleware/logger"
	"github.com/scienceol/molview/pkg/repo"
)

const MimeType = "chemical/x-mdl-sdfile"

type Option struct {
	Name    string
	BaseURL string
	// Path is a resty path template with a single {id} parameter.
	Path    string
	Query   map[string]string
	Timeout time.Duration
}

type sdfImpl struct {
	name   string
	path   string
	query  map[string]string
	client *resty.Client
}

func New(opt *Option) repo.StructureSource {
	client := resty.New().
		EnableTrace().
		SetRetryCount(0).
		SetBaseURL(opt.BaseURL).
		SetHeader("Accept", MimeType+", text/plain")
	if opt.Timeout > 0 {
		client.SetTimeout(opt.Timeout)
	}

	return &sdfImpl{
		name:   opt.Name,
		path:   opt.Path,
		query:  opt.Query,
		client: client,
	}
}

func (s *sdfImpl) Name() string {
	return s.name
}

func (s *sdfImpl) Fetch(ctx context.Context, id string) (string, error) {
	req := s.client.R().
		SetContext(ctx).
		SetPathParam("id", id)
	if len(s.query) > 0 {
		req.SetQueryParams(s.query)
	}

	res, err := req.Get(s.path)
	if err != nil {
		logger.Warnf(ctx, "request %s structure id: %s err: %v", s.name, id, err)
		return "", code.RPCHttpErr.WithErr(err)
	}

	if !res.IsSuccess() {
		return "", code.RPCHttpCodeErr.WithMsgf("%s structure query failed: status %d", s.name, res.StatusCode())
	}

	// the payload is returned byte for byte; a molfile may open with a blank title line
	body := string(res.Body())
	if strings.TrimSpace(body) == "" {
		return "", code.RPCHttpEmptyErr.WithMsgf("%s returned an empty structure for id: %s", s.name, id)
	}

	logger.Debugf(ctx, "fetched %s structure id: %s size: %d cost: %s", s.name, id, len(body), res.Time())
	return body, nil
}
