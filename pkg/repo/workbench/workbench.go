package workbench

import (
	"github.com/scienceol/molview/internal/config"
	"github.com/scienceol/molview/pkg/repo"
	"github.com/scienceol/molview/pkg/repo/sdf"
)

const (
	Name    = "metabolomics_workbench"
	pathSDF = "/rest/compound/regno/{id}/sdf"
)

func NewWorkbenchRepo() repo.StructureSource {
	return New(config.Global().RPC.Workbench)
}

// New returns a source serving SDF records keyed by Metabolomics Workbench regno.
func New(conf config.RPCWorkbench) repo.StructureSource {
	return sdf.New(&sdf.Option{
		Name:    Name,
		BaseURL: conf.Addr,
		Path:    pathSDF,
		Timeout: conf.Timeout,
	})
}
