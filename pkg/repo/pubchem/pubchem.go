package pubchem

import (
	"github.com/scienceol/molview/internal/config"
	"github.com/scienceol/molview/pkg/repo"
	"github.com/scienceol/molview/pkg/repo/sdf"
)

const (
	Name     = "pubchem"
	pathSDF3 = "/rest/pug/compound/cid/{id}/SDF"
)

func NewPubChemRepo() repo.StructureSource {
	return New(config.Global().RPC.PubChem)
}

// New returns a source serving 3-D SDF records keyed by PubChem CID.
func New(conf config.RPCPubChem) repo.StructureSource {
	return sdf.New(&sdf.Option{
		Name:    Name,
		BaseURL: conf.Addr,
		Path:    pathSDF3,
		Query:   map[string]string{"record_type": "3d"},
		Timeout: conf.Timeout,
	})
}
