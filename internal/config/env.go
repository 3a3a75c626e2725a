package config

import "time"

type RPC struct {
	PubChem   RPCPubChem   `mapstructure:",squash"`
	Workbench RPCWorkbench `mapstructure:",squash"`
}

type RPCPubChem struct {
	Addr    string        `mapstructure:"PUBCHEM_ADDR" env:"PUBCHEM_ADDR, overwrite" default:"https://pubchem.ncbi.nlm.nih.gov"`
	Timeout time.Duration `mapstructure:"PUBCHEM_TIMEOUT" env:"PUBCHEM_TIMEOUT, overwrite"`
}

type RPCWorkbench struct {
	Addr    string        `mapstructure:"WORKBENCH_ADDR" env:"WORKBENCH_ADDR, overwrite" default:"https://www.metabolomicsworkbench.org"`
	Timeout time.Duration `mapstructure:"WORKBENCH_TIMEOUT" env:"WORKBENCH_TIMEOUT, overwrite"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" env:"PLATFORM, overwrite" default:"molview"`
	Service  string `mapstructure:"SERVICE" env:"SERVICE, overwrite" default:"api"`
	Port     int    `mapstructure:"WEB_PORT" env:"WEB_PORT, overwrite" default:"8080"`
	Env      string `mapstructure:"ENV" env:"ENV, overwrite" default:"dev"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" env:"LOG_PATH, overwrite" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" env:"LOG_LEVEL, overwrite" default:"info"`
}

type Trace struct {
	Version        string `mapstructure:"TRACE_VERSION" env:"TRACE_VERSION, overwrite" default:"0.0.1"`
	TraceEndpoint  string `mapstructure:"TRACE_TRACEENDPOINT" env:"TRACE_TRACEENDPOINT, overwrite" default:""`
	MetricEndpoint string `mapstructure:"TRACE_METRICENDPOINT" env:"TRACE_METRICENDPOINT, overwrite" default:""`
}

// Viewer holds the display defaults merged under every viewer request.
type Viewer struct {
	CID        string `mapstructure:"VIEWER_CID" env:"VIEWER_CID, overwrite" default:"3084463"`
	Regno      string `mapstructure:"VIEWER_REGNO" env:"VIEWER_REGNO, overwrite" default:"5772"`
	Title      string `mapstructure:"VIEWER_TITLE" env:"VIEWER_TITLE, overwrite" default:"3-D Molecular Viewer"`
	Mode       string `mapstructure:"VIEWER_MODE" env:"VIEWER_MODE, overwrite" default:"stick"`
	Background string `mapstructure:"VIEWER_BG" env:"VIEWER_BG, overwrite" default:"0xC0C0C0"`
}
