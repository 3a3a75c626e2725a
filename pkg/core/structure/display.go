package structure

import (
	"strings"

	"github.com/scienceol/molview/internal/config"
)

type Mode string

const (
	ModeStick     Mode = "stick"
	ModeSphere    Mode = "sphere"
	ModeLine      Mode = "line"
	ModeWireframe Mode = "wireframe"
	ModeVDW       Mode = "vdw"
	ModeCross     Mode = "cross"
	ModeBalls     Mode = "balls"
)

// Style is the rendering engine style descriptor, keyed by representation.
type Style map[string]map[string]any

func (m Mode) Valid() bool {
	switch m {
	case ModeStick, ModeSphere, ModeLine, ModeWireframe, ModeVDW, ModeCross, ModeBalls:
		return true
	}
	return false
}

// StyleFor maps a display mode to its style. Unknown modes render as sticks.
func StyleFor(mode Mode) Style {
	switch mode {
	case ModeSphere, ModeLine, ModeWireframe, ModeVDW, ModeCross:
		return Style{string(mode): {}}
	case ModeBalls:
		return Style{
			"stick":  {"radius": 0.12},
			"sphere": {"scale": 0.22, "opacity": 1.0},
		}
	default:
		return Style{string(ModeStick): {}}
	}
}

type DisplayConfig struct {
	CID        string `json:"cid" form:"cid"`
	Regno      string `json:"regno" form:"regno"`
	Title      string `json:"title" form:"title"`
	Mode       Mode   `json:"mode" form:"mode"`
	Background string `json:"bg" form:"bg"`
}

func DisplayFromViewer(conf config.Viewer) DisplayConfig {
	return DisplayConfig{
		CID:        conf.CID,
		Regno:      conf.Regno,
		Title:      conf.Title,
		Mode:       Mode(conf.Mode),
		Background: conf.Background,
	}
}

// Merge returns a copy of d with every non-blank field of override applied.
func (d DisplayConfig) Merge(override *DisplayConfig) DisplayConfig {
	if override == nil {
		return d
	}
	pick := func(base, o string) string {
		if strings.TrimSpace(o) != "" {
			return strings.TrimSpace(o)
		}
		return base
	}
	return DisplayConfig{
		CID:        pick(d.CID, override.CID),
		Regno:      pick(d.Regno, override.Regno),
		Title:      pick(d.Title, override.Title),
		Mode:       Mode(pick(string(d.Mode), string(override.Mode))),
		Background: pick(d.Background, override.Background),
	}
}

func (d DisplayConfig) Request() *Request {
	return &Request{PrimaryID: d.CID, SecondaryID: d.Regno}
}

type ViewResp struct {
	Title      string `json:"title"`
	Mode       Mode   `json:"mode"`
	Style      Style  `json:"style"`
	Background string `json:"bg"`
	*Document
}
