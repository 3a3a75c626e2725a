package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/molview/internal/config"
)

// Health is a simple health check.
func Health(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Live is a liveness probe.
func Live(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether both structure sources are configured. Upstreams are
// public services and are not probed.
func Ready(g *gin.Context) {
	rpc := config.Global().RPC
	checks := gin.H{}
	healthy := true

	for name, addr := range map[string]string{
		"pubchem":   rpc.PubChem.Addr,
		"workbench": rpc.Workbench.Addr,
	} {
		if addr == "" {
			checks[name] = "not_configured"
			healthy = false
		} else {
			checks[name] = "ok"
		}
	}

	status := http.StatusOK
	msg := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		msg = "not_ready"
	}

	g.JSON(status, gin.H{
		"status": msg,
		"checks": checks,
	})
}
