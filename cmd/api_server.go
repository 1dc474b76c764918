package cmd

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/dmi-tools/internal"
	"github.com/rm-hull/dmi-tools/internal/dmi"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

type pathRequest struct {
	Path string `json:"path" binding:"required"`
}

type createRequest struct {
	Path   string `json:"path" binding:"required"`
	Width  string `json:"width"`
	Height string `json:"height"`
	Data   string `json:"data"`
}

type resizeRequest struct {
	Path   string `json:"path" binding:"required"`
	Width  string `json:"width"`
	Height string `json:"height"`
	Filter string `json:"filter"`
}

type resultResponse struct {
	Result string `json:"result"`
}

// ApiServer exposes the host calls over HTTP. Each endpoint answers 200 with
// the same string the in-process call would return. Request paths are
// relative to rootDir.
func ApiServer(cfg internal.Config, rootDir string, port int, debug bool) {
	internal.ShowVersion()
	internal.UserInfo()
	internal.EnvironmentVars("DMI_")

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{})
	if err != nil {
		log.Fatalf("failed to initialize healthcheck: %v", err)
	}

	registerRoutes(r, dmi.NewHost(cfg.ResizeBackend), rootDir)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d (root=%s, resize backend=%s)...", port, rootDir, cfg.ResizeBackend)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP API Server failed to start on port %d: %v", port, err)
	}
}

func registerRoutes(r gin.IRouter, host *dmi.Host, rootDir string) {
	v1 := r.Group("/v1/dmi")

	v1.POST("/strip", func(c *gin.Context) {
		var req pathRequest
		if !bind(c, &req) {
			return
		}
		path, ok := resolve(c, rootDir, req.Path)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resultResponse{Result: host.StripMetadata(path)})
	})

	v1.POST("/create", func(c *gin.Context) {
		var req createRequest
		if !bind(c, &req) {
			return
		}
		path, ok := resolve(c, rootDir, req.Path)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resultResponse{Result: host.CreatePNG(path, req.Width, req.Height, req.Data)})
	})

	v1.POST("/resize", func(c *gin.Context) {
		var req resizeRequest
		if !bind(c, &req) {
			return
		}
		path, ok := resolve(c, rootDir, req.Path)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resultResponse{Result: host.ResizePNG(path, req.Width, req.Height, req.Filter)})
	})

	v1.POST("/states", func(c *gin.Context) {
		var req pathRequest
		if !bind(c, &req) {
			return
		}
		path, ok := resolve(c, rootDir, req.Path)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resultResponse{Result: host.IconStates(path)})
	})
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// resolve maps a request path onto rootDir. Absolute paths and anything that
// climbs out of rootDir are refused.
func resolve(c *gin.Context, rootDir, path string) (string, bool) {
	if !filepath.IsLocal(path) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("path %q is outside the root directory", path)})
		return "", false
	}
	return filepath.Join(rootDir, path), true
}
