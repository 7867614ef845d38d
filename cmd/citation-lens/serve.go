package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-lens/internal/cache"
	"github.com/pdiddy/citation-lens/internal/httputil"
	"github.com/pdiddy/citation-lens/internal/ident"
	"github.com/pdiddy/citation-lens/internal/overlay"
	"github.com/pdiddy/citation-lens/internal/scholar"
	"github.com/pdiddy/citation-lens/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the overlay as a local JSON endpoint",
	Long: `Serve exposes the citation overlay over HTTP for the browser widget:

  GET /overlay?url=<arxiv-page-url>
  GET /overlay/<arxiv-id>

Both return a discriminated JSON result: {"status":"ready", "bundle":...}
or {"status":"error", "message":...}. Bundles share the same session cache
as the lookup command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadAppConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Serve.Addr = addr
		}
		logger := newLogger()

		gw := cache.New(cfg.Cache, logger)
		defer gw.Close()

		client := scholar.NewClient(
			scholar.WithHTTPClient(httputil.NewClient(cfg.Overlay.Timeout, cfg.Overlay.UserAgent)),
			scholar.WithRateLimit(cfg.Overlay.RequestsPerSecond),
		)
		pipeline := overlay.New(client, gw, cfg.Overlay, logger)

		gin.SetMode(gin.ReleaseMode)
		router := gin.New()
		router.Use(gin.Recovery())

		router.GET("/overlay", func(c *gin.Context) {
			pageURL := c.Query("url")
			id, err := resolveOverlayID(pageURL)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
				return
			}
			respondOverlay(c, pipeline, id)
		})

		router.GET("/overlay/:id", func(c *gin.Context) {
			id := c.Param("id")
			if !bareIDPattern.MatchString(id) {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "not an arXiv identifier"})
				return
			}
			respondOverlay(c, pipeline, id)
		})

		fmt.Fprintf(os.Stderr, "serving overlay on http://%s\n", cfg.Serve.Addr)
		return router.Run(cfg.Serve.Addr)
	},
}

func resolveOverlayID(pageURL string) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("missing url parameter")
	}
	id, ok := ident.FromURL(pageURL)
	if !ok {
		return "", fmt.Errorf("not an arXiv paper page")
	}
	return id, nil
}

// respondOverlay runs one lookup and writes the final event as JSON.
// Loading events are meaningless over a blocking request and are skipped.
func respondOverlay(c *gin.Context, pipeline *overlay.Pipeline, arxivID string) {
	var final overlay.Event
	pipeline.Lookup(c.Request.Context(), arxivID, func(e overlay.Event) {
		if e.Kind != overlay.EventLoading {
			final = e
		}
	})

	switch final.Kind {
	case overlay.EventReady:
		c.JSON(http.StatusOK, overlayResponse{
			Status:    "ready",
			FromCache: final.FromCache,
			Bundle:    final.Bundle,
		})
	default:
		c.JSON(http.StatusOK, overlayResponse{
			Status:  "error",
			Message: final.Message,
		})
	}
}

type overlayResponse struct {
	Status    string              `json:"status"`
	Message   string              `json:"message,omitempty"`
	FromCache bool                `json:"from_cache,omitempty"`
	Bundle    *types.ResultBundle `json:"bundle,omitempty"`
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
