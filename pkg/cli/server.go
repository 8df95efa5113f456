package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mchmarny/repwatch/pkg/config"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
	serverPortDefault         = 8080
	serverAddressDefault      = "127.0.0.1"
)

var (
	portFlag = &cli.IntFlag{
		Name:     "port",
		Usage:    "Port on which the server will listen",
		Value:    serverPortDefault,
		Required: false,
	}

	addressFlag = &cli.StringFlag{
		Name:  "address",
		Usage: "Address on which the server will listen",
		Value: serverAddressDefault,
	}

	serverCmd = &cli.Command{
		Name:    "server",
		Aliases: []string{"serve"},
		Usage:   "Start local HTTP API for scoring uploaded files",
		Action:  cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
			addressFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	cfg := getConfig(c)
	address := fmt.Sprintf("%s:%d", c.String(addressFlag.Name), c.Int(portFlag.Name))

	s := &http.Server{
		Addr:           address,
		Handler:        makeRouter(cfg.Config, prometheus.NewRegistry()),
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("error starting server")
			done <- syscall.SIGTERM
		}
	}()

	log.Info().Str("address", fmt.Sprintf("http://%s", address)).Msg("server started")

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("error shutting down server")
	}
	return nil
}

func makeRouter(cfg *config.Config, reg *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	m := newServerMetrics(reg)

	r := gin.New()
	r.MaxMultipartMemory = maxUploadBytes
	r.Use(gin.Recovery(), requestLogger(), m.middleware())

	r.GET("/", homeHandler)
	r.GET("/healthz", healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")
	api.Use(limitBody(maxUploadBytes, m))
	api.POST("/report", reportAPIHandler(cfg, m))
	api.POST("/mentions", mentionsAPIHandler(cfg, m))
	api.GET("/dimensions", dimensionsAPIHandler(cfg))

	return r
}

// limitBody rejects request bodies larger than n bytes. Declared lengths are
// checked up front; streamed bodies fail on read with *http.MaxBytesError.
func limitBody(n int64, m *serverMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			abortWithError(c, m, &http.MaxBytesError{Limit: n})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
