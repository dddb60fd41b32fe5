package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
)

var (
	portFlag = &cli.IntFlag{
		Name:     "port",
		Usage:    "Port on which the server will listen (optional, defaults to the configured port)",
		Required: false,
	}

	serverCmd = &cli.Command{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "Start local HTTP server for batch upload and inspection",
		Action:  cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	port := c.Int(portFlag.Name)
	if port == 0 {
		port = cfg.Port
	}
	address := fmt.Sprintf("127.0.0.1:%d", port)

	s := &http.Server{
		Addr:           address,
		Handler:        makeRouter(),
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("error starting server: %v", err)
		}
	}()

	log.Infof("server started on %s", address)

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		log.Errorf("error shutting down server: %v", err)
	}
	return nil
}

func makeRouter() *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// Batch API
	r.POST("/batch", batchUploadHandler)

	// Views over the current batch
	r.GET("/data/high", highRiskHandler)
	r.GET("/data/distribution", distributionHandler)
	r.GET("/data/records", recordsHandler)
	r.GET("/download", downloadHandler)

	return r
}
