package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/driftindex/adictl/pkg/server"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
	serverPortDefault         = 8080
)

var (
	portFlag = &cli.IntFlag{
		Name:  "port",
		Usage: "Port on which the server will listen",
		Value: serverPortDefault,
	}

	noBrowserFlag = &cli.BoolFlag{
		Name:    "no-browser",
		Aliases: []string{"nb"},
		Usage:   "Do not open browser automatically",
	}

	scheduleFlag = &cli.StringFlag{
		Name:  "schedule",
		Usage: "Cron spec for the automatic refresh",
		Value: server.RefreshCronDefault,
	}

	noScheduleFlag = &cli.BoolFlag{
		Name:  "no-schedule",
		Usage: "Disable the automatic refresh",
	}

	serverCmd = &cli.Command{
		Name:    "server",
		Aliases: []string{"serve"},
		Usage:   "Start the local dashboard server",
		Action:  cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
			noBrowserFlag,
			scheduleFlag,
			noScheduleFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	cfg := getConfig(c)

	t, err := getTracker(c.Context, cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg.DB, t, cfg.Conf.ForecastDays)
	if err != nil {
		return err
	}

	if !c.Bool(noScheduleFlag.Name) {
		if err := srv.StartScheduler(c.String(scheduleFlag.Name)); err != nil {
			return err
		}
		defer srv.StopScheduler()
	}

	address := fmt.Sprintf("127.0.0.1:%d", c.Int(portFlag.Name))
	s := &http.Server{
		Addr:           address,
		Handler:        srv.Handler(),
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

	url := fmt.Sprintf("http://%s", address)
	log.Infof("server started: %s", url)

	if !c.Bool(noBrowserFlag.Name) {
		openBrowser(url)
	}

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorf("error shutting down server: %v", err)
	}
	return nil
}

func openBrowser(url string) {
	var cmd string
	args := make([]string, 0, 1)

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
	case "linux":
		cmd = "xdg-open"
	default: // windows
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler"}
	}

	args = append(args, url)
	if err := exec.Command(cmd, args...).Start(); err != nil {
		log.Errorf("failed to open browser: %v", err)
	}
}
