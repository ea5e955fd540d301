package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/velourluxe/storefront/config"
	"github.com/velourluxe/storefront/internal/adminapi"
	"github.com/velourluxe/storefront/internal/app"
	"github.com/velourluxe/storefront/internal/shopapi"
	"github.com/velourluxe/storefront/internal/webserver"
)

var (
	h       bool
	initdb  bool
	cfgFile string
)

func init() {
	flag.BoolVar(&h, "h", false, "help usage")
	flag.BoolVar(&initdb, "initdb", false, "drop and recreate all tables, then exit")
	flag.StringVar(&cfgFile, "c", "storefront.yml", "config file path")
}

func main() {
	flag.Parse()
	if h {
		flag.Usage()
		return
	}

	cfg := config.LoadConfig(cfgFile)
	_ = os.MkdirAll(cfg.System.Workdir, 0o755)
	_ = os.MkdirAll(cfg.GetLogDir(), 0o755)
	_ = os.MkdirAll(cfg.GetMediaDir(), 0o755)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if initdb {
		application.InitDb()
		fmt.Println("database initialized")
		return
	}

	webserver.Init(application)
	shopapi.Init(application)
	adminapi.Init(application)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		s := <-sig
		zap.L().Info("shutting down", zap.String("signal", s.String()))
		application.Release()
		os.Exit(0)
	}()

	if err := webserver.Listen(); err != nil {
		zap.L().Error("web server stopped", zap.Error(err))
	}
}
