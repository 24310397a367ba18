package main

import (
	"os"

	"github.com/judwhite/go-svc"
	"github.com/rs/zerolog"

	"github.com/jxo-me/dyndns/config"
	"github.com/jxo-me/dyndns/core/logger"
	"github.com/jxo-me/dyndns/core/service"
	"github.com/jxo-me/dyndns/pkg/watcher"
	"github.com/jxo-me/dyndns/sdk/dns/hostingde"
	xservice "github.com/jxo-me/dyndns/sdk/service"
)

type program struct {
	cfgFile      string
	outputFormat string

	srv     service.IDynDNSService
	manager *config.FileManager
	booted  bool
}

func (p *program) Init(env svc.Environment) error {
	cfg, err := config.Load(p.cfgFile)
	if err != nil {
		return err
	}

	if p.outputFormat != "" {
		if err := cfg.Write(os.Stdout, p.outputFormat); err != nil {
			return err
		}
		os.Exit(0)
	}

	logger.SetDefault(logFromConfig(cfg.Log))
	config.Set(cfg)

	log := logger.Default()
	client := hostingde.New(&cfg.Provider, log)
	p.srv = xservice.NewDynDNS(client, log, &cfg.Main)

	w, err := watcher.NewFile()
	if err != nil {
		return err
	}
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	p.manager, err = config.NewFileManager(w, cfg.Source(), &zl)
	if err != nil {
		return err
	}

	return nil
}

func (p *program) Start() error {
	srv := p.srv
	go func() {
		if err := srv.Serve(); err != nil {
			logger.Default().Fatalf("%s service failed: %s", srv.String(), err)
		}
	}()

	manager := p.manager
	go func() {
		if err := manager.Start(p); err != nil {
			logger.Default().Warnf("config watcher failed: %s", err)
		}
	}()

	return nil
}

func (p *program) Stop() error {
	if p.manager != nil {
		p.manager.Shutdown()
	}
	if p.srv != nil {
		if err := p.srv.Close(); err != nil {
			return err
		}
		logger.Default().Infof("service %s shutdown", p.srv.String())
	}
	return nil
}

// ConfigDidUpdate is called by the config FileManager. The running config is
// immutable for the process lifetime, so a change on disk only earns a
// restart reminder.
func (p *program) ConfigDidUpdate(config.Config) {
	if !p.booted {
		p.booted = true
		return
	}
	logger.Default().Warnf("Configuration file %s changed on disk, restart dyndns to apply it.", p.cfgFile)
}
