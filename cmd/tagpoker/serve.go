package main

import (
	"github.com/lox/tagpoker/internal/server"
)

// ServeCmd runs the HTTP and websocket service.
type ServeCmd struct {
	Addr     string `help:"Listen address; defaults to the configured address and port"`
	Strategy string `short:"s" help:"Default strategy for check requests"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	idle, err := cfg.Server.IdleTimeoutDuration()
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.ServerAddress()
	}
	strat := c.Strategy
	if strat == "" {
		strat = cfg.Simulation.Strategy
	}

	srv, err := server.New(server.Config{
		Addr:        addr,
		IdleTimeout: idle,
		Strategy:    strat,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()
	return srv.ListenAndServe(ctx)
}
