package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/cv-builder/internal/builder"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/logging"
	"github.com/jonathan/cv-builder/internal/store"
)

// app bundles what every command needs: configuration, logger and the opened store.
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	store store.Store
}

// setup loads and validates configuration, builds the logger and opens the store.
func setup(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	log.WithFields(logrus.Fields{
		"backend": cfg.Store.Backend,
		"key":     cfg.Store.Key,
	}).Debug("Store opened")

	return &app{cfg: cfg, log: log, store: s}, nil
}

// newBuilder creates a builder on the app store and restores saved progress, falling back
// to sample content.
func (a *app) newBuilder(ctx context.Context) (*builder.Builder, error) {
	b, err := builder.New(builder.Options{
		Store:        a.store,
		Key:          a.cfg.Store.Key,
		SaveDelay:    a.cfg.Autosave.Delay,
		ConfirmDelay: a.cfg.Navigation.ConfirmDelay,
		Logger:       a.log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create builder: %w", err)
	}
	if _, err := b.Init(ctx); err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to restore saved progress: %w", err)
	}
	return b, nil
}

// Close releases the store.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close store")
	}
}
