package main

import (
	"fmt"

	"github.com/litescript/skyseeker/internal/astro"
	"github.com/litescript/skyseeker/internal/body"
	"github.com/litescript/skyseeker/internal/catalog"
	"github.com/litescript/skyseeker/internal/codec"
	"github.com/litescript/skyseeker/internal/config"
	"github.com/litescript/skyseeker/internal/logging"
	"github.com/litescript/skyseeker/internal/sky"
)

// env is the wiring shared by the commands. The catalog is the single
// instance passed to every consumer.
type env struct {
	cfg      config.Config
	log      *logging.Logger
	pipeline body.Pipeline
	catalog  *catalog.Catalog
	observer sky.Observer
	eo       sky.EarthOrientation
}

// loadConfig reads --config when given and applies the flag overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return config.Config{}, err
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if lonFlag != "" {
		cfg.Observer.Longitude = lonFlag
	}
	if latFlag != "" {
		cfg.Observer.Latitude = latFlag
	}
	if catalogArg != "" {
		cfg.Catalog.Path = catalogArg
	}
	return cfg, cfg.Validate()
}

func newEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.LogLevel())

	obs, err := cfg.SkyObserver()
	if err != nil {
		return nil, err
	}

	eph := astro.NewMeeusEphemeris()
	if dir := cfg.Ephemeris.VSOP87Dir; dir != "" {
		if eph, err = astro.NewVSOP87Ephemeris(dir); err != nil {
			return nil, fmt.Errorf("load VSOP87 from %s: %w", dir, err)
		}
		log.Debug("Using VSOP87 planet positions from %s", dir)
	}
	pipeline := body.NewPipeline(astro.NewReducer(eph), eph)

	cat := catalog.New(pipeline)
	cat.LoadStandardBodies()
	if path := cfg.Catalog.Path; path != "" {
		stars, err := codec.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cat.LoadAll(stars)
		log.Info("Loaded %d bodies from %s", len(stars), path)
	} else {
		cat.LoadAll(body.BrightStars())
	}

	return &env{
		cfg:      cfg,
		log:      log,
		pipeline: pipeline,
		catalog:  cat,
		observer: obs,
		eo:       cfg.SkyEarthOrientation(),
	}, nil
}
