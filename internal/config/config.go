// Package config loads skyseeker settings from TOML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/naoina/toml"

	"github.com/litescript/skyseeker/internal/astro"
	"github.com/litescript/skyseeker/internal/logging"
	"github.com/litescript/skyseeker/internal/scheduler"
	"github.com/litescript/skyseeker/internal/sky"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the file layout.
type Config struct {
	Observer         Observer         `toml:"observer"`
	EarthOrientation EarthOrientation `toml:"earth_orientation"`
	Scheduler        Scheduler        `toml:"scheduler"`
	Catalog          Catalog          `toml:"catalog"`
	Ephemeris        Ephemeris        `toml:"ephemeris"`
	Log              Log              `toml:"log"`
}

// Observer locates the site. Longitude and latitude are decimal degrees
// or sexagesimal strings such as "-71:14:30"; unset means 0.
type Observer struct {
	Longitude   any     `toml:"longitude"`
	Latitude    any     `toml:"latitude"`
	Height      float64 `toml:"height"`
	Pressure    float64 `toml:"pressure"`
	Temperature float64 `toml:"temperature"`
	Humidity    float64 `toml:"humidity"`
	Wavelength  float64 `toml:"wavelength"`
}

// EarthOrientation holds bulletin values. Polar motion is in arcseconds,
// DUT1 in seconds.
type EarthOrientation struct {
	PolarX float64 `toml:"polar_x"`
	PolarY float64 `toml:"polar_y"`
	DUT1   float64 `toml:"dut1"`
}

type Scheduler struct {
	BatchSize int    `toml:"batch_size"`
	Workers   int    `toml:"workers"`
	Tick      string `toml:"tick"`
}

// Catalog points at an encoded catalog. Empty selects the built-in
// bright stars.
type Catalog struct {
	Path string `toml:"path"`
}

type Ephemeris struct {
	VSOP87Dir string `toml:"vsop87_dir"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns a configuration usable without a file.
func Default() Config {
	return Config{
		Observer: Observer{
			Height:      sky.DefaultHeight,
			Pressure:    sky.DefaultPressure,
			Temperature: sky.DefaultTemperature,
			Humidity:    sky.DefaultHumidity,
			Wavelength:  sky.DefaultWavelength,
		},
		Scheduler: Scheduler{
			BatchSize: scheduler.DefaultBatchSize,
			Workers:   1,
			Tick:      "250ms",
		},
		Log: Log{Level: "info"},
	}
}

// Load overlays the file at path onto Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse is Load over in-memory TOML.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Scheduler.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be positive, got %d", ErrInvalid, c.Scheduler.BatchSize)
	}
	if c.Scheduler.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Scheduler.Workers)
	}
	if _, err := c.TickInterval(); err != nil {
		return err
	}
	if _, err := c.SkyObserver(); err != nil {
		return err
	}
	if h := c.Observer.Humidity; h < 0 || h > 1 {
		return fmt.Errorf("%w: humidity must be within [0, 1], got %v", ErrInvalid, h)
	}
	return nil
}

// TickInterval parses the scheduler tick.
func (c Config) TickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Scheduler.Tick)
	if err != nil {
		return 0, fmt.Errorf("%w: tick: %w", ErrInvalid, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: tick must be positive, got %v", ErrInvalid, d)
	}
	return d, nil
}

// SkyObserver converts the observer section.
func (c Config) SkyObserver() (sky.Observer, error) {
	lon, err := angle(c.Observer.Longitude)
	if err != nil {
		return sky.Observer{}, fmt.Errorf("%w: longitude: %w", ErrInvalid, err)
	}
	lat, err := angle(c.Observer.Latitude)
	if err != nil {
		return sky.Observer{}, fmt.Errorf("%w: latitude: %w", ErrInvalid, err)
	}
	if math.Abs(lat) > math.Pi/2 {
		return sky.Observer{}, fmt.Errorf("%w: latitude out of range", ErrInvalid)
	}
	if math.Abs(lon) > 2*math.Pi {
		return sky.Observer{}, fmt.Errorf("%w: longitude out of range", ErrInvalid)
	}

	o := c.Observer
	return sky.Observer{
		Longitude:   lon,
		Latitude:    lat,
		Height:      sky.Float(o.Height),
		Pressure:    sky.Float(o.Pressure),
		Temperature: sky.Float(o.Temperature),
		Humidity:    sky.Float(o.Humidity),
		Wavelength:  sky.Float(o.Wavelength),
	}, nil
}

// SkyEarthOrientation converts the bulletin values to radians and seconds.
func (c Config) SkyEarthOrientation() sky.EarthOrientation {
	return sky.EarthOrientation{
		PolarX: astro.ArcsecondsToRadians(c.EarthOrientation.PolarX),
		PolarY: astro.ArcsecondsToRadians(c.EarthOrientation.PolarY),
		DUT1:   c.EarthOrientation.DUT1,
	}
}

// SchedulerConfig returns scheduler settings wired to log.
func (c Config) SchedulerConfig(log *logging.Logger) scheduler.Config {
	return scheduler.Config{
		BatchSize: c.Scheduler.BatchSize,
		Workers:   c.Scheduler.Workers,
		Logger:    log,
	}
}

// LogLevel parses the log section.
func (c Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

// angle reads decimal degrees or a sexagesimal string, returning radians.
func angle(v any) (float64, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return v * math.Pi / 180, nil
	case int64:
		return float64(v) * math.Pi / 180, nil
	case int:
		return float64(v) * math.Pi / 180, nil
	case string:
		return astro.ParseDMS(v)
	default:
		return 0, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}
