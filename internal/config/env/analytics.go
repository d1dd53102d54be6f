package env

import (
	"fmt"
	"os"
	"time"

	"slotinsight_backend/internal/config"

	"gopkg.in/yaml.v3"
)

// Значения по умолчанию, если секция не задана в config.yaml
var (
	defaultBetThresholds = []float64{10000, 100000, 200000, 500000, 1000000, 2000000}
	defaultSpeedsMS      = map[string]int{"slow": 500, "normal": 100, "fast": 10}
)

const (
	defaultWhaleMultiplier  = 10
	defaultMinnowMultiplier = 0.1
	defaultBandSmall        = 5
	defaultBandBig          = 20
	defaultBandMega         = 50
	defaultCheckpointCount  = 100
)

type yamlFile struct {
	Analytics analyticsYAML `yaml:"analytics"`
	Replay    replayYAML    `yaml:"replay"`
}

type analyticsYAML struct {
	BetThresholds    []float64 `yaml:"bet_thresholds"`
	WhaleMultiplier  float64   `yaml:"whale_multiplier"`
	MinnowMultiplier float64   `yaml:"minnow_multiplier"`
	BandBounds       struct {
		Small float64 `yaml:"small"`
		Big   float64 `yaml:"big"`
		Mega  float64 `yaml:"mega"`
	} `yaml:"band_bounds"`
}

type replayYAML struct {
	CheckpointCount int            `yaml:"checkpoint_count"`
	SpeedsMS        map[string]int `yaml:"speeds_ms"`
}

func readYAML(path string) (*yamlFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var parsed yamlFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &parsed, nil
}

type analyticsConfig struct {
	thresholds []float64
	whale      float64
	minnow     float64
	small      float64
	big        float64
	mega       float64
}

// NewAnalyticsConfigFromYAML - настройки расчетов из config.yaml.
// Отсутствующие поля заполняются значениями по умолчанию
func NewAnalyticsConfigFromYAML(path string) (config.AnalyticsConfig, error) {
	parsed, err := readYAML(path)
	if err != nil {
		return nil, err
	}

	cfg := &analyticsConfig{
		thresholds: parsed.Analytics.BetThresholds,
		whale:      parsed.Analytics.WhaleMultiplier,
		minnow:     parsed.Analytics.MinnowMultiplier,
		small:      parsed.Analytics.BandBounds.Small,
		big:        parsed.Analytics.BandBounds.Big,
		mega:       parsed.Analytics.BandBounds.Mega,
	}
	if len(cfg.thresholds) == 0 {
		cfg.thresholds = defaultBetThresholds
	}
	if cfg.whale <= 0 {
		cfg.whale = defaultWhaleMultiplier
	}
	if cfg.minnow <= 0 {
		cfg.minnow = defaultMinnowMultiplier
	}
	if cfg.small <= 0 || cfg.big <= cfg.small || cfg.mega <= cfg.big {
		cfg.small, cfg.big, cfg.mega = defaultBandSmall, defaultBandBig, defaultBandMega
	}

	return cfg, nil
}

func (cfg *analyticsConfig) BetThresholds() []float64 {
	return cfg.thresholds
}

func (cfg *analyticsConfig) WhaleMultiplier() float64 {
	return cfg.whale
}

func (cfg *analyticsConfig) MinnowMultiplier() float64 {
	return cfg.minnow
}

func (cfg *analyticsConfig) BandBounds() (float64, float64, float64) {
	return cfg.small, cfg.big, cfg.mega
}

type replayConfig struct {
	checkpoints int
	speeds      map[string]time.Duration
}

// NewReplayConfigFromYAML - настройки воспроизведения из config.yaml
func NewReplayConfigFromYAML(path string) (config.ReplayConfig, error) {
	parsed, err := readYAML(path)
	if err != nil {
		return nil, err
	}

	cfg := &replayConfig{
		checkpoints: parsed.Replay.CheckpointCount,
		speeds:      make(map[string]time.Duration),
	}
	if cfg.checkpoints <= 0 {
		cfg.checkpoints = defaultCheckpointCount
	}

	speedsMS := parsed.Replay.SpeedsMS
	if len(speedsMS) == 0 {
		speedsMS = defaultSpeedsMS
	}
	for name, ms := range speedsMS {
		cfg.speeds[name] = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}

func (cfg *replayConfig) CheckpointCount() int {
	return cfg.checkpoints
}

// SpeedDelay - задержка между кадрами.
// Неизвестная скорость трактуется как normal
func (cfg *replayConfig) SpeedDelay(speed string) time.Duration {
	if d, ok := cfg.speeds[speed]; ok {
		return d
	}
	if d, ok := cfg.speeds["normal"]; ok {
		return d
	}
	return time.Duration(defaultSpeedsMS["normal"]) * time.Millisecond
}
