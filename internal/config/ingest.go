package config

import (
	"fmt"
	"time"

	"github.com/hove-io/munin/internal/alias"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// IngestConfig carries every tunable one `munin-ingest` invocation needs,
// layered flags-over-file-over-defaults via viper+pflag the way
// SoySergo-location_microservice's internal/config layers env-over-file —
// generalized here to a CLI tool's flag/file/default precedence rather
// than a long-running service's pure env-var read, per spec.md §5's "CLI
// argument parsing" distinction from the live service's config surface.
type IngestConfig struct {
	Source  string // "admin", "street", "addr", "poi", "stop"
	Dataset string
	Input   string // path to the source file/directory

	TypesenseHost     string
	TypesensePort     int
	TypesenseProtocol string
	TypesenseAPIKey   string

	CatalogRoot string

	ChunkSize              int
	Concurrency            int
	RetryCount             int
	RetryWait              time.Duration
	ForceMergeTimeout      time.Duration
	AllowForceMergeTimeout bool
	Public                 bool

	MaxPopulation      float64
	MaxDistanceReverse float64
	ModeWeights        map[string]float64
}

// defaultModeWeights is the per-physical-mode weight table used when
// neither a config file nor flags supply a mode-weights map.
func defaultModeWeights() map[string]float64 {
	return map[string]float64{
		"rail":    1.0,
		"subway":  0.9,
		"tram":    0.7,
		"bus":     0.5,
		"coach":   0.5,
		"ferry":   0.6,
		"funicular": 0.6,
	}
}

// RegisterFlags wires pflag definitions for every IngestConfig field,
// mirroring the teacher's env-var-name-per-field approach but as flags.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("source", "", "source pipeline to run: admin|street|addr|poi|stop")
	fs.String("dataset", "", "dataset name for the physical index")
	fs.String("input", "", "path to the source file or directory")

	fs.String("typesense-host", "localhost", "Typesense host")
	fs.Int("typesense-port", 8108, "Typesense port")
	fs.String("typesense-protocol", "http", "Typesense protocol")
	fs.String("typesense-api-key", "", "Typesense API key")

	fs.String("catalog-root", "munin", "catalog root alias")

	fs.Int("chunk-size", 1000, "bulk-ship chunk size")
	fs.Int("concurrency", 4, "bulk-ship worker pool size")
	fs.Int("retry-count", 3, "bulk-ship retry count")
	fs.Duration("retry-wait", 200*time.Millisecond, "bulk-ship initial retry wait")
	fs.Duration("force-merge-timeout", 30*time.Second, "force-merge timeout")
	fs.Bool("allow-force-merge-timeout", true, "treat a force-merge timeout as success")
	fs.Bool("public", true, "cascade the publish to the per-doc-type and root aliases")

	fs.Float64("max-population", 2_000_000, "population used to normalize admin weight")
	fs.Float64("max-distance-reverse", 500, "max meters for POI reverse-geocode attach")
}

// LoadIngestConfig binds fs to viper (flags override a config file, which
// overrides the defaults registered on fs) and decodes into IngestConfig,
// following SoySergo-location_microservice's SetConfigFile/AutomaticEnv/
// ReadInConfig-then-GetX population pattern, generalized to flags as the
// outermost layer instead of pure env vars.
func LoadIngestConfig(fs *pflag.FlagSet, configFile string) (*IngestConfig, error) {
	v := viper.New()
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	cfg := &IngestConfig{
		Source:            v.GetString("source"),
		Dataset:           v.GetString("dataset"),
		Input:             v.GetString("input"),
		TypesenseHost:     v.GetString("typesense-host"),
		TypesensePort:     v.GetInt("typesense-port"),
		TypesenseProtocol: v.GetString("typesense-protocol"),
		TypesenseAPIKey:   v.GetString("typesense-api-key"),
		CatalogRoot:       v.GetString("catalog-root"),

		ChunkSize:              v.GetInt("chunk-size"),
		Concurrency:            v.GetInt("concurrency"),
		RetryCount:             v.GetInt("retry-count"),
		RetryWait:              v.GetDuration("retry-wait"),
		ForceMergeTimeout:      v.GetDuration("force-merge-timeout"),
		AllowForceMergeTimeout: v.GetBool("allow-force-merge-timeout"),
		Public:                 v.GetBool("public"),

		MaxPopulation:      v.GetFloat64("max-population"),
		MaxDistanceReverse: v.GetFloat64("max-distance-reverse"),
	}

	// mode-weights has no flag (it's a map, awkward as a CLI flag); only
	// a config file can override it, the same backfill style SoySergo uses
	// for fields a flag doesn't cover.
	if raw := v.GetStringMap("mode-weights"); len(raw) > 0 {
		cfg.ModeWeights = make(map[string]float64, len(raw))
		for mode, val := range raw {
			if f, ok := val.(float64); ok {
				cfg.ModeWeights[mode] = f
			}
		}
	}
	if len(cfg.ModeWeights) == 0 {
		cfg.ModeWeights = defaultModeWeights()
	}
	if cfg.Dataset == "" {
		cfg.Dataset = "default"
	}

	return cfg, nil
}

// Visibility maps the --public flag to the alias rotation's Visibility.
func (c *IngestConfig) Visibility() alias.Visibility {
	if c.Public {
		return alias.VisibilityPublic
	}
	return alias.VisibilityPrivate
}
