package config

import (
	"log/slog"
	"net/url"

	"github.com/jpalmerr/scanboard"
	"github.com/jpalmerr/scanboard/query"
	"github.com/jpalmerr/scanboard/urlstate"
)

// BuildPalette converts the configured palette into SDK slots.
// Returns nil when no palette is configured.
func BuildPalette(cfg *Config) []scanboard.Slot {
	if len(cfg.Palette) == 0 {
		return nil
	}
	slots := make([]scanboard.Slot, len(cfg.Palette))
	for i, s := range cfg.Palette {
		slots[i] = scanboard.Slot(s)
	}
	return slots
}

// BuildFeatureSet converts the configured features into an SDK feature set.
// Returns the default set when no features are configured.
func BuildFeatureSet(cfg *Config) (scanboard.FeatureSet, error) {
	if len(cfg.Features) == 0 {
		return scanboard.DefaultFeatures(), nil
	}
	infos := make([]scanboard.FeatureInfo, len(cfg.Features))
	for i, f := range cfg.Features {
		infos[i] = scanboard.FeatureInfo{
			Key:  scanboard.Feature(f.Key),
			Name: f.Name,
			Long: f.Long,
		}
	}
	return scanboard.NewFeatureSet(infos...)
}

// BuildOptions converts parsed configuration into store options.
//
// logger may be nil, in which case the store uses slog.Default().
func BuildOptions(cfg *Config, logger *slog.Logger) ([]scanboard.Option, error) {
	var opts []scanboard.Option

	if palette := BuildPalette(cfg); palette != nil {
		opts = append(opts, scanboard.WithPalette(palette...))
	}

	features, err := BuildFeatureSet(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, scanboard.WithFeatures(features))

	if len(cfg.Parameters) > 0 {
		opts = append(opts, scanboard.WithParameters(cfg.Parameters))
	}

	policy, err := scanboard.ParseReentrancyPolicy(cfg.Reentrancy)
	if err != nil {
		return nil, err
	}
	opts = append(opts, scanboard.WithReentrancy(policy))

	if logger != nil {
		opts = append(opts, scanboard.WithLogger(logger))
	}

	return opts, nil
}

// BuildCodec creates a URL codec matching the configured palette and features.
func BuildCodec(cfg *Config, logger *slog.Logger) (*urlstate.Codec, error) {
	var opts []urlstate.Option

	if palette := BuildPalette(cfg); palette != nil {
		opts = append(opts, urlstate.WithPalette(palette...))
	}

	features, err := BuildFeatureSet(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, urlstate.WithFeatures(features))

	if logger != nil {
		opts = append(opts, urlstate.WithLogger(logger))
	}

	return urlstate.NewCodec(opts...)
}

// BuildQueries compiles the configured queries, keyed by name.
func BuildQueries(cfg *Config) (map[string]*query.Query, error) {
	queries := make(map[string]*query.Query, len(cfg.Queries))
	for _, qc := range cfg.Queries {
		q, err := query.Compile(qc.Expr)
		if err != nil {
			return nil, err
		}
		queries[qc.Name] = q
	}
	return queries, nil
}

// ShareURL builds a link to url.base carrying encoded under url.param.
// Returns "" when no base is configured.
func ShareURL(cfg *Config, encoded string) (string, error) {
	if cfg.URL.Base == "" {
		return "", nil
	}
	u, err := url.Parse(cfg.URL.Base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(cfg.URL.Param, encoded)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
