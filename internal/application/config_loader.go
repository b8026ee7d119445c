package application

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/teamform/internal/ports"
)

// ObjectiveSet is a compiled AppraiserConfig: the built objectives in
// evaluation order plus the appraiser flags. Objectives are immutable, so
// a set may back any number of appraisers.
type ObjectiveSet struct {
	// Objectives holds the weighted objectives in config order.
	Objectives []WeightedObjective
	// StrictSeatCount mirrors AppraiserConfig.StrictSeatCount.
	StrictSeatCount bool
	// Hash is the SHA256 of the normalized config the set was built from.
	Hash string
}

// Options returns the appraiser options equivalent to the set.
func (s *ObjectiveSet) Options() []AppraiserOption {
	opts := []AppraiserOption{WithObjectives(s.Objectives...)}
	if s.StrictSeatCount {
		opts = append(opts, WithStrictSeatCount())
	}
	return opts
}

var defaultConfigValidator = sync.OnceValues(newConfigValidator)

// BuildObjectiveSet validates cfg and creates its objectives through
// registry without caching.
func BuildObjectiveSet(cfg *AppraiserConfig, registry ports.ObjectiveRegistry) (*ObjectiveSet, error) {
	v, err := defaultConfigValidator()
	if err != nil {
		return nil, err
	}
	if err := validateAppraiserConfig(v, cfg, registry); err != nil {
		return nil, ports.NewConfigError("appraiser", err)
	}
	return buildObjectiveSet(cfg, registry)
}

// ConfigLoader parses, validates and compiles appraiser configurations.
// Compiled sets are cached by the SHA256 of the normalized config, and
// concurrent loads of the same config compile once.
type ConfigLoader struct {
	// validator carries the semver and objectiveid custom tags.
	validator *validator.Validate
	// registry creates objectives by type.
	registry ports.ObjectiveRegistry
	// cache stores compiled sets by config hash. Cached sets MUST NOT be
	// mutated.
	cache   map[string]*ObjectiveSet
	cacheMu sync.RWMutex
	// sf collapses concurrent compilation of identical configs.
	sf singleflight.Group
}

// NewConfigLoader creates a loader that builds objectives through registry.
func NewConfigLoader(registry ports.ObjectiveRegistry) (*ConfigLoader, error) {
	if registry == nil {
		return nil, fmt.Errorf("objective registry cannot be nil")
	}
	v, err := newConfigValidator()
	if err != nil {
		return nil, err
	}
	return &ConfigLoader{
		validator: v,
		registry:  registry,
		cache:     make(map[string]*ObjectiveSet),
	}, nil
}

// LoadFromFile loads an objective set from a YAML file.
func (cl *ConfigLoader) LoadFromFile(ctx context.Context, path string) (*ObjectiveSet, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, ports.NewConfigError(path, fmt.Errorf("failed to read file: %w", err))
	}
	return cl.LoadFromBytes(ctx, data)
}

// LoadFromReader loads an objective set from YAML read from r.
func (cl *ConfigLoader) LoadFromReader(ctx context.Context, r io.Reader) (*ObjectiveSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return cl.LoadFromBytes(ctx, data)
}

// LoadFromBytes loads an objective set from YAML bytes. Unknown fields are
// rejected.
func (cl *ConfigLoader) LoadFromBytes(ctx context.Context, data []byte) (*ObjectiveSet, error) {
	cfg, err := parseAppraiserConfig(data)
	if err != nil {
		return nil, ports.NewConfigError("appraiser", err)
	}
	return cl.Load(ctx, cfg)
}

// Load compiles an already parsed config, serving it from the cache when
// an identical config was compiled before.
func (cl *ConfigLoader) Load(ctx context.Context, cfg *AppraiserConfig) (*ObjectiveSet, error) {
	if cfg == nil {
		return nil, ports.NewConfigError("appraiser", ports.ErrConfigNotFound)
	}

	hash, err := configHash(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate hash: %w", err)
	}

	logger := logr.FromContextOrDiscard(ctx).WithValues("config_hash", hash[:12])

	v, err, shared := cl.sf.Do(hash, func() (any, error) {
		if set, ok := cl.cached(hash); ok {
			return set, nil
		}

		if err := validateAppraiserConfig(cl.validator, cfg, cl.registry); err != nil {
			return nil, ports.NewConfigError("appraiser", err)
		}

		set, err := buildObjectiveSet(cfg, cl.registry)
		if err != nil {
			return nil, err
		}
		set.Hash = hash

		cl.store(hash, set)
		logger.V(1).Info("compiled objective set", "objectives", len(set.Objectives))
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.V(2).Info("objective set compilation shared")
	}

	return v.(*ObjectiveSet), nil
}

// ClearCache drops every cached objective set.
func (cl *ConfigLoader) ClearCache() {
	cl.cacheMu.Lock()
	defer cl.cacheMu.Unlock()

	cl.cache = make(map[string]*ObjectiveSet)
}

func (cl *ConfigLoader) cached(hash string) (*ObjectiveSet, bool) {
	cl.cacheMu.RLock()
	defer cl.cacheMu.RUnlock()

	set, ok := cl.cache[hash]
	return set, ok
}

func (cl *ConfigLoader) store(hash string, set *ObjectiveSet) {
	cl.cacheMu.Lock()
	defer cl.cacheMu.Unlock()

	cl.cache[hash] = set
}

// parseAppraiserConfig strictly decodes YAML into an AppraiserConfig.
func parseAppraiserConfig(data []byte) (*AppraiserConfig, error) {
	var cfg AppraiserConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("YAML decode failed: %w", err)
	}
	return &cfg, nil
}

// validateAppraiserConfig runs struct then semantic validation.
func validateAppraiserConfig(v *validator.Validate, cfg *AppraiserConfig, registry ports.ObjectiveRegistry) error {
	if cfg == nil {
		return ports.ErrConfigNotFound
	}
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("struct validation failed: %w", err)
	}
	if err := validateSemantics(cfg, registry); err != nil {
		return fmt.Errorf("semantic validation failed: %w", err)
	}
	return nil
}

// buildObjectiveSet creates every objective of a validated config.
func buildObjectiveSet(cfg *AppraiserConfig, registry ports.ObjectiveRegistry) (*ObjectiveSet, error) {
	set := &ObjectiveSet{
		Objectives:      make([]WeightedObjective, 0, len(cfg.Objectives)),
		StrictSeatCount: cfg.StrictSeatCount,
	}

	for _, oc := range cfg.Objectives {
		params, err := decodeParameters(oc.Parameters)
		if err != nil {
			return nil, ports.NewConfigError(oc.ID, err)
		}
		obj, err := registry.CreateObjective(oc.Type, oc.ID, params)
		if err != nil {
			return nil, ports.NewConfigError(oc.ID, err)
		}
		set.Objectives = append(set.Objectives, WeightedObjective{
			Objective: obj,
			Weight:    oc.EffectiveWeight(),
		})
	}

	return set, nil
}

// configHash computes the SHA256 of the config re-encoded with fixed
// indentation, so formatting differences in the source do not matter.
func configHash(cfg *AppraiserConfig) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config for hashing: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode config for hashing: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
