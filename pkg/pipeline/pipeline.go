// Package pipeline provides the instance generation pipeline for bipartgen.
//
// This package implements the complete build → enumerate → encode pipeline
// that can be used by the CLI and batch components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Construct the bipartite graph of a problem family
//  2. Enumerate: Collect every perfect matching up to the size bound
//  3. Encode: Select blocking clauses and write the DIMACS artifacts
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Family: pipeline.FamilyPigeonhole,
//	    Holes:  8,
//	    Policy: "all",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dimacs := result.Artifacts[pipeline.ArtifactCNF]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/satbench/bipartgen/pkg/blocking"
	"github.com/satbench/bipartgen/pkg/cnf"
	"github.com/satbench/bipartgen/pkg/kpartite"
	"github.com/satbench/bipartgen/pkg/problems"
)

// Problem family names accepted by Options.Family.
const (
	FamilyPigeonhole = "pigeonhole"
	FamilyChessboard = "chessboard"
	FamilyRandom     = "random"
)

// ValidFamilies is the set of supported problem families.
var ValidFamilies = map[string]bool{
	FamilyPigeonhole: true,
	FamilyChessboard: true,
	FamilyRandom:     true,
}

// Artifact names in Result.Artifacts.
const (
	ArtifactCNF   = "cnf"
	ArtifactOrder = "order"
)

const (
	// DefaultMaxMatchingSize bounds the enumerated matchings. Beyond a
	// handful of nodes per side the matching count explodes, so the CLI
	// default stays small; batch runs override it explicitly.
	DefaultMaxMatchingSize = 4

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = int64(42)

	// DefaultBlockProb is the default blocking probability for the
	// probabilistic policy.
	DefaultBlockProb = 0.5
)

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization, which also makes it the cache
// key material: two runs with equal serialized options yield equal keys.
type Options struct {
	// Build options
	Family      string  `json:"family"`
	Holes       int     `json:"holes,omitempty"`
	BoardSize   int     `json:"board_size,omitempty"`
	Variant     string  `json:"variant,omitempty"`
	Nodes       int     `json:"nodes,omitempty"`
	Cardinality int     `json:"cardinality,omitempty"`
	Density     float64 `json:"density,omitempty"`
	EdgeCount   int     `json:"edge_count,omitempty"`

	// Enumeration options
	MaxMatchingSize int `json:"max_matching_size,omitempty"`

	// Blocking options
	Policy       string  `json:"policy,omitempty"`
	BlockProb    float64 `json:"block_prob,omitempty"`
	BlockCount   int     `json:"block_count,omitempty"`
	AvoidOverlap bool    `json:"avoid_overlap,omitempty"`

	// Encoding options
	Encoding    string `json:"encoding,omitempty"`
	AtMostBoth  bool   `json:"at_most_both,omitempty"`
	AtLeastBoth bool   `json:"at_least_both,omitempty"`
	Ordering    string `json:"ordering,omitempty"`

	// Seed drives random graph construction, mixed encoding choices and
	// probabilistic blocking.
	Seed int64 `json:"seed,omitempty"`

	// Refresh bypasses the cache and overwrites the stored entry.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the constructed problem graph. Nil on a full cache hit.
	Graph *kpartite.Graph

	// Artifacts contains generated outputs keyed by artifact name.
	Artifacts map[string][]byte

	// Stats contains counts and timing information.
	Stats Stats

	// CacheHit reports whether the artifacts came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	MatchingCount int
	BlockedCount  int
	Variables     int
	Clauses       int
	BuildTime     time.Duration
	EnumTime      time.Duration
	EncodeTime    time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if !ValidFamilies[o.Family] {
		return fmt.Errorf("invalid family: %q (must be one of: pigeonhole, chessboard, random)", o.Family)
	}
	switch o.Family {
	case FamilyPigeonhole:
		if o.Holes < 1 {
			return fmt.Errorf("pigeonhole family requires holes >= 1, got %d", o.Holes)
		}
	case FamilyChessboard:
		if o.BoardSize < 2 {
			return fmt.Errorf("chessboard family requires board_size >= 2, got %d", o.BoardSize)
		}
		if o.Variant == "" {
			o.Variant = string(problems.VariantNormal)
		}
		if _, err := problems.ParseVariant(o.Variant); err != nil {
			return err
		}
	case FamilyRandom:
		if o.Nodes < 1 {
			return fmt.Errorf("random family requires nodes >= 1, got %d", o.Nodes)
		}
		if o.Density == 0 && o.EdgeCount == 0 {
			o.Density = 0.5
		}
	}

	if o.MaxMatchingSize == 0 {
		o.MaxMatchingSize = DefaultMaxMatchingSize
	}
	if o.MaxMatchingSize < 2 {
		return fmt.Errorf("max_matching_size must be at least 2, got %d", o.MaxMatchingSize)
	}

	if o.Policy == "" {
		o.Policy = blocking.PolicyAll.String()
	}
	if _, err := blocking.ParsePolicy(o.Policy); err != nil {
		return err
	}
	if o.BlockProb == 0 {
		o.BlockProb = DefaultBlockProb
	}
	if o.BlockProb < 0 || o.BlockProb > 1 {
		return fmt.Errorf("block_prob must be in [0, 1], got %g", o.BlockProb)
	}

	if o.Encoding == "" {
		o.Encoding = string(cnf.EncodingDirect)
	}
	if _, err := cnf.ParseEncoding(o.Encoding); err != nil {
		return err
	}
	switch o.Ordering {
	case "", "variable", "bucket":
	default:
		return fmt.Errorf("invalid ordering: %q (must be empty, variable, or bucket)", o.Ordering)
	}

	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// orderingMode maps the serialized ordering name to the encoder's mode.
func (o *Options) orderingMode() cnf.Ordering {
	switch o.Ordering {
	case "variable":
		return cnf.OrderingVariable
	case "bucket":
		return cnf.OrderingBucket
	}
	return cnf.OrderingNone
}

// blockingConfig maps options to a selector configuration.
func (o *Options) blockingConfig() blocking.Config {
	policy, _ := blocking.ParsePolicy(o.Policy)
	return blocking.Config{
		Policy:       policy,
		Prob:         o.BlockProb,
		Count:        o.BlockCount,
		AvoidOverlap: o.AvoidOverlap,
		Seed:         o.Seed,
	}
}

// keyParams returns the subset of options that determine the generated
// artifacts. Runtime-only fields and Refresh stay out of the key.
func (o *Options) keyParams() map[string]interface{} {
	return map[string]interface{}{
		"family":            o.Family,
		"holes":             o.Holes,
		"board_size":        o.BoardSize,
		"variant":           o.Variant,
		"nodes":             o.Nodes,
		"cardinality":       o.Cardinality,
		"density":           o.Density,
		"edge_count":        o.EdgeCount,
		"max_matching_size": o.MaxMatchingSize,
		"policy":            o.Policy,
		"block_prob":        o.BlockProb,
		"block_count":       o.BlockCount,
		"avoid_overlap":     o.AvoidOverlap,
		"encoding":          o.Encoding,
		"at_most_both":      o.AtMostBoth,
		"at_least_both":     o.AtLeastBoth,
		"ordering":          o.Ordering,
		"seed":              o.Seed,
	}
}
