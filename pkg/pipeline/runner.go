package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/satbench/bipartgen/pkg/blocking"
	"github.com/satbench/bipartgen/pkg/buildinfo"
	"github.com/satbench/bipartgen/pkg/cache"
	"github.com/satbench/bipartgen/pkg/cnf"
	"github.com/satbench/bipartgen/pkg/kpartite"
	"github.com/satbench/bipartgen/pkg/matching"
	"github.com/satbench/bipartgen/pkg/observability"
	"github.com/satbench/bipartgen/pkg/problems"
)

// TTLArtifact is how long generated artifacts stay cached. Generation is
// deterministic, so entries never go stale; the TTL only bounds disk use.
const TTLArtifact = 30 * 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → enumerate → encode pipeline with
// caching. On a cache hit the artifacts are returned as stored and the
// graph stages are skipped entirely.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.InstanceKey(opts.Family, opts.keyParams())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := decodeArtifacts(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "instance")
				r.Logger.Info("cache hit", "family", opts.Family, "key", cacheKey)
				return &Result{Artifacts: cached, CacheHit: true}, nil
			}
			// Corrupt entry, fall through to regenerate.
		}
		observability.Cache().OnCacheMiss(ctx, "instance")
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Family)
	g, err := r.Build(opts)
	observability.Pipeline().OnBuildComplete(ctx, opts.Family, edgeCountOf(g), time.Since(buildStart), err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.PartitionSize(0) + g.PartitionSize(1)
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Info("built graph",
		"family", opts.Family,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime)

	// Stage 2: Enumerate
	enumStart := time.Now()
	observability.Pipeline().OnEnumerateStart(ctx, opts.Family, opts.MaxMatchingSize)
	repo, err := r.Enumerate(ctx, g, opts)
	if err != nil {
		observability.Pipeline().OnEnumerateComplete(ctx, opts.Family, 0, time.Since(enumStart), err)
		return nil, fmt.Errorf("enumerate: %w", err)
	}
	result.Stats.EnumTime = time.Since(enumStart)
	result.Stats.MatchingCount = countMatchings(g, repo)
	observability.Pipeline().OnEnumerateComplete(ctx, opts.Family, result.Stats.MatchingCount, result.Stats.EnumTime, nil)

	r.Logger.Info("enumerated matchings",
		"matchings", result.Stats.MatchingCount,
		"duration", result.Stats.EnumTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	observability.Pipeline().OnEncodeStart(ctx, opts.Family, opts.Encoding)
	if err := r.Encode(g, repo, opts, result); err != nil {
		observability.Pipeline().OnEncodeComplete(ctx, opts.Family, 0, time.Since(encodeStart), err)
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Stats.EncodeTime = time.Since(encodeStart)
	observability.Pipeline().OnEncodeComplete(ctx, opts.Family, result.Stats.Clauses, result.Stats.EncodeTime, nil)

	r.Logger.Info("encoded instance",
		"variables", result.Stats.Variables,
		"clauses", result.Stats.Clauses,
		"blocked", result.Stats.BlockedCount,
		"duration", result.Stats.EncodeTime)

	if data, err := encodeArtifacts(result.Artifacts); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "instance", len(data))
		}
	}

	return result, nil
}

// Build constructs the problem graph for the configured family.
func (r *Runner) Build(opts Options) (*kpartite.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	switch opts.Family {
	case FamilyChessboard:
		variant, _ := problems.ParseVariant(opts.Variant)
		board, err := problems.NewBoard(opts.BoardSize, variant)
		if err != nil {
			return nil, err
		}
		return board.Graph()
	case FamilyRandom:
		return problems.Random(problems.RandomConfig{
			Nodes:       opts.Nodes,
			Cardinality: opts.Cardinality,
			Density:     opts.Density,
			EdgeCount:   opts.EdgeCount,
			Seed:        opts.Seed,
		})
	default:
		return problems.Pigeonhole(opts.Holes)
	}
}

// Enumerate collects the perfect matchings of g up to the configured size.
func (r *Runner) Enumerate(ctx context.Context, g *kpartite.Graph, opts Options) (*matching.Repository, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo := matching.NewRepository(g)
	if err := matching.Enumerate(g, repo, opts.MaxMatchingSize); err != nil {
		return nil, err
	}
	return repo, nil
}

// Encode builds the CNF formula, runs blocking selection, and fills the
// result's artifacts and counters.
func (r *Runner) Encode(g *kpartite.Graph, repo *matching.Repository, opts Options, result *Result) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	encoding, _ := cnf.ParseEncoding(opts.Encoding)
	formula := cnf.Build(g, cnf.Options{
		Encoding:    encoding,
		AtMostBoth:  opts.AtMostBoth,
		AtLeastBoth: opts.AtLeastBoth,
		Seed:        opts.Seed,
		Ordering:    opts.orderingMode(),
	})
	selector := blocking.New(opts.blockingConfig(), opts.Logger)

	var buf bytes.Buffer
	blocked, err := cnf.WriteDIMACS(&buf, formula, selector, g, repo, instanceComments(opts))
	if err != nil {
		return err
	}
	result.Artifacts[ArtifactCNF] = buf.Bytes()
	result.Stats.BlockedCount = blocked
	result.Stats.Variables = formula.NumVars
	result.Stats.Clauses = len(formula.Clauses) + blocked

	if mode := opts.orderingMode(); mode != cnf.OrderingNone {
		var vars []int
		if mode == cnf.OrderingBucket {
			vars = cnf.BucketOrder(g, formula)
		} else {
			vars = cnf.VariableOrder(g, formula)
		}
		var ob bytes.Buffer
		if err := cnf.WriteOrder(&ob, vars); err != nil {
			return err
		}
		result.Artifacts[ArtifactOrder] = ob.Bytes()
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// instanceComments builds the DIMACS header comments: a unique instance
// id, the generator version, and the generation parameters.
func instanceComments(opts Options) []string {
	params, _ := json.Marshal(opts.keyParams())
	return []string{
		fmt.Sprintf("instance %s", uuid.NewString()),
		fmt.Sprintf("bipartgen %s", buildinfo.Version),
		fmt.Sprintf("params %s", params),
	}
}

func edgeCountOf(g *kpartite.Graph) int {
	if g == nil {
		return 0
	}
	return g.EdgeCount()
}

func countMatchings(g *kpartite.Graph, repo *matching.Repository) int {
	total := 0
	for root := 0; root < g.PartitionSize(0); root++ {
		total += repo.Bucket(0, 1, root).Matchings()
	}
	return total
}

// encodeArtifacts serializes an artifact map for cache storage.
func encodeArtifacts(artifacts map[string][]byte) ([]byte, error) {
	return json.Marshal(artifacts)
}

// decodeArtifacts restores a cached artifact map.
func decodeArtifacts(data []byte) (map[string][]byte, error) {
	var artifacts map[string][]byte
	if err := json.Unmarshal(data, &artifacts); err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("empty artifact entry")
	}
	return artifacts, nil
}
