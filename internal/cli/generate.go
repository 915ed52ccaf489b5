package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/satbench/bipartgen/pkg/pipeline"
)

// generateOpts holds the command-line flags shared by all generate
// subcommands. These options control matching enumeration, blocking
// clause selection, and the CNF encoding.
type generateOpts struct {
	maxSize     int     // largest matching size to enumerate
	policy      string  // blocking policy: all, prob, count
	prob        float64 // blocking probability for the prob policy
	count       int     // blocking threshold for the count policy
	avoid       bool    // avoid overlapping blocked matchings
	seed        int64   // seed for randomized choices
	encoding    string  // at-most-one encoding: direct, sinz, linear, mixed
	atMostBoth  bool    // at-most-one constraints on both partitions
	atLeastBoth bool    // at-least-one constraints on both partitions
	ordering    string  // BDD ordering file: variable or bucket
	output      string  // CNF output path (stdout if empty)
	orderOut    string  // ordering file path (output + ".order" if empty)
	noCache     bool    // disable the artifact cache
	redisAddr   string  // Redis cache address (host:port)
	refresh     bool    // regenerate even on a cache hit
}

// pipelineOptions converts the shared flags into pipeline options.
// Family-specific fields are filled in by each subcommand.
func (o *generateOpts) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		MaxMatchingSize: o.maxSize,
		Policy:          o.policy,
		BlockProb:       o.prob,
		BlockCount:      o.count,
		AvoidOverlap:    o.avoid,
		Encoding:        o.encoding,
		AtMostBoth:      o.atMostBoth,
		AtLeastBoth:     o.atLeastBoth,
		Ordering:        o.ordering,
		Seed:            o.seed,
		Refresh:         o.refresh,
	}
}

// generateCommand creates the generate command with one subcommand per
// problem family.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		maxSize:  pipeline.DefaultMaxMatchingSize,
		policy:   "all",
		prob:     pipeline.DefaultBlockProb,
		encoding: "direct",
		seed:     pipeline.DefaultSeed,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a DIMACS CNF instance from a bipartite problem",
		Long: `Generate a DIMACS CNF instance from a bipartite matching problem.

The instance states that a perfect matching exists, then blocks matchings
found by enumeration, which yields hard unsatisfiable benchmarks for the
unbalanced families.

Examples:
  bipartgen generate pigeon 8
  bipartgen generate chess 8 --variant torus --encoding sinz
  bipartgen generate random 10 --density 0.4 --policy prob --prob 0.3`,
	}

	cmd.PersistentFlags().IntVarP(&opts.maxSize, "max-size", "a", opts.maxSize, "largest matching size to enumerate")
	cmd.PersistentFlags().StringVarP(&opts.policy, "policy", "p", opts.policy, "blocking policy (all, prob, count)")
	cmd.PersistentFlags().Float64Var(&opts.prob, "prob", opts.prob, "blocking probability for the prob policy")
	cmd.PersistentFlags().IntVar(&opts.count, "count", 0, "blocking threshold for the count policy")
	cmd.PersistentFlags().BoolVar(&opts.avoid, "avoid-overlap", false, "skip blocks that reuse already-blocked edges")
	cmd.PersistentFlags().Int64VarP(&opts.seed, "seed", "s", opts.seed, "seed for randomized choices")
	cmd.PersistentFlags().StringVarP(&opts.encoding, "encoding", "e", opts.encoding, "at-most-one encoding (direct, sinz, linear, mixed)")
	cmd.PersistentFlags().BoolVarP(&opts.atMostBoth, "at-most-both", "M", false, "apply at-most-one constraints to both partitions")
	cmd.PersistentFlags().BoolVarP(&opts.atLeastBoth, "at-least-both", "L", false, "apply at-least-one constraints to both partitions")
	cmd.PersistentFlags().StringVar(&opts.ordering, "ordering", "", "emit a BDD ordering file (variable or bucket)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "CNF output file (stdout if empty)")
	cmd.PersistentFlags().StringVar(&opts.orderOut, "order-output", "", "ordering file path (defaults to output + .order)")
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.PersistentFlags().StringVar(&opts.redisAddr, "redis", "", "Redis cache address (host:port)")
	cmd.PersistentFlags().BoolVar(&opts.refresh, "refresh", false, "regenerate even on a cache hit")

	cmd.AddCommand(c.generatePigeonCmd(&opts))
	cmd.AddCommand(c.generateChessCmd(&opts))
	cmd.AddCommand(c.generateRandomCmd(&opts))

	return cmd
}

// generatePigeonCmd creates the "generate pigeon" subcommand.
func (c *CLI) generatePigeonCmd(opts *generateOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "pigeon <holes>",
		Short: "Generate a pigeonhole instance with holes+1 pigeons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			holes, err := positiveInt(args[0], "holes")
			if err != nil {
				return err
			}
			pOpts := opts.pipelineOptions()
			pOpts.Family = pipeline.FamilyPigeonhole
			pOpts.Holes = holes
			return c.runGenerate(cmd.Context(), opts, pOpts)
		},
	}
}

// generateChessCmd creates the "generate chess" subcommand.
func (c *CLI) generateChessCmd(opts *generateOpts) *cobra.Command {
	variant := "normal"
	cmd := &cobra.Command{
		Use:   "chess <size>",
		Short: "Generate a mutilated chessboard instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := positiveInt(args[0], "size")
			if err != nil {
				return err
			}
			pOpts := opts.pipelineOptions()
			pOpts.Family = pipeline.FamilyChessboard
			pOpts.BoardSize = size
			pOpts.Variant = variant
			return c.runGenerate(cmd.Context(), opts, pOpts)
		},
	}
	cmd.Flags().StringVarP(&variant, "variant", "b", variant, "board geometry (normal, cylinder, torus)")
	return cmd
}

// generateRandomCmd creates the "generate random" subcommand.
func (c *CLI) generateRandomCmd(opts *generateOpts) *cobra.Command {
	var (
		cardinality int
		density     float64
		edgeCount   int
	)
	cmd := &cobra.Command{
		Use:   "random <nodes>",
		Short: "Generate an instance from a seeded random bipartite graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := positiveInt(args[0], "nodes")
			if err != nil {
				return err
			}
			pOpts := opts.pipelineOptions()
			pOpts.Family = pipeline.FamilyRandom
			pOpts.Nodes = nodes
			pOpts.Cardinality = cardinality
			pOpts.Density = density
			pOpts.EdgeCount = edgeCount
			return c.runGenerate(cmd.Context(), opts, pOpts)
		},
	}
	cmd.Flags().IntVarP(&cardinality, "cardinality", "C", 1, "extra nodes in partition 0")
	cmd.Flags().Float64VarP(&density, "density", "D", 0, "target edge density in [0, 1]")
	cmd.Flags().IntVarP(&edgeCount, "edges", "E", 0, "exact edge budget (overrides density)")
	return cmd
}

// runGenerate executes the pipeline and writes the resulting artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts, pOpts pipeline.Options) error {
	runner, err := c.newRunner(ctx, opts.noCache, opts.redisAddr)
	if err != nil {
		return fmt.Errorf("set up cache: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pOpts)
	if err != nil {
		return err
	}
	prog.done("Generated instance")

	dimacs := result.Artifacts[pipeline.ArtifactCNF]
	if opts.output == "" {
		if _, err := os.Stdout.Write(dimacs); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(opts.output, dimacs, 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
	}

	orderPath := ""
	if order, ok := result.Artifacts[pipeline.ArtifactOrder]; ok {
		orderPath = opts.orderOut
		if orderPath == "" {
			if opts.output == "" {
				orderPath = pOpts.Family + ".order"
			} else {
				orderPath = opts.output + ".order"
			}
		}
		if err := os.WriteFile(orderPath, order, 0644); err != nil {
			return fmt.Errorf("write %s: %w", orderPath, err)
		}
	}

	if opts.output != "" {
		printSuccess("Generated %s instance", pOpts.Family)
		printFile(opts.output)
		if orderPath != "" {
			printFile(orderPath)
		}
		if result.CacheHit {
			printDetail("served from cache")
		} else {
			printStats(result.Stats.Variables, result.Stats.Clauses, result.Stats.BlockedCount, false)
		}
		printNextStep("Check it", fmt.Sprintf("%s verify %s", appName, opts.output))
	}
	return nil
}

// positiveInt parses a positive integer argument.
func positiveInt(s, name string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return n, nil
}
