package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/satbench/bipartgen/pkg/pipeline"
)

// suiteFile is the TOML layout of a batch preset file.
//
// Example:
//
//	[defaults]
//	encoding = "sinz"
//	seed = 7
//
//	[[instance]]
//	name = "php8"
//	family = "pigeonhole"
//	holes = 8
//
//	[[instance]]
//	name = "chess8-torus"
//	family = "chessboard"
//	board_size = 8
//	variant = "torus"
type suiteFile struct {
	Defaults  suiteInstance   `toml:"defaults"`
	Instances []suiteInstance `toml:"instance"`
}

// suiteInstance mirrors the pipeline options that make sense per instance.
// Zero values fall back to the suite defaults, then the pipeline defaults.
type suiteInstance struct {
	Name            string  `toml:"name"`
	Family          string  `toml:"family"`
	Holes           int     `toml:"holes"`
	BoardSize       int     `toml:"board_size"`
	Variant         string  `toml:"variant"`
	Nodes           int     `toml:"nodes"`
	Cardinality     int     `toml:"cardinality"`
	Density         float64 `toml:"density"`
	EdgeCount       int     `toml:"edge_count"`
	MaxMatchingSize int     `toml:"max_matching_size"`
	Policy          string  `toml:"policy"`
	BlockProb       float64 `toml:"block_prob"`
	BlockCount      int     `toml:"block_count"`
	AvoidOverlap    bool    `toml:"avoid_overlap"`
	Encoding        string  `toml:"encoding"`
	AtMostBoth      bool    `toml:"at_most_both"`
	AtLeastBoth     bool    `toml:"at_least_both"`
	Ordering        string  `toml:"ordering"`
	Seed            int64   `toml:"seed"`
}

// options merges an instance with the suite defaults into pipeline options.
func (in suiteInstance) options(def suiteInstance) pipeline.Options {
	merged := in
	if merged.Family == "" {
		merged.Family = def.Family
	}
	if merged.Variant == "" {
		merged.Variant = def.Variant
	}
	if merged.MaxMatchingSize == 0 {
		merged.MaxMatchingSize = def.MaxMatchingSize
	}
	if merged.Policy == "" {
		merged.Policy = def.Policy
	}
	if merged.BlockProb == 0 {
		merged.BlockProb = def.BlockProb
	}
	if merged.BlockCount == 0 {
		merged.BlockCount = def.BlockCount
	}
	if merged.Encoding == "" {
		merged.Encoding = def.Encoding
	}
	if merged.Ordering == "" {
		merged.Ordering = def.Ordering
	}
	if merged.Seed == 0 {
		merged.Seed = def.Seed
	}
	if !merged.AvoidOverlap {
		merged.AvoidOverlap = def.AvoidOverlap
	}
	if !merged.AtMostBoth {
		merged.AtMostBoth = def.AtMostBoth
	}
	if !merged.AtLeastBoth {
		merged.AtLeastBoth = def.AtLeastBoth
	}

	return pipeline.Options{
		Family:          merged.Family,
		Holes:           merged.Holes,
		BoardSize:       merged.BoardSize,
		Variant:         merged.Variant,
		Nodes:           merged.Nodes,
		Cardinality:     merged.Cardinality,
		Density:         merged.Density,
		EdgeCount:       merged.EdgeCount,
		MaxMatchingSize: merged.MaxMatchingSize,
		Policy:          merged.Policy,
		BlockProb:       merged.BlockProb,
		BlockCount:      merged.BlockCount,
		AvoidOverlap:    merged.AvoidOverlap,
		Encoding:        merged.Encoding,
		AtMostBoth:      merged.AtMostBoth,
		AtLeastBoth:     merged.AtLeastBoth,
		Ordering:        merged.Ordering,
		Seed:            merged.Seed,
	}
}

// name returns the instance's output basename.
func (in suiteInstance) name(index int) string {
	if in.Name != "" {
		return in.Name
	}
	return fmt.Sprintf("instance-%03d", index)
}

// batchCommand creates the batch command for generating instance suites.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		outDir    string
		noCache   bool
		redisAddr string
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "batch <suite.toml>",
		Short: "Generate a suite of instances from a TOML preset file",
		Long: `Generate a suite of instances from a TOML preset file.

Each [[instance]] table describes one instance; the [defaults] table fills
unset fields. Outputs land in the output directory as <name>.cnf plus
<name>.order when an ordering is requested.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var suite suiteFile
			if err := toml.Unmarshal(data, &suite); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if len(suite.Instances) == 0 {
				return fmt.Errorf("%s declares no instances", args[0])
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache, redisAddr)
			if err != nil {
				return fmt.Errorf("set up cache: %w", err)
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			failed := 0
			for i, in := range suite.Instances {
				name := in.name(i)
				opts := in.options(suite.Defaults)
				opts.Refresh = refresh

				result, err := runner.Execute(cmd.Context(), opts)
				if err != nil {
					printError("%s: %v", name, err)
					failed++
					continue
				}

				cnfPath := filepath.Join(outDir, name+".cnf")
				if err := os.WriteFile(cnfPath, result.Artifacts[pipeline.ArtifactCNF], 0644); err != nil {
					return fmt.Errorf("write %s: %w", cnfPath, err)
				}
				printFile(cnfPath)
				if order, ok := result.Artifacts[pipeline.ArtifactOrder]; ok {
					orderPath := filepath.Join(outDir, name+".order")
					if err := os.WriteFile(orderPath, order, 0644); err != nil {
						return fmt.Errorf("write %s: %w", orderPath, err)
					}
					printFile(orderPath)
				}
			}
			prog.done(fmt.Sprintf("Generated %d of %d instances", len(suite.Instances)-failed, len(suite.Instances)))

			if failed > 0 {
				return fmt.Errorf("%d of %d instances failed", failed, len(suite.Instances))
			}
			printSuccess("Suite complete")
			printDetail("Directory: %s", outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "instances", "output directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis cache address (host:port)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "regenerate even on cache hits")

	return cmd
}
