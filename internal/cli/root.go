package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/reallyasi9/nthperm/internal/config"
	"github.com/reallyasi9/nthperm/internal/tiers"
	"github.com/spf13/cobra"
)

// CLI holds the output streams and the settings shared by every command.
type CLI struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool
	tier       int
	jsonOut    bool

	cfg config.Config
}

// New creates a CLI writing results to out and logs to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{out: out, errOut: errOut, cfg: config.Default()}
}

// Execute runs the nthperm CLI with os.Args.
func Execute(ctx context.Context) error {
	return New(os.Stdout, os.Stderr).RootCommand().ExecuteContext(ctx)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "nthperm",
		Short:        "nthperm looks up permutations by rank",
		Long:         `nthperm decodes the k-th lexicographic permutation of {0, ..., n-1} directly, without enumerating the ones before it, and splits permutation spaces into rank ranges for independent workers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "TOML config `file` (default "+config.DefaultPath()+")")
	flags.IntVarP(&c.tier, "tier", "t", 0, "capacity tier (8, 16 or 32); 0 picks the smallest that fits")
	flags.BoolVar(&c.jsonOut, "json", false, "write results as JSON")

	root.AddCommand(c.newNthCmd())
	root.AddCommand(c.newWalkCmd())
	root.AddCommand(c.newCountCmd())
	root.AddCommand(c.newSampleCmd())
	root.AddCommand(c.newPlanCmd())
	root.AddCommand(c.newShardCmd())
	root.AddCommand(c.newServeCmd())
	return root
}

// setup loads the config file, lets explicit flags override it, and attaches the logger.
func (c *CLI) setup(cmd *cobra.Command) error {
	path, optional := c.configPath, false
	if path == "" {
		path, optional = config.DefaultPath(), true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("tier") {
		cfg.Tier = c.tier
	}
	if flags.Changed("json") {
		cfg.JSON = c.jsonOut
	}
	if c.verbose {
		cfg.LogLevel = "debug"
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	level := charmlog.InfoLevel
	if cfg.LogLevel != "" {
		if level, err = charmlog.ParseLevel(cfg.LogLevel); err != nil {
			return err
		}
	}
	logger := newLogger(c.errOut, level)
	logger.Debug("configuration", "file", path, "tier", cfg.Tier, "json", cfg.JSON)
	cmd.SetContext(withLogger(cmd.Context(), logger))
	return nil
}

// runner picks the configured tier, or the smallest one that holds n.
func (c *CLI) runner(n uint8) (tiers.Runner, error) {
	if c.cfg.Tier == 0 {
		return tiers.Smallest(n)
	}
	return tiers.For(c.cfg.Tier)
}

func parseElements(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid element count %q", s)
	}
	return uint8(n), nil
}

func parseRank(s string) (*big.Int, error) {
	rank, ok := new(big.Int).SetString(s, 10)
	if !ok || rank.Sign() < 0 {
		return nil, fmt.Errorf("invalid rank %q", s)
	}
	return rank, nil
}

// record is one permutation as written by nth, walk and sample.
type record struct {
	Rank        string   `json:"rank"`
	Permutation []int    `json:"permutation"`
	Labels      []string `json:"labels,omitempty"`
}

func newRecord(rank *big.Int, p []uint8) record {
	ints := make([]int, len(p))
	for i, v := range p {
		ints[i] = int(v)
	}
	return record{Rank: rank.String(), Permutation: ints}
}

// write prints r as a JSON line or as "rank: elements".
func (c *CLI) write(r record) error {
	if c.cfg.JSON {
		return json.NewEncoder(c.out).Encode(r)
	}
	fields := r.Labels
	if fields == nil {
		fields = make([]string, len(r.Permutation))
		for i, v := range r.Permutation {
			fields[i] = strconv.Itoa(v)
		}
	}
	_, err := fmt.Fprintf(c.out, "%s: %s\n", r.Rank, strings.Join(fields, " "))
	return err
}

func (c *CLI) writeJSON(v any) error {
	return json.NewEncoder(c.out).Encode(v)
}
