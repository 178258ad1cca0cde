package cli

import (
	"fmt"
	"math/big"
	"os"

	"github.com/reallyasi9/nthperm/internal/plan"
	"github.com/reallyasi9/nthperm/internal/tiers"
	"github.com/reallyasi9/nthperm/perm"
	"github.com/spf13/cobra"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	var (
		shards int
		output string
	)
	cmd := &cobra.Command{
		Use:   "plan N",
		Short: "Split the permutations of N elements into shards",
		Long:  `Plan writes a YAML file dividing [0, N!) into contiguous rank ranges of near-equal size. Each range can be enumerated independently with "nthperm shard".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			n, err := parseElements(args[0])
			if err != nil {
				return err
			}
			r, err := c.runner(n)
			if err != nil {
				return err
			}
			p, err := plan.New(r.Tier(), n, shards)
			if err != nil {
				return err
			}
			logger.Info("planned", "id", p.ID, "tier", p.Tier, "elements", n, "total", p.Total, "shards", len(p.Shards))

			if output == "" || output == "-" {
				return p.Write(c.out)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err = p.Write(f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().IntVarP(&shards, "shards", "s", 1, "`number` of shards")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the plan to `file` instead of stdout")
	return cmd
}

func (c *CLI) newShardCmd() *cobra.Command {
	var (
		planPath string
		index    int
		printAll bool
	)
	cmd := &cobra.Command{
		Use:   "shard",
		Short: "Enumerate one shard of a plan",
		Long:  `Shard enumerates the rank range of one shard and reports how many permutations it produced and their digest. Digests of all shards of a plan add up (mod 2^64) to the digest of the whole space.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p, err := plan.Load(planPath)
			if err != nil {
				return err
			}
			s, err := p.Shard(index)
			if err != nil {
				return err
			}
			start, end, err := s.Bounds()
			if err != nil {
				return err
			}
			r, err := tiers.For(p.Tier)
			if err != nil {
				return err
			}
			logger.Debug("shard", "plan", p.ID, "index", index, "start", start, "end", end)

			prog := newProgress(logger)
			var digest perm.Digest
			err = r.Walk(cmd.Context(), p.Elements, start, new(big.Int).Sub(end, start), func(rank *big.Int, pm []uint8) error {
				digest.Add(pm)
				if printAll {
					return c.write(newRecord(rank, pm))
				}
				return nil
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Enumerated %d permutations", digest.Count))

			if c.cfg.JSON {
				return c.writeJSON(map[string]any{
					"plan": p.ID, "shard": index, "start": start.String(), "end": end.String(),
					"count": digest.Count, "digest": fmt.Sprintf("%016x", digest.Sum),
				})
			}
			_, err = fmt.Fprintf(c.out, "plan %s shard %d [%v, %v): %d permutations, digest %016x\n",
				p.ID, index, start, end, digest.Count, digest.Sum)
			return err
		},
	}
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "plan YAML `file`")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "shard `index`")
	cmd.Flags().BoolVar(&printAll, "print", false, "print every permutation in the shard")
	cmd.MarkFlagRequired("plan")
	return cmd
}
