package cli

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/reallyasi9/nthperm/perm"
	"github.com/spf13/cobra"
)

func (c *CLI) newNthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nth N RANK",
		Short: "Print the permutation of N elements at RANK",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			n, err := parseElements(args[0])
			if err != nil {
				return err
			}
			rank, err := parseRank(args[1])
			if err != nil {
				return err
			}
			r, err := c.runner(n)
			if err != nil {
				return err
			}
			logger.Debug("lookup", "tier", r.Tier(), "elements", n, "rank", rank)

			p, ok, err := r.Nth(n, rank)
			if err != nil {
				return err
			}
			if !ok {
				total, _ := r.Total(n)
				logger.Warn("rank outside permutation space", "rank", rank, "total", total)
				return nil
			}
			return c.write(newRecord(rank, p))
		},
	}
}

func (c *CLI) newWalkCmd() *cobra.Command {
	var (
		start  string
		count  string
		labels string
	)
	cmd := &cobra.Command{
		Use:   "walk N",
		Short: "Print successive permutations of N elements",
		Long:  `Walk prints permutations in lexicographic order starting at --start. With --labels, each permutation is applied to the comma-separated labels instead of printing indices.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			n, err := parseElements(args[0])
			if err != nil {
				return err
			}
			from, err := parseRank(start)
			if err != nil {
				return err
			}
			var limit *big.Int
			if count != "" {
				if limit, err = parseRank(count); err != nil {
					return err
				}
			}
			var items []string
			if labels != "" {
				items = strings.Split(labels, ",")
				if len(items) < int(n) {
					return fmt.Errorf("%d labels for %d elements: %w", len(items), n, perm.ErrSliceTooSmall)
				}
			}
			r, err := c.runner(n)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			written := 0
			err = r.Walk(cmd.Context(), n, from, limit, func(rank *big.Int, p []uint8) error {
				rec := newRecord(rank, p)
				if items != nil {
					projected, err := perm.Project(p, items)
					if err != nil {
						return err
					}
					rec.Labels = projected
				}
				written++
				return c.write(rec)
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Enumerated %d permutations", written))
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "0", "first `rank` to print")
	cmd.Flags().StringVarP(&count, "count", "n", "", "print at most `number` permutations (default: to the end)")
	cmd.Flags().StringVar(&labels, "labels", "", "comma-separated `labels` to permute")
	return cmd
}

func (c *CLI) newCountCmd() *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "count N",
		Short: "Print the number of permutations of N elements, and how many follow --start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			n, err := parseElements(args[0])
			if err != nil {
				return err
			}
			from, err := parseRank(start)
			if err != nil {
				return err
			}
			r, err := c.runner(n)
			if err != nil {
				return err
			}
			total, err := r.Total(n)
			if err != nil {
				return err
			}

			var remaining string
			rem, err := r.Remaining(n, from)
			switch {
			case errors.Is(err, perm.ErrRemainingOverflow):
				logger.Warn("remaining count does not fit in an int", "tier", r.Tier(), "elements", n)
				exact := new(big.Int).Sub(total, from)
				if exact.Sign() < 0 {
					exact.SetInt64(0)
				}
				remaining = exact.String()
			case err != nil:
				return err
			default:
				remaining = fmt.Sprint(rem)
			}

			if c.cfg.JSON {
				return c.writeJSON(map[string]any{"tier": r.Tier(), "elements": n, "total": total.String(), "remaining": remaining})
			}
			_, err = fmt.Fprintf(c.out, "total: %v\nremaining: %s\n", total, remaining)
			return err
		},
	}
	cmd.Flags().StringVar(&start, "start", "0", "count permutations from `rank` onward")
	return cmd
}

func (c *CLI) newSampleCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "sample N",
		Short: "Print uniformly random permutations of N elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseElements(args[0])
			if err != nil {
				return err
			}
			r, err := c.runner(n)
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				p, rank, err := r.Sample(n)
				if err != nil {
					return err
				}
				if err = c.write(newRecord(rank, p)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "`number` of permutations to draw")
	return cmd
}
