package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zzenonn/go-mdd"
)

var closureCmd = &cobra.Command{
	Use:   "closure",
	Short: `Build an interleaved relation from "src -> dst" lines and print its transitive closure`,
	Long: `Each input line must look like "a,b -> c,d": a comma-separated source
tuple, the literal "->", and a comma-separated destination tuple of the
same width. closure builds the interleaved relation (mdd.Irel) those pairs
describe, computes its transitive closure, and prints every pair the
closure contains.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := readLines()
		if err != nil {
			return err
		}
		f := mdd.NewFactory[string](mdd.WithLogger(logger))
		r := f.EmptyIrel()
		for _, line := range lines {
			src, dst, err := parsePair(line)
			if err != nil {
				return err
			}
			r, err = r.AddPair(src, dst)
			if err != nil {
				return err
			}
		}
		closed := r.Closure()
		for it := closed.Iterate(); it.Next(); {
			vec, err := it.Vector()
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, strings.Join(vec, " "))
		}
		return nil
	},
}

func parsePair(line string) (src, dst []string, err error) {
	parts := strings.SplitN(line, "->", 2)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("mddtool: expected \"src -> dst\", got %q", line)
	}
	src = splitTuple(parts[0])
	dst = splitTuple(parts[1])
	if len(src) != len(dst) {
		return nil, nil, fmt.Errorf("mddtool: mismatched tuple widths in %q", line)
	}
	return src, dst, nil
}

func splitTuple(s string) []string {
	fields := strings.Split(strings.TrimSpace(s), ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func init() {
	rootCmd.AddCommand(closureCmd)
}
