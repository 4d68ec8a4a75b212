package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zzenonn/go-mdd"
)

var relabelCmd = &cobra.Command{
	Use:   "relabel",
	Short: "Demonstrate Set.Relabel by collapsing singleton subtrees to a canonical marker",
	Long: `This is a toy demonstration of the Relabel traversal, not a real
bisimulation algorithm: any subtree containing exactly one vector is
replaced by a canonical one-vector subtree of all "*" components, so that
every singleton branch of the input collapses onto a single shared node.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := mdd.NewFactory[string](mdd.WithLogger(logger))
		s := buildSet(f)
		result := s.Relabel(singletonCollapser{f: f})
		for it := result.Iterate(); it.Next(); {
			vec, err := it.Vector()
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(vec, " "))
		}
		return nil
	},
}

// singletonCollapser implements mdd.Relabeler.
type singletonCollapser struct {
	f *mdd.Factory[string]
}

func (c singletonCollapser) Match(level int, sub *mdd.Set[string]) bool {
	return sub.Count() == 1
}

func (c singletonCollapser) Replace(level int, sub *mdd.Set[string]) *mdd.Set[string] {
	it := sub.Iterate()
	it.Next()
	vec, _ := it.Vector()
	canonical := make([]string, len(vec))
	for i := range canonical {
		canonical[i] = "*"
	}
	return c.f.EmptySet().Add(canonical)
}

func init() {
	rootCmd.AddCommand(relabelCmd)
}
