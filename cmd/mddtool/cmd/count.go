package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zzenonn/go-mdd"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the distinct vectors in the input, and report unique-table/cache stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := mdd.NewFactory[string](mdd.WithLogger(logger))
		s := buildSet(f)
		fmt.Printf("vectors: %d\n", s.Count())
		fmt.Printf("nodes:   %d\n", f.Size())
		fmt.Printf("cache:   hits=%d misses=%d stores=%d\n", f.CacheHits(), f.CacheMisses(), f.CacheStores())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
}
