package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zzenonn/go-mdd"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Build a set from the input and dump its unique table",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := mdd.NewFactory[string](mdd.WithLogger(logger))
		s := buildSet(f)
		return f.Dump(os.Stdout, s)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
