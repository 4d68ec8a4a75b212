package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zzenonn/go-mdd"
)

var (
	verbose    bool
	inputFile  string
	fieldSplit string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mddtool",
	Short: "Build and inspect Multi-valued Decision Diagrams from line-delimited vectors",
	Long: `mddtool reads whitespace-separated vectors from a file (or stdin, with -i -)
and builds an mdd.Set over them, one vector per line. Subcommands then
exercise the set/relation algebra in the mdd package: count, dump,
closure (treating input lines as "src -> dst" pairs of an interleaved
relation), and relabel (a toy partition-refinement demo).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zap.InfoLevel
		if verbose {
			level = zap.DebugLevel
		}
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level node lifecycle logging")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "-", "input file, or - for stdin")
	rootCmd.PersistentFlags().StringVar(&fieldSplit, "sep", "", "field separator within a line (default: any whitespace)")
}

// readLines reads non-empty, trimmed lines verbatim from the configured
// input, for subcommands (closure) that need to parse a line's structure
// themselves rather than treating it as one whitespace-split vector.
func readLines() ([]string, error) {
	var r *os.File
	if inputFile == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(inputFile)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

// readVectors reads one vector per line from the configured input.
func readVectors() ([][]string, error) {
	var r *os.File
	if inputFile == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(inputFile)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	var vectors [][]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var fields []string
		if fieldSplit == "" {
			fields = strings.Fields(line)
		} else {
			fields = strings.Split(line, fieldSplit)
		}
		vectors = append(vectors, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return vectors, nil
}

// buildSet builds a Set[string] from one vector per input line.
func buildSet(f *mdd.Factory[string]) *mdd.Set[string] {
	s := f.EmptySet()
	vectors, err := readVectors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, v := range vectors {
		s = s.Add(v)
	}
	return s
}
