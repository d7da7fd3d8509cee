package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lucrnz/durseq/internal/durations"
	"github.com/lucrnz/durseq/internal/logging"
	"github.com/lucrnz/durseq/internal/util"
)

type parseOptions struct {
	output      string
	maxEntries  int
	maxTotalStr string
	summary     bool
}

// parseResult is the JSON shape of "durseq parse --output json".
type parseResult struct {
	Count    int      `json:"count"`
	TotalMS  int64    `json:"total_ms"`
	Total    string   `json:"total"`
	Entries  []int64  `json:"entries_ms"`
	Readable []string `json:"entries"`
}

func newParseCmd() *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse LIST...",
		Short: "Expand duration lists and print one duration per line",
		Example: `  durseq parse "30s;5m*3,1h"
  durseq parse --output json 1s*3 5s`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format (text, json)")
	cmd.Flags().IntVar(&opts.maxEntries, "max-entries", durations.DefaultMaxEntries, "Maximum number of expanded entries (0 = unlimited)")
	cmd.Flags().StringVar(&opts.maxTotalStr, "max-total", "", "Maximum sum of all entries (e.g., \"1h30m\", \"2d\"; empty = unlimited)")
	cmd.Flags().BoolVarP(&opts.summary, "summary", "s", false, "Print entry count and total after the list (text output)")

	return cmd
}

func runParse(cmd *cobra.Command, opts *parseOptions, args []string) error {
	logger := logging.FromContext(cmd.Context())

	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unsupported output format %q: only text and json are supported", opts.output)
	}
	if opts.maxEntries < 0 {
		return fmt.Errorf("--max-entries must be non-negative, got %d", opts.maxEntries)
	}

	maxTotal, err := util.ParseLimit(opts.maxTotalStr)
	if err != nil {
		return fmt.Errorf("invalid --max-total value: %w", err)
	}

	parser := durations.Parser{MaxEntries: opts.maxEntries}
	var list durations.List
	for _, arg := range args {
		parsed, err := parser.ParseString(arg)
		if err != nil {
			return err
		}
		logger.Debug("list_parsed", "input", arg, "entries", len(parsed))
		list = append(list, parsed...)
	}

	if opts.maxEntries > 0 && len(list) > opts.maxEntries {
		return fmt.Errorf("%w: %d entries exceed --max-entries %d", durations.ErrTooManyEntries, len(list), opts.maxEntries)
	}

	total, ok := list.Sum()
	if !ok {
		return fmt.Errorf("total of %d entries overflows the maximum duration %s", len(list), total)
	}
	if maxTotal > 0 && total > maxTotal {
		return fmt.Errorf("total %s exceeds --max-total %s", total, maxTotal)
	}

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		return writeJSON(out, list)
	}
	return writeText(out, list, opts.summary)
}

func writeText(w io.Writer, list durations.List, summary bool) error {
	for _, d := range list {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return err
		}
	}
	if summary {
		_, err := fmt.Fprintf(w, "%s entries, total %s\n", humanize.Comma(int64(len(list))), list.Total())
		return err
	}
	return nil
}

func writeJSON(w io.Writer, list durations.List) error {
	res := parseResult{
		Count:    len(list),
		TotalMS:  list.Total().Milliseconds(),
		Total:    list.Total().String(),
		Entries:  make([]int64, len(list)),
		Readable: make([]string, len(list)),
	}
	for i, d := range list {
		res.Entries[i] = d.Milliseconds()
		res.Readable[i] = d.String()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
