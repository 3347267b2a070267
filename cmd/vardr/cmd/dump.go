package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vardr/utmp/pkg/filter"
)

var (
	flagDumpMatch []string
	flagDumpJSON  bool
	flagDumpQuery string
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "List every record in an accounting file",
	Long: `List every record in a utmp/wtmp file, one line per record.

Records that cannot be decoded are skipped with a warning; the
remaining records are unaffected.

Example:
  vardr dump /var/log/wtmp
  vardr dump --match user=alice --match type=USER_PROCESS
  vardr dump --query '.host' /var/log/wtmp`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.WtmpPath
		if len(args) == 1 {
			path = args[0]
		}

		conditions := make([]filter.Condition, 0, len(flagDumpMatch))
		for _, m := range flagDumpMatch {
			c, err := filter.ParseCondition(m)
			if err != nil {
				return err
			}
			conditions = append(conditions, c)
		}
		pred, err := filter.Compile(conditions)
		if err != nil {
			return err
		}

		entries, err := decodedEntries(path)
		if err != nil {
			return err
		}
		entries = filter.Apply(entries, pred)

		out := cmd.OutOrStdout()
		switch {
		case flagDumpQuery != "":
			return renderQuery(out, entries, flagDumpQuery)
		case flagDumpJSON || cfg.Output.Format == "json":
			return renderJSON(out, entries)
		default:
			return renderTable(out, entries)
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringArrayVar(&flagDumpMatch, "match", nil, "Filter condition field<op>value (repeatable)")
	dumpCmd.Flags().BoolVar(&flagDumpJSON, "json", false, "Emit one JSON object per record")
	dumpCmd.Flags().StringVar(&flagDumpQuery, "query", "", "gojq expression applied to each record")
}
