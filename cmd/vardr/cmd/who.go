package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vardr/utmp/pkg/codec"
)

// whoCmd represents the who command
var whoCmd = &cobra.Command{
	Use:   "who [file]",
	Short: "Show who is logged in",
	Long: `Show the active sessions recorded in the utmp file.

Example:
  vardr who
  vardr who /var/run/utmp`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.UtmpPath
		if len(args) == 1 {
			path = args[0]
		}

		entries, err := decodedEntries(path)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "USER\tLINE\tTIME\tHOST")
		for _, e := range entries {
			if e.Type != codec.UserProcess {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				e.UserString(),
				e.LineString(),
				e.Time().Format(time.RFC3339),
				e.HostString())
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(whoCmd)
}
