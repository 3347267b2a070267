package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vardr/utmp/pkg/codec"
)

var (
	flagLastUser  string
	flagLastLimit int
)

// lastCmd represents the last command
var lastCmd = &cobra.Command{
	Use:   "last [file]",
	Short: "Show login history",
	Long: `Show logins, logouts and reboots from the wtmp file, newest
first.

Example:
  vardr last
  vardr last --user alice -n 10 /var/log/wtmp`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.WtmpPath
		if len(args) == 1 {
			path = args[0]
		}

		entries, err := decodedEntries(path)
		if err != nil {
			return err
		}

		user := flagLastUser
		limit := flagLastLimit

		var events []codec.Entry
		for _, e := range entries {
			switch e.Type {
			case codec.UserProcess, codec.DeadProcess, codec.BootTime:
			default:
				continue
			}
			if user != "" && !(e.Type == codec.UserProcess && e.UserString() == user) {
				continue
			}
			events = append(events, e)
		}

		sort.SliceStable(events, func(i, j int) bool {
			if events[i].TimeSec != events[j].TimeSec {
				return events[i].TimeSec > events[j].TimeSec
			}
			return events[i].TimeUsec > events[j].TimeUsec
		})
		if limit > 0 && len(events) > limit {
			events = events[:limit]
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, e := range events {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				lastUser(e),
				lastLine(e),
				e.HostString(),
				e.Time().Format(time.RFC3339))
		}
		return tw.Flush()
	},
}

// lastUser labels boot records the way last(1) does.
func lastUser(e codec.Entry) string {
	switch e.Type {
	case codec.BootTime:
		return "reboot"
	case codec.DeadProcess:
		if u := e.UserString(); u != "" {
			return u
		}
		return "(logout)"
	default:
		return e.UserString()
	}
}

func lastLine(e codec.Entry) string {
	if e.Type == codec.BootTime {
		return "~"
	}
	return e.LineString()
}

func init() {
	rootCmd.AddCommand(lastCmd)
	lastCmd.Flags().StringVar(&flagLastUser, "user", "", "Only show sessions of this user")
	lastCmd.Flags().IntVarP(&flagLastLimit, "limit", "n", 0, "Maximum number of rows (0 = all)")
}
