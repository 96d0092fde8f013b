package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taskpulse/taskpulse/internal/daemon"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary <user-id>",
	Short: "Show a user's progress dashboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	summary, err := d.Progress.UserSummary(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("User %s (%s)\n", summary.User.ID, summary.User.Tier)
	fmt.Printf("  XP: %d   Streak: %d days (best %d)   Archetype: %s\n\n",
		summary.User.TotalXP, summary.User.CurrentStreak,
		summary.User.LongestStreak, summary.Cluster.Type)

	if len(summary.Badges) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BADGE\tTIER\tDESCRIPTION")
		for _, b := range summary.Badges {
			fmt.Fprintf(w, "%s\t%s\t%s\n", b.Title, b.Tier, b.Description)
		}
		w.Flush()
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tSTATUS\tREQUIREMENT")
	for _, u := range summary.Unlocks {
		status := "locked"
		if u.Unlocked {
			status = "unlocked"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.Feature, status, u.Requirement)
	}
	w.Flush()

	if len(summary.Challenges) > 0 {
		fmt.Println()
		for _, c := range summary.Challenges {
			state := "inactive"
			if c.IsActive {
				state = "active"
			}
			fmt.Printf("Challenge: %s (%s, %s) — %s\n", c.Title, c.Type, state, c.Description)
		}
	}
	return nil
}
