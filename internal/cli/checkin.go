package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskpulse/taskpulse/internal/daemon"
)

func init() {
	checkinCmd.Flags().StringVar(&checkinName, "name", "", "Habit name (used when creating the habit)")
	rootCmd.AddCommand(checkinCmd)
}

var checkinName string

var checkinCmd = &cobra.Command{
	Use:   "checkin <user-id> <habit-id>",
	Short: "Record a habit check-in",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	outcome, err := d.Progress.CheckInHabit(args[0], args[1], checkinName, time.Now())
	if err != nil {
		return err
	}

	if outcome.Duplicate {
		fmt.Printf("Already checked in today. Streak: %d days\n", outcome.Streak.NewStreak)
		return nil
	}

	fmt.Printf("Streak: %d days\n", outcome.Streak.NewStreak)
	if outcome.Streak.MilestoneReached {
		fmt.Println("Milestone reached!")
		for _, r := range outcome.Rewards {
			fmt.Printf("Reward: %s (%s)\n", r.Reward.Title, r.Reward.Rarity)
		}
	}
	if outcome.Message != "" {
		fmt.Println(outcome.Message)
	}
	return nil
}
