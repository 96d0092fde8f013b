package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskpulse/taskpulse/internal/daemon"
	"github.com/taskpulse/taskpulse/internal/domain"
)

func init() {
	completeCmd.Flags().StringVar(&completePriority, "priority", "low", "Task priority (low, medium, high, urgent)")
	completeCmd.Flags().StringVar(&completeCategory, "category", "", "Task category (health, learning, work, ...)")
	completeCmd.Flags().IntVar(&completeEstimate, "estimated", 0, "Estimated minutes")
	completeCmd.Flags().IntVar(&completeActual, "actual", 0, "Actual minutes spent")
	rootCmd.AddCommand(completeCmd)
}

var (
	completePriority string
	completeCategory string
	completeEstimate int
	completeActual   int
)

var completeCmd = &cobra.Command{
	Use:   "complete <user-id> <task-id>",
	Short: "Score a completed task",
	Args:  cobra.ExactArgs(2),
	RunE:  runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	task := domain.Task{
		ID:               args[1],
		Priority:         domain.Priority(completePriority),
		Category:         completeCategory,
		EstimatedMinutes: completeEstimate,
		Completed:        true,
	}
	outcome, err := d.Progress.CompleteTask(args[0], task, completeActual)
	if err != nil {
		return err
	}

	fmt.Printf("+%d XP (total %d)\n", outcome.XPAwarded, outcome.TotalXP)
	for _, r := range outcome.Rewards {
		fmt.Printf("Reward: %s (%s)\n", r.Reward.Title, r.Reward.Rarity)
	}
	for _, b := range outcome.NewBadges {
		fmt.Printf("New badge: %s (%s)\n", b.Title, b.Tier)
	}
	fmt.Println(outcome.Message)
	return nil
}
