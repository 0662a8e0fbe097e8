// ABOUTME: repo subcommands: track, sync, and activity for programming goals
// ABOUTME: Sync requires a signed-in GitHub session

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stridelog/stride/internal/github"
)

func newRepoCmd() *cobra.Command {
	repo := &cobra.Command{Use: "repo", Short: "Track GitHub repositories under a programming goal"}

	var goalID string
	trackCmd := &cobra.Command{
		Use:   "track <owner/name>",
		Short: "Start tracking a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			owner, name, ok := strings.Cut(args[0], "/")
			if !ok {
				return fmt.Errorf("repository must be owner/name, got %q", args[0])
			}

			r, err := app.goals.TrackRepository(cmd.Context(), goalID, owner, name)
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen)
			green.Printf("Tracking %s\n", r.FullName())
			fmt.Printf("  id: %s\n", r.ID)
			return nil
		},
	}
	trackCmd.Flags().StringVar(&goalID, "goal", "", "goal id")
	_ = trackCmd.MarkFlagRequired("goal")

	var syncGoalID string
	syncCmd := &cobra.Command{
		Use:   "sync [repo-id]",
		Short: "Refresh commit activity from GitHub",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			switch {
			case len(args) == 1:
				err = app.syncer.SyncRepository(cmd.Context(), args[0])
			case syncGoalID != "":
				err = app.syncer.SyncGoal(cmd.Context(), syncGoalID)
			default:
				return errors.New("pass a repo id or --goal")
			}

			if errors.Is(err, github.ErrStatsPending) {
				fmt.Println("GitHub is still computing statistics; try again in a minute.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println("Synced.")
			return nil
		},
	}
	syncCmd.Flags().StringVar(&syncGoalID, "goal", "", "sync every repository under this goal")

	activityCmd := &cobra.Command{
		Use:   "activity <repo-id>",
		Short: "Show weekly commit counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			weeks, err := app.store.ListCommitActivity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(weeks) == 0 {
				fmt.Println("No activity synced yet. Run: stride repo sync")
				return nil
			}
			for _, w := range weeks {
				fmt.Printf("%s  %s\n", w.WeekStart.Format("2006-01-02"), strings.Repeat("▪", min(w.CommitCount, 60)))
			}
			return nil
		},
	}

	repo.AddCommand(trackCmd, syncCmd, activityCmd)
	return repo
}
