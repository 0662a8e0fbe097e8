// ABOUTME: goal subcommands: add, list, show, delete
// ABOUTME: Goal type is fixed at creation; delete cascades to children

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stridelog/stride/internal/format"
	"github.com/stridelog/stride/internal/store"
)

func newGoalCmd() *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Manage goals"}

	var goalType string
	var target int

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			g, err := app.goals.CreateGoal(cmd.Context(), args[0], goalType, target)
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen)
			green.Printf("Created %s goal %q\n", g.Type, g.Title)
			fmt.Printf("  id: %s\n", g.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&goalType, "type", "", "goal type: book_reading, fitness, or programming")
	addCmd.Flags().IntVar(&target, "target", 0, "target (pages, sessions, or commits)")
	_ = addCmd.MarkFlagRequired("type")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			list, err := app.goals.ListGoals(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("No goals yet. Create one with: stride goal add")
				return nil
			}

			cyan := color.New(color.FgCyan)
			for _, g := range list {
				cyan.Printf("%s", g.Title)
				fmt.Printf("  [%s]  created %s\n", g.Type, format.RelativeTime(g.CreatedAt))
				fmt.Printf("  id: %s\n", g.ID)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show a goal and its children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return showGoal(cmd, app, args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.goals.DeleteGoal(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}

	goal.AddCommand(addCmd, listCmd, showCmd, deleteCmd)
	return goal
}

func showGoal(cmd *cobra.Command, app *app, goalID string) error {
	ctx := cmd.Context()

	g, err := app.goals.GetGoal(ctx, goalID)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	cyan.Printf("%s\n", g.Title)
	fmt.Printf("type: %s  target: %d  created: %s\n\n", g.Type, g.Target, format.RelativeTime(g.CreatedAt))

	switch g.Type {
	case store.GoalTypeBookReading:
		books, err := app.store.ListBooks(ctx, g.ID)
		if err != nil {
			return err
		}
		for _, b := range books {
			fmt.Printf("  %s — %s  %s\n", b.Title, b.Author, format.Progress(b.CurrentPage, b.PageCount))
			fmt.Printf("    id: %s\n", b.ID)
		}

	case store.GoalTypeFitness:
		sessions, err := app.store.ListSessions(ctx, g.ID)
		if err != nil {
			return err
		}
		for _, s := range sessions {
			fmt.Printf("  %s  %s  %s  %s\n",
				s.Date.Format("2006-01-02"), s.Sport,
				format.Duration(s.Duration), format.Distance(s.Distance))
		}

	case store.GoalTypeProgramming:
		repos, err := app.store.ListRepositories(ctx, g.ID)
		if err != nil {
			return err
		}
		for _, r := range repos {
			synced := "never synced"
			if r.LastSyncedAt != nil {
				synced = "synced " + format.RelativeTime(*r.LastSyncedAt)
			}
			fmt.Printf("  %s  (%s)\n", r.FullName(), synced)
			fmt.Printf("    id: %s\n", r.ID)
		}
	}

	return nil
}
