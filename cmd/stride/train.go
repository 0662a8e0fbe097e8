// ABOUTME: train subcommands: log and list workouts under a fitness goal
// ABOUTME: Accepts Go duration strings and a date in YYYY-MM-DD form

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stridelog/stride/internal/format"
	"github.com/stridelog/stride/internal/store"
)

func newTrainCmd() *cobra.Command {
	train := &cobra.Command{Use: "train", Short: "Log training under a fitness goal"}

	var goalID, sport, durationStr, dateStr string
	var distance float64
	var heartRate, effort int

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			duration, err := time.ParseDuration(durationStr)
			if err != nil {
				return fmt.Errorf("parsing duration %q: %w", durationStr, err)
			}

			date := time.Now().UTC()
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", dateStr, err)
				}
			}

			session := &store.TrainingSession{
				GoalID:       goalID,
				Sport:        sport,
				Duration:     duration,
				Distance:     distance,
				AvgHeartRate: heartRate,
				Effort:       effort,
				Date:         date,
			}
			if err := app.goals.LogTrainingSession(cmd.Context(), session); err != nil {
				return err
			}

			fmt.Printf("Logged %s %s", sport, format.Duration(duration))
			if distance > 0 {
				fmt.Printf(" %s", format.Distance(distance))
			}
			fmt.Println()
			return nil
		},
	}
	logCmd.Flags().StringVar(&goalID, "goal", "", "goal id")
	logCmd.Flags().StringVar(&sport, "sport", "", "swim, bike, run, strength, or recovery")
	logCmd.Flags().StringVar(&durationStr, "duration", "", "workout duration, e.g. 45m or 1h10m")
	logCmd.Flags().StringVar(&dateStr, "date", "", "date (YYYY-MM-DD, default today)")
	logCmd.Flags().Float64Var(&distance, "distance", 0, "distance in meters")
	logCmd.Flags().IntVar(&heartRate, "hr", 0, "average heart rate")
	logCmd.Flags().IntVar(&effort, "effort", 0, "perceived effort 1-10")
	_ = logCmd.MarkFlagRequired("goal")
	_ = logCmd.MarkFlagRequired("sport")
	_ = logCmd.MarkFlagRequired("duration")

	var listGoalID string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List logged workouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			sessions, err := app.store.ListSessions(cmd.Context(), listGoalID)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No workouts logged yet.")
				return nil
			}
			for _, s := range sessions {
				fmt.Printf("%s  %-9s %s", s.Date.Format("2006-01-02"), s.Sport, format.Duration(s.Duration))
				if s.Distance > 0 {
					fmt.Printf("  %s", format.Distance(s.Distance))
				}
				if s.AvgHeartRate > 0 {
					fmt.Printf("  %d bpm", s.AvgHeartRate)
				}
				if s.Effort > 0 {
					fmt.Printf("  effort %d/10", s.Effort)
				}
				fmt.Println()
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listGoalID, "goal", "", "goal id")
	_ = listCmd.MarkFlagRequired("goal")

	train.AddCommand(logCmd, listCmd)
	return train
}
