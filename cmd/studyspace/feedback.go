package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyspace/internal/core"
	"studyspace/pkg/domain"
)

func (a *app) feedbackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Submit, list and summarise student feedback",
	}
	cmd.AddCommand(a.feedbackSubmitCommand(), a.feedbackListCommand(), a.feedbackSummaryCommand(), a.feedbackClearCommand())
	return cmd
}

func (a *app) feedbackSubmitCommand() *cobra.Command {
	var fb domain.Feedback
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a rating for a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				saved, err := svc.SubmitFeedback(ctx, fb)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printJSON(saved)
				}
				fmt.Fprintf(a.out, "Recorded feedback %s\n", saved.ID)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&fb.LocationID, "location", "", "location id")
	flags.StringVar(&fb.StudentID, "student-id", "", "student id")
	flags.StringVar(&fb.StudentName, "student-name", "", "student display name")
	flags.StringVar(&fb.Section, "section", "", "class section")
	flags.IntVar(&fb.Rating, "rating", 0, "rating from 1 to 5")
	flags.StringVar(&fb.Comment, "comment", "", "optional comment")
	for _, name := range []string{"location", "student-id", "student-name", "rating"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) feedbackListCommand() *cobra.Command {
	var studentID, locationID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List feedback, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				var (
					entries []domain.Feedback
					err     error
				)
				if locationID != "" {
					entries, err = svc.LocationFeedback(ctx, locationID)
				} else {
					entries, err = svc.FeedbackHistory(ctx, studentID)
				}
				if err != nil {
					return err
				}
				if a.jsonOutput {
					if entries == nil {
						entries = []domain.Feedback{}
					}
					return a.printJSON(entries)
				}
				if len(entries) == 0 {
					fmt.Fprintln(a.out, mutedStyle.Render("No feedback recorded."))
					return nil
				}
				for _, fb := range entries {
					fmt.Fprintln(a.out, renderFeedback(fb))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&studentID, "student-id", "", "only this student's submissions")
	cmd.Flags().StringVar(&locationID, "location", "", "only submissions for this location")
	cmd.MarkFlagsMutuallyExclusive("student-id", "location")
	return cmd
}

func (a *app) feedbackSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Average rating per location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				ratings, err := svc.FeedbackSummary(ctx)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					if ratings == nil {
						ratings = []core.LocationRating{}
					}
					return a.printJSON(ratings)
				}
				if len(ratings) == 0 {
					fmt.Fprintln(a.out, mutedStyle.Render("No feedback recorded."))
					return nil
				}
				for _, r := range ratings {
					fmt.Fprintln(a.out, renderRating(r))
				}
				return nil
			})
		},
	}
}

func (a *app) feedbackClearCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every feedback entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear feedback without --yes")
			}
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				if err := svc.ClearFeedback(ctx); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "Feedback cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
