package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyspace/internal/core"
	"studyspace/pkg/domain"
)

func (a *app) locationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List study locations with their current score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				all, err := svc.AnalyzeAll(ctx)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printJSON(all)
				}
				fmt.Fprintln(a.out, titleStyle.Render("Study locations"))
				for _, la := range all {
					fmt.Fprintln(a.out, renderLocationRow(la))
				}
				return nil
			})
		},
	}
}

func (a *app) analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [location-id]",
		Short: "Show the full analysis of one location, or of every location",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				var all []core.LocationAnalysis
				if len(args) == 1 {
					la, err := svc.AnalyzeLocation(ctx, args[0])
					if err != nil {
						return err
					}
					all = []core.LocationAnalysis{la}
				} else {
					var err error
					if all, err = svc.AnalyzeAll(ctx); err != nil {
						return err
					}
				}
				if a.jsonOutput {
					if len(args) == 1 {
						return a.printJSON(all[0])
					}
					return a.printJSON(all)
				}
				for i, la := range all {
					if i > 0 {
						fmt.Fprintln(a.out)
					}
					fmt.Fprint(a.out, renderAnalysis(la.Location.Name, la.Analysis))
				}
				return nil
			})
		},
	}
}

func (a *app) scoreCommand() *cobra.Command {
	var reading domain.EnvironmentReading
	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Score an ad-hoc environmental reading",
		Example: `  studyspace score --temp 28 --humidity 50 --noise 30 --light 500 --aqi 50`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				analysis, err := svc.Analyze(ctx, reading)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printJSON(analysis)
				}
				fmt.Fprint(a.out, renderAnalysis("Reading", analysis))
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&reading.Temperature, "temp", 0, "temperature in °C")
	flags.Float64Var(&reading.Humidity, "humidity", 0, "relative humidity in %")
	flags.Float64Var(&reading.NoiseLevel, "noise", 0, "noise level in dB")
	flags.Float64Var(&reading.LightIntensity, "light", 0, "light intensity in lux")
	flags.Float64Var(&reading.AirQualityIndex, "aqi", 0, "air quality index")
	for _, name := range []string{"temp", "humidity", "noise", "light", "aqi"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) recommendationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recommendations",
		Short: "List improvement recommendations across locations, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				recs, err := svc.AdminRecommendations(ctx)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printJSON(recs)
				}
				if len(recs) == 0 {
					fmt.Fprintln(a.out, mutedStyle.Render("No recommendations. Every monitored location is within range."))
					return nil
				}
				fmt.Fprintln(a.out, titleStyle.Render(fmt.Sprintf("%d recommendations", len(recs))))
				for _, rec := range recs {
					fmt.Fprint(a.out, renderRecommendation(rec))
				}
				return nil
			})
		},
	}
}

func (a *app) historyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Score the hourly demo readings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *core.Service) error {
				history, err := svc.History(ctx)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printJSON(history)
				}
				for _, h := range history {
					fmt.Fprintf(a.out, "%s  %s  %s\n",
						h.Reading.Timestamp.Format("15:04"),
						labelStyle.Width(8).Render(formatScore(h.Result.OptimalScore)),
						statusBadge(h.Status))
				}
				return nil
			})
		},
	}
}
