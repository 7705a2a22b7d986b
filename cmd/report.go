package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	app "github.com/okian/olympstats/internal/app"
	"github.com/okian/olympstats/internal/domain/stats"
	"github.com/spf13/cobra"
)

func newReportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Load the dataset and print the headline statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.setup(ctx, cmd.ErrOrStderr()); err != nil {
				return err
			}
			svc := c.newService()
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Stop()
			return writeReport(ctx, cmd.OutOrStdout(), svc)
		},
	}
}

func writeReport(ctx context.Context, w io.Writer, svc *app.Service) error {
	st := svc.GetStats()
	fmt.Fprintf(w, "Dataset: %v athletes, %v countries, %v events, %v participations\n",
		st["athletes"], st["countries"], st["events"], st["participations"])

	countries, err := svc.CountryWithMostMedalists(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Countries with most medalists:")
	writeCounts(w, countries)

	stars, err := svc.StarAthletes(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Star athletes:")
	writeCounts(w, stars)

	switch a, err := svc.AllTerrainAthlete(ctx); {
	case errors.Is(err, stats.ErrNoAthletes):
		fmt.Fprintln(w, "All-terrain athlete: none")
	case err != nil:
		return err
	default:
		fmt.Fprintf(w, "All-terrain athlete: %s (%d sports)\n", a.Name, a.SportCount())
	}

	switch p, err := svc.MedalistPercentage(ctx); {
	case errors.Is(err, stats.ErrEmptyPopulation):
		fmt.Fprintln(w, "Medalist percentage: n/a")
	case err != nil:
		return err
	default:
		fmt.Fprintf(w, "Medalist percentage: %.2f%%\n", p*100)
	}
	return nil
}

func writeCounts(w io.Writer, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%d\n", name, counts[name])
	}
}
