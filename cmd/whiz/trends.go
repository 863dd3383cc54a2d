package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andyphuawc114/boardgamewhiz/internal/application/handlers"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

func newTrendsCmd() *cobra.Command {
	var (
		from, to int
		minVotes int
		topN     int
		minTotal int
	)

	cmd := &cobra.Command{
		Use:       "trends <ratings|genres|complexity|categories>",
		Short:     "Show catalog trend data",
		Long:      "Computes the data behind the trend charts: ratings by year, genres by rating tier, complexity against rating, and the category heatmap.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ratings", "genres", "complexity", "categories"},
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := handlers.ParseTrendChart(args[0])
			if err != nil {
				return err
			}

			req := handlers.DefaultTrendRequest(chart)
			if cmd.Flags().Changed("from") {
				req.Years.From = from
			}
			if cmd.Flags().Changed("to") {
				req.Years.To = to
			}
			req.MinVotes, req.TopN, req.MinTotal = minVotes, topN, minTotal

			ctx := cmd.Context()
			return withDeps(ctx, func(deps *Deps) error {
				data, err := deps.TrendHandler.Handle(ctx, req)
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(data)
				}
				displayTrend(data)
				return nil
			})
		},
	}

	defaults := handlers.DefaultTrendRequest(handlers.ChartRatings)
	cmd.Flags().IntVar(&from, "from", defaults.Years.From, "First publication year")
	cmd.Flags().IntVar(&to, "to", defaults.Years.To, "Last publication year")
	cmd.Flags().IntVar(&minVotes, "min-votes", defaults.MinVotes, "Minimum votes (complexity)")
	cmd.Flags().IntVar(&topN, "top-n", defaults.TopN, "Games considered per year range (categories)")
	cmd.Flags().IntVar(&minTotal, "min-total", defaults.MinTotal, "Minimum games per category (categories)")

	return cmd
}

func displayTrend(data any) {
	switch d := data.(type) {
	case []entities.YearRating:
		for _, r := range d {
			fmt.Printf("%d  %.2f  (%d games)\n", r.Year, r.AvgRating, r.Games)
		}
	case []entities.GenreTierCount:
		tier := -1
		for _, c := range d {
			if c.Tier != tier {
				tier = c.Tier
				fmt.Printf("\nRating tier %d:\n", tier)
			}
			fmt.Printf("  %-14s %d\n", c.Genre, c.Count)
		}
	case []entities.ComplexityPoint:
		for _, p := range d {
			fmt.Printf("%-40s complexity %.2f  rating %.2f  votes %d\n", truncate(p.Name, 40), p.Complexity, p.Rating, p.Votes)
		}
	case *entities.CategoryHeatmap:
		years := make([]string, len(d.Years))
		for i, y := range d.Years {
			years[i] = fmt.Sprintf("%5d", y)
		}
		fmt.Printf("%-24s%s\n", "", strings.Join(years, ""))
		for i, cat := range d.Categories {
			fmt.Printf("%-24s", truncate(cat, 23))
			for _, n := range d.Counts[i] {
				fmt.Printf("%5d", n)
			}
			fmt.Println()
		}
	}
}
