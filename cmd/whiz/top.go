package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
)

func newTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the top ranked games",
		Long:  "Lists the highest ranked games of the catalog with their BoardGameGeek links.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(deps *Deps) error {
				games, err := deps.CatalogHandler.HandleTop(ctx, limit)
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(games)
				}
				displayTopGames(games)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultTopLimit, "Number of games to list")

	return cmd
}

func displayTopGames(games []entities.RankedGame) {
	for _, g := range games {
		fmt.Printf("%4d. %s", g.Rank, g.Name)
		if g.Year != 0 {
			fmt.Printf(" (%d)", g.Year)
		}
		fmt.Printf("  %.2f\n", g.AvgRating)
		fmt.Printf("      %s\n", g.Link)
	}
}
