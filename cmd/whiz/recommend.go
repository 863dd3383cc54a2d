package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
)

type recommendFlags struct {
	k             int
	metric        string
	minYear       int
	players       int
	minRatingTier int
	minVotes      int
}

func newRecommendCmd() *cobra.Command {
	var flags recommendFlags

	cmd := &cobra.Command{
		Use:   "recommend <game>",
		Short: "Recommend games similar to a game",
		Long: `Finds the games most similar to the given one. The game may be a BGG ID,
a name, or an "<id>: <name>" label. Games of the same family are never recommended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.k, "k", 0, "Number of recommendations (default from config)")
	cmd.Flags().StringVarP(&flags.metric, "metric", "m", "", "Distance metric (heom, gower)")
	cmd.Flags().IntVar(&flags.minYear, "min-year", 0, "Only games published in or after this year")
	cmd.Flags().IntVar(&flags.players, "players", 0, "Only games supporting this player count")
	cmd.Flags().IntVar(&flags.minRatingTier, "min-rating-tier", 0, "Only games whose rating tier is at least this")
	cmd.Flags().IntVar(&flags.minVotes, "min-votes", 0, "Only games with at least this many votes")

	return cmd
}

func runRecommend(cmd *cobra.Command, selection string, flags recommendFlags) error {
	ctx := cmd.Context()

	opts := services.RecommendOptions{K: flags.k, Metric: flags.metric}
	if cmd.Flags().Changed("min-year") {
		opts.MinYear = entities.IntPtr(flags.minYear)
	}
	if cmd.Flags().Changed("players") {
		opts.PlayerCount = entities.IntPtr(flags.players)
	}
	if cmd.Flags().Changed("min-rating-tier") {
		opts.MinRatingTier = entities.IntPtr(flags.minRatingTier)
	}
	if cmd.Flags().Changed("min-votes") {
		opts.MinVotes = entities.IntPtr(flags.minVotes)
	}

	return withDeps(ctx, func(deps *Deps) error {
		set, err := deps.RecommendHandler.Handle(ctx, selection, opts)
		if err != nil {
			return err
		}

		if globalJSON {
			return printJSON(set)
		}
		displayRecommendations(set)
		return nil
	})
}

func displayRecommendations(set *entities.RecommendationSet) {
	fmt.Printf("Games like %s (%d candidates, %s):\n\n", set.Query.Label(), set.PoolSize, set.Metric)

	if len(set.Games) == 0 {
		fmt.Println("No games match the filters.")
		return
	}

	for i, g := range set.Games {
		fmt.Printf("%2d. %s", i+1, g.Name)
		if g.Year != 0 {
			fmt.Printf(" (%d)", g.Year)
		}
		fmt.Printf("  similarity %.3f\n", g.Similarity)
		fmt.Printf("    %s\n", g.Link)
	}
}
