package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andyphuawc114/boardgamewhiz/internal/application/handlers"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/ports"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
	embedder "github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/embedder/openai"
)

func newReviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Manage and browse game reviews",
	}

	cmd.AddCommand(
		newReviewsImportCmd(),
		newReviewsListCmd(),
		newReviewsIndexCmd(),
		newReviewsSearchCmd(),
	)

	return cmd
}

type importFlags struct {
	format     string
	dryRun     bool
	onConflict string
}

func newReviewsImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import classified reviews from JSON or CSV",
		Long:  "Imports reviews with their sentiment labels into the review database. Use - to read from standard input with an explicit --format.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", "skip", "Conflict handling (skip, overwrite)")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	if !slices.Contains(validConflicts, flags.onConflict) {
		return fmt.Errorf("invalid --on-conflict value %q (valid: %v)", flags.onConflict, validConflicts)
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(deps *Deps) error {
		opts := handlers.ImportOptions{
			Format: flags.format,
			ImportOptions: services.ImportOptions{
				DryRun:     flags.dryRun,
				OnConflict: services.ConflictStrategy(flags.onConflict),
			},
		}

		fmt.Printf("Importing %s...\n", filePath)

		result, err := deps.ImportHandler.Handle(ctx, filePath, opts)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if len(result.Errors) > 0 {
			fmt.Printf("\nValidation errors (%d):\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  %s\n", e.Error())
			}
		}

		fmt.Println()
		if flags.dryRun {
			fmt.Printf("Dry run: %d reviews would be imported", result.Imported)
		} else {
			fmt.Printf("Imported: %d reviews", result.Imported)
		}
		if result.Skipped > 0 {
			fmt.Printf(", %d skipped (already exist)", result.Skipped)
		}
		if len(result.Errors) > 0 {
			fmt.Printf(", %d errors", len(result.Errors))
		}
		fmt.Println()

		return nil
	})
}

func newReviewsListCmd() *cobra.Command {
	var (
		sentiment string
		rating    int
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list <bgg_id>",
		Short: "List the reviews of a game",
		Long:  "Lists the most confidently classified reviews of a game, optionally filtered by sentiment and rating.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid bgg_id %q", args[0])
			}

			q := entities.ReviewQuery{GameID: gameID, Limit: limit}
			if sentiment != "" {
				if q.Sentiment, err = entities.ParseSentiment(sentiment); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("rating") {
				q.Rating = entities.IntPtr(rating)
			}

			ctx := cmd.Context()
			return withDeps(ctx, func(deps *Deps) error {
				list, err := deps.ReviewHandler.Handle(ctx, q)
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(list)
				}
				displayReviewList(list)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sentiment, "sentiment", "s", "", "Filter by sentiment (Positive, Negative, Neutral-Positive, Neutral-Negative)")
	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "Filter by rating (0-10)")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultReviewLimit, "Maximum number of reviews")

	return cmd
}

func displayReviewList(list *handlers.ReviewList) {
	fmt.Printf("Game %d: %d reviews", list.Query.GameID, list.Summary.Total)
	for _, s := range entities.Sentiments {
		if n := list.Summary.BySentiment[s]; n > 0 {
			fmt.Printf(", %d %s", n, s)
		}
	}
	fmt.Println()
	fmt.Println()

	if len(list.Reviews) == 0 {
		fmt.Println("No reviews found.")
		return
	}
	displayReviews(list.Reviews)
}

func displayReviews(reviews []entities.Review) {
	for i, r := range reviews {
		fmt.Printf("%d. [%s %.0f%%] %s rated %.1f\n", i+1, r.Sentiment, r.LabelProba*100, r.User, r.Rating)
		if r.Score != 0 {
			fmt.Printf("   Game: %s (%d)  score %.3f\n", r.GameName, r.GameID, r.Score)
		}
		fmt.Printf("   %s\n\n", truncate(r.Comment, 300))
	}
}

func newReviewsIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Embed stored reviews into the search index",
		Long:  "Generates embeddings for every stored review and saves them to the Qdrant collection, creating it if needed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withQueryHandler(ctx, func(handler *handlers.QueryHandler, collections ports.CollectionManager) error {
				if err := collections.EnsureCollection(ctx, embedder.VectorSize); err != nil {
					return fmt.Errorf("creating collection: %w", err)
				}

				n, err := handler.HandleIndex(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Indexed %d reviews.\n", n)
				return nil
			})
		},
	}
}

func newReviewsSearchCmd() *cobra.Command {
	var (
		gameID int64
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search reviews by meaning",
		Long:  "Performs semantic search over indexed review comments.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withQueryHandler(ctx, func(handler *handlers.QueryHandler, _ ports.CollectionManager) error {
				result, err := handler.Handle(ctx, args[0], gameID, limit)
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(result)
				}
				if len(result.Reviews) == 0 {
					fmt.Println("No reviews found.")
					return nil
				}
				fmt.Printf("Found %d reviews:\n\n", len(result.Reviews))
				displayReviews(result.Reviews)
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&gameID, "game", "g", 0, "Restrict to one BGG ID")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSearchLimit, "Maximum number of results")

	return cmd
}
