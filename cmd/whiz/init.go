package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andyphuawc114/boardgamewhiz/internal/application/handlers"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/ports"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/config"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/relationaldb/sqlite"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/vectordb/qdrant"
)

func newInitCmd() *cobra.Command {
	var skipQdrant bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new whiz workspace",
		Long:  "Creates a .whiz directory with default configuration, the review database and the Qdrant review collection.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, skipQdrant)
		},
	}

	cmd.Flags().BoolVar(&skipQdrant, "skip-qdrant", false, "Do not create the Qdrant collection")

	return cmd
}

func runInit(cmd *cobra.Command, skipQdrant bool) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := handlers.WriteConfig(cwd)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))

	db, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.SQLitePath(cwd)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer db.Close()

	var collectionManager ports.CollectionManager
	if !skipQdrant {
		repo, err := qdrant.NewRepository(cfg.Qdrant)
		if err != nil {
			return fmt.Errorf("connecting to qdrant: %w", err)
		}
		defer repo.Close()
		collectionManager = repo
	}

	result, err := handlers.NewInitHandler(db, collectionManager).Handle(ctx, cfg, cwd)
	if err != nil {
		return err
	}

	fmt.Printf("Created review database: %s\n", result.DatabasePath)
	switch {
	case result.CollectionErr != nil:
		fmt.Printf("Warning: %v\n", result.CollectionErr)
		fmt.Println("Review search stays disabled until Qdrant is reachable; 'whiz reviews index' creates the collection.")
	case result.CollectionName != "":
		fmt.Printf("Created Qdrant collection: %s\n", result.CollectionName)
	}
	fmt.Printf("Catalog: %s (key %s)\n", cfg.Catalog.BucketURL, cfg.Catalog.Key)
	fmt.Println("Whiz initialized successfully!")

	return nil
}
