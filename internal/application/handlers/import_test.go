package handlers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/mocks"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportHandler_Handle_JSONFile(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewImportHandler(services.NewImportService(db))

	path := writeFile(t, "reviews.json", `[{"bgg_id": 13, "comment": "Classic", "final_sentiment": "Positive", "rating": 7}]`)

	result, err := handler.Handle(context.Background(), path, ImportOptions{
		ImportOptions: services.ImportOptions{OnConflict: services.ConflictOverwrite},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Len(t, db.Reviews, 1)
}

func TestImportHandler_Handle_CSVFile(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewImportHandler(services.NewImportService(db))

	path := writeFile(t, "reviews.csv", "bgg_id,name,rating,comment,final_sentiment,subjectivity,label_proba\n"+
		"13,CATAN,8,Great trading,Positive,0.6,0.91\n"+
		"13,CATAN,3,,Negative,0.5,0.8\n")

	result, err := handler.Handle(context.Background(), path, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Line)
}

func TestImportHandler_Handle_ExplicitFormat(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewImportHandler(services.NewImportService(db))

	path := writeFile(t, "reviews.txt", "bgg_id,comment,final_sentiment\n13,Fine,Neutral-Positive\n")

	result, err := handler.Handle(context.Background(), path, ImportOptions{Format: "csv"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}

func TestImportHandler_Handle_Stdin(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewImportHandler(services.NewImportService(db))
	handler.stdin = strings.NewReader("bgg_id,comment,final_sentiment\n13,Fine,Positive\n822,Meh,Negative\n")

	_, err := handler.Handle(context.Background(), StdinPath, ImportOptions{})
	require.Error(t, err, "stdin has no extension to infer the format from")
	assert.Contains(t, err.Error(), "unsupported format for stdin")

	result, err := handler.Handle(context.Background(), StdinPath, ImportOptions{Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Len(t, db.Reviews, 2)
}

func TestImportHandler_HandleReader_DryRun(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewImportHandler(services.NewImportService(db))

	result, err := handler.HandleReader(context.Background(),
		strings.NewReader(`[{"bgg_id": 13, "comment": "Classic", "final_sentiment": "Positive"}]`),
		"reviews.json",
		ImportOptions{ImportOptions: services.ImportOptions{DryRun: true}},
	)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, db.Reviews)
}

func TestImportHandler_Handle_Errors(t *testing.T) {
	handler := NewImportHandler(services.NewImportService(mocks.NewRelationalDB()))

	t.Run("unsupported format", func(t *testing.T) {
		path := writeFile(t, "reviews.xml", "<reviews/>")
		_, err := handler.Handle(context.Background(), path, ImportOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), ImportOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening file")
	})

	t.Run("parse error", func(t *testing.T) {
		path := writeFile(t, "reviews.json", `[{"bgg_id": }]`)
		_, err := handler.Handle(context.Background(), path, ImportOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing "+path)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "reviews.json", `[]`)
		result, err := handler.Handle(context.Background(), path, ImportOptions{})
		require.NoError(t, err)
		assert.Zero(t, result.Imported)
	})
}
