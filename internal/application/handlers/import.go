package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/parsers"
)

// StdinPath selects standard input as the import source.
const StdinPath = "-"

// ImportHandler loads classified reviews into the review store.
type ImportHandler struct {
	service *services.ImportService
	stdin   io.Reader
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{
		service: service,
		stdin:   os.Stdin,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	services.ImportOptions

	// Format is "json", "csv", or "auto" (by file extension). Standard input needs an explicit format.
	Format string
}

// Handle imports reviews from a file, or from standard input when path is "-".
func (h *ImportHandler) Handle(ctx context.Context, path string, opts ImportOptions) (*services.ImportResult, error) {
	if path == StdinPath {
		return h.HandleReader(ctx, h.stdin, "stdin", opts)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return h.HandleReader(ctx, file, path, opts)
}

// HandleReader imports reviews read from r; name picks the parser when Format is auto.
func (h *ImportHandler) HandleReader(ctx context.Context, r io.Reader, name string, opts ImportOptions) (*services.ImportResult, error) {
	parser := reviewParser(name, opts.Format)
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for %s (use --format csv|json)", name)
	}

	raw, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if len(raw) == 0 {
		return &services.ImportResult{}, nil
	}

	return h.service.Import(ctx, raw, opts.ImportOptions)
}

func reviewParser(name, format string) parsers.Parser {
	if format == "" || format == "auto" {
		return parsers.ForFile(name)
	}
	return parsers.ForFormat(format)
}
