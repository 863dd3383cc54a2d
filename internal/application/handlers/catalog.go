package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/services"
)

// CatalogHandler handles catalog browsing and refresh.
type CatalogHandler struct {
	store   *services.CatalogStore
	service *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(store *services.CatalogStore) *CatalogHandler {
	return &CatalogHandler{
		store:   store,
		service: services.NewCatalogService(store),
	}
}

// CatalogInfo describes the snapshot being served.
type CatalogInfo struct {
	Source   string    `json:"source"`
	Games    int       `json:"games"`
	Features int       `json:"features"`
	LoadedAt time.Time `json:"loaded_at"`
}

// HandleTop returns the n highest ranked games.
func (h *CatalogHandler) HandleTop(ctx context.Context, n int) ([]entities.RankedGame, error) {
	games, err := h.service.Top(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("listing top games: %w", err)
	}
	return games, nil
}

// HandleFind resolves a selection to a catalog game.
func (h *CatalogHandler) HandleFind(ctx context.Context, selection string) (entities.Game, error) {
	g, err := h.service.Find(ctx, selection)
	if err != nil {
		return entities.Game{}, fmt.Errorf("finding game %q: %w", selection, err)
	}
	return g, nil
}

// HandleInfo describes the current snapshot, loading it if needed.
func (h *CatalogHandler) HandleInfo(ctx context.Context) (*CatalogInfo, error) {
	c, err := h.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return catalogInfo(c), nil
}

// HandleRefresh reloads the catalog from its source.
func (h *CatalogHandler) HandleRefresh(ctx context.Context) (*CatalogInfo, error) {
	c, err := h.store.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing catalog: %w", err)
	}
	return catalogInfo(c), nil
}

func catalogInfo(c *entities.Catalog) *CatalogInfo {
	return &CatalogInfo{
		Source:   c.Source(),
		Games:    c.Len(),
		Features: c.Schema().NumFeatures(),
		LoadedAt: c.LoadedAt(),
	}
}
