package api

import "net/http"

// CatalogDependencies defines the interface for catalog reads.
type CatalogDependencies interface {
	Catalog() []string
}

// CatalogHandler handles catalog requests.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

type catalogResponse struct {
	Items    []string `json:"items"`
	MinItems int      `json:"min_items"`
	MaxItems int      `json:"max_items"`
}

// HandleGetCatalog handles GET /catalog requests.
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Items:    h.deps.Catalog(),
		MinItems: minItems,
		MaxItems: maxItems,
	})
}
