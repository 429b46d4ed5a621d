// Package catalog models the product list shown on the public page as an
// explicit tagged state instead of ad hoc booleans.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tonmoyth/landing-page-two/internal/models"
)

type State int

const (
	StateReady State = iota
	StateEmpty
	StateFailed
)

// View is what the home page renders: exactly one of Ready (with products),
// Empty, or Failed (with the error).
type View struct {
	State    State
	Products []models.Product
	Err      error
}

func ViewOf(products []models.Product, err error) View {
	switch {
	case err != nil:
		return View{State: StateFailed, Err: err}
	case len(products) == 0:
		return View{State: StateEmpty}
	default:
		return View{State: StateReady, Products: products}
	}
}

// Select returns the product with the given id, or the first product when the
// id is empty or unknown. Selecting is only meaningful on a Ready view.
func (v View) Select(id string) (models.Product, bool) {
	if v.State != StateReady {
		return models.Product{}, false
	}
	for _, p := range v.Products {
		if p.ID == id {
			return p, true
		}
	}
	return v.Products[0], true
}

// FileSource reads the legacy static products.json asset, which predates the
// backend catalog and uses numeric ids and no icon set.
type FileSource struct {
	Path string
}

type legacyProduct struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"img"`
}

func (f FileSource) Products(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", f.Path, err)
	}
	var legacy []legacyProduct
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", f.Path, err)
	}
	products := make([]models.Product, 0, len(legacy))
	for _, lp := range legacy {
		products = append(products, models.Product{
			ID:    strconv.Itoa(lp.ID),
			Name:  lp.Name,
			Price: lp.Price,
			Image: lp.Image,
		})
	}
	return products, nil
}
