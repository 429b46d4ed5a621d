package backend

import (
	"context"
	"net/http"

	"github.com/tonmoyth/landing-page-two/internal/models"
)

// Products lists the catalog (GET /products).
func (s *Session) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if _, err := s.do(ctx, "products", http.MethodGet, "/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// NewProduct is the creation payload for POST /addProducts: the primary image
// and exactly two icons, all already hosted.
type NewProduct struct {
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	ProductImage string   `json:"productImage"`
	Icons        []string `json:"icons"`
}

// AddProduct creates one product record (POST /addProducts). The ack body is
// ignored; a 2xx with an empty body still counts as success.
func (s *Session) AddProduct(ctx context.Context, p NewProduct) error {
	if _, err := s.do(ctx, "add_product", http.MethodPost, "/addProducts", nil, p, nil); err != nil {
		return err
	}
	return nil
}
