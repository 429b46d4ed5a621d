package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestSession_AddProduct(t *testing.T) {
	product := NewProduct{
		Name:         "Wildflower Honey",
		Price:        550,
		ProductImage: "https://i.ibb.co/main.jpg",
		Icons:        []string{"https://i.ibb.co/i1.jpg", "https://i.ibb.co/i2.jpg"},
	}

	t.Run("posts the hosted urls", func(t *testing.T) {
		client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/addProducts" {
				t.Errorf("expected POST /addProducts, got %s %s", r.Method, r.URL.Path)
			}
			var got NewProduct
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decoding product payload: %v", err)
				return
			}
			if got.ProductImage != product.ProductImage || len(got.Icons) != 2 {
				t.Errorf("unexpected payload: %+v", got)
			}
			_, _ = w.Write([]byte(`{"message":"product added"}`))
		})

		if err := client.Anonymous().AddProduct(context.Background(), product); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("a 2xx with an empty body is still a success", func(t *testing.T) {
		client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		if err := client.Anonymous().AddProduct(context.Background(), product); err != nil {
			t.Errorf("an empty ack must not fail the creation: %v", err)
		}
	})

	t.Run("a rejection still surfaces the server message", func(t *testing.T) {
		client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"duplicate product"}`))
		})

		err := client.Anonymous().AddProduct(context.Background(), product)
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if se.UserMessage() != "duplicate product" {
			t.Errorf("unexpected message: %s", se.UserMessage())
		}
	})
}
