package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/tonmoyth/landing-page-two/internal/backend"
	"github.com/tonmoyth/landing-page-two/internal/imghost"
)

// ListProducts shows the full catalog as the admin sees it: image, name and
// price per product. The backend API has no product-update endpoint, so the
// page is read-only apart from the add-product link.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	products, err := h.Backend.Bind(r).Products(r.Context())
	if err != nil {
		if RedirectIfUnauthorized(h.SessionStore, w, r, err) {
			return
		}
		session.AddFlash(FlashMessage{Type: "error", Message: UserMessage(err)})
		products = nil
	}

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Products": products,
		"Flashes":  GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UploadForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_upload.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func prepareUpload(r *http.Request, field string) (imghost.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return imghost.File{}, err
	}
	defer file.Close()
	return imghost.Prepare(file, header.Filename)
}

// CreateProduct collects the product picture plus two icons, uploads all
// three to the image host in parallel, then posts the metadata to the
// backend as one record. Any upload failure aborts the whole operation and
// no product is created.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if h.Uploader == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Image hosting is not configured. Set IMGBB_KEY."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	priceStr := r.FormValue("price")

	// Validation
	errors := make(map[string]string)
	if name == "" {
		errors["name"] = "Product name is required."
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if priceStr == "" {
		errors["price"] = "Price is required."
	} else if err != nil {
		errors["price"] = "Invalid price format."
	} else if price <= 0 {
		errors["price"] = "Price must be positive."
	}

	var files []imghost.File
	for _, field := range []string{"product_image", "icon1", "icon2"} {
		f, err := prepareUpload(r, field)
		if err == http.ErrMissingFile {
			errors[field] = "Please select the product photo plus two icons."
			continue
		}
		if err != nil {
			errors[field] = "Failed to read the selected image: " + err.Error()
			continue
		}
		files = append(files, f)
	}

	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	urls, err := h.Uploader.UploadAll(r.Context(), files...)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Something went wrong while uploading images."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	product := backend.NewProduct{
		Name:         name,
		Price:        price,
		ProductImage: urls[0],
		Icons:        urls[1:],
	}
	if err := h.Backend.Bind(r).AddProduct(r.Context(), product); err != nil {
		if RedirectIfUnauthorized(h.SessionStore, w, r, err) {
			return
		}
		session.AddFlash(FlashMessage{Type: "error", Message: UserMessage(err)})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product and icons uploaded successfully!"})
	http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
}
