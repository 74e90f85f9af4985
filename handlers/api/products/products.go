package products

import (
	"net/http"
	"strconv"

	"shopmart/catalog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// HandleList returns the full catalog.
func HandleList(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, cat.All())
	}
}

// HandleGet returns a single product by id. A non-integer id is a 400, an
// integer that is not in the catalog is a 404.
func HandleGet(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := chi.URLParam(r, "id")
		id, err := strconv.Atoi(idParam)
		if err != nil || id <= 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Product id must be a positive integer"})
			return
		}

		product, err := cat.Get(id)
		if err != nil {
			logrus.WithField("product_id", id).Debug("Product not found")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "Product not found"})
			return
		}

		render.JSON(w, r, product)
	}
}

// HandleSearch returns products matching the query case-insensitively on
// name or description. An empty query matches everything.
func HandleSearch(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := chi.URLParam(r, "query")
		render.JSON(w, r, cat.Search(query))
	}
}

// HandleFilterByPrice returns products inside the inclusive [min, max]
// price range. Absent or malformed params fall back to their defaults
// rather than erroring, matching the forgiving catalog contract.
func HandleFilterByPrice(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		min := 0
		max := -1 // unbounded

		if v := r.URL.Query().Get("min"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				min = n
			}
		}
		if v := r.URL.Query().Get("max"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				max = n
			}
		}

		render.JSON(w, r, cat.FilterByPrice(min, max))
	}
}
