package cart

import (
	"encoding/json"
	"net/http"

	cartsvc "shopmart/cart"
	"shopmart/core"
	"shopmart/middleware"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// addRequest uses pointer fields so a missing or non-integer value is
// distinguishable from zero; presence is what the validator's
// MissingOrWrongType rule keys on.
type addRequest struct {
	ProductID *int `json:"productId"`
	Qty       *int `json:"qty"`
}

type removeRequest struct {
	ProductID *int `json:"productId"`
}

type cartResponse struct {
	OK   bool      `json:"ok"`
	Cart core.Cart `json:"cart"`
}

type totalResponse struct {
	Total     int    `json:"total"`
	ItemCount int    `json:"itemCount"`
	Currency  string `json:"currency"`
}

func sessionOr500(w http.ResponseWriter, r *http.Request) *core.Session {
	sess := middleware.SessionFrom(r.Context())
	if sess == nil {
		logrus.Error("Cart handler reached without a bound session")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "No session"})
	}
	return sess
}

// HandleGet returns the session's cart, hydrating it on first read.
func HandleGet(svc *cartsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionOr500(w, r)
		if sess == nil {
			return
		}
		render.JSON(w, r, svc.Get(r.Context(), sess.UserID))
	}
}

// HandleTotal returns the cart's price total and item count.
func HandleTotal(svc *cartsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionOr500(w, r)
		if sess == nil {
			return
		}
		total := svc.Total(r.Context(), sess.UserID)
		render.JSON(w, r, totalResponse{
			Total:     total.Total,
			ItemCount: total.ItemCount,
			Currency:  "USD",
		})
	}
}

// HandleAdd validates and applies an add request. Validation failures come
// back as 400 with the rejection message and an unchanged cart.
func HandleAdd(svc *cartsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionOr500(w, r)
		if sess == nil {
			return
		}

		var req addRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]any{"ok": false, "error": "productId and qty are required and must be integers"})
			return
		}
		defer r.Body.Close()

		productID, qty := 0, 0
		if req.ProductID != nil {
			productID = *req.ProductID
		}
		if req.Qty != nil {
			qty = *req.Qty
		}

		cart, rej := svc.Add(r.Context(), sess.UserID, productID, qty, req.ProductID != nil, req.Qty != nil)
		if rej != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]any{"ok": false, "error": rej.Message, "reason": string(rej.Reason)})
			return
		}

		render.JSON(w, r, cartResponse{OK: true, Cart: cart})
	}
}

// HandleRemove removes a product from the cart. Removing a product that is
// not in the cart is a success returning the unchanged cart.
func HandleRemove(svc *cartsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionOr500(w, r)
		if sess == nil {
			return
		}

		var req removeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]any{"ok": false, "error": "productId is required and must be an integer"})
			return
		}
		defer r.Body.Close()

		productID := 0
		if req.ProductID != nil {
			productID = *req.ProductID
		}
		if rej := cartsvc.ValidateRemove(productID, req.ProductID != nil); rej != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]any{"ok": false, "error": rej.Message, "reason": string(rej.Reason)})
			return
		}

		cart := svc.Remove(r.Context(), sess.UserID, productID)
		render.JSON(w, r, cartResponse{OK: true, Cart: cart})
	}
}

// HandleClear empties the cart.
func HandleClear(svc *cartsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionOr500(w, r)
		if sess == nil {
			return
		}
		render.JSON(w, r, cartResponse{OK: true, Cart: svc.Clear(r.Context(), sess.UserID)})
	}
}
