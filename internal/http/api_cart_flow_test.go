package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestAPICartFlow(t *testing.T) {
	app := apiApp(t)
	bearer := bearerFor(t, app, "asha")

	// First add creates the line.
	resp, err := app.Test(jsonReq("POST", "/api/cart", bearer, map[string]any{
		"product_id": "prod-earbuds", "quantity": 2,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on first add, got %d", resp.StatusCode)
	}
	var item struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	decode(t, resp, &item)
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}

	// Second add increments the same line.
	resp, err = app.Test(jsonReq("POST", "/api/cart", bearer, map[string]any{
		"product_id": "prod-earbuds", "quantity": 3,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on repeat add, got %d", resp.StatusCode)
	}
	var again struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	decode(t, resp, &again)
	if again.ID != item.ID || again.Quantity != 5 {
		t.Fatalf("expected same line at quantity 5, got %+v", again)
	}

	// Out-of-stock product is rejected and reports availability.
	resp, err = app.Test(jsonReq("POST", "/api/cart", bearer, map[string]any{
		"product_id": "prod-planter", "quantity": 1,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for out of stock, got %d", resp.StatusCode)
	}
	var stockErr struct {
		Available int `json:"available"`
	}
	decode(t, resp, &stockErr)
	if stockErr.Available != 0 {
		t.Fatalf("expected available 0, got %d", stockErr.Available)
	}

	// Set overwrites rather than increments.
	resp, err = app.Test(jsonReq("PUT", "/api/cart/"+item.ID, bearer, map[string]any{
		"quantity": 4,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", resp.StatusCode)
	}
	decode(t, resp, &again)
	if again.Quantity != 4 {
		t.Fatalf("expected quantity 4 after set, got %d", again.Quantity)
	}

	// Checkout link carries the order summary.
	resp, err = app.Test(jsonReq("GET", "/api/checkout/whatsapp", bearer, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on checkout, got %d", resp.StatusCode)
	}
	var checkout struct {
		Link string `json:"link"`
	}
	decode(t, resp, &checkout)
	if !strings.HasPrefix(checkout.Link, "https://wa.me/919344998602?text=") {
		t.Fatalf("unexpected checkout link: %q", checkout.Link)
	}
	if !strings.Contains(checkout.Link, "Wireless+Earbuds") {
		t.Fatalf("link missing product name: %q", checkout.Link)
	}

	// Remove, then checkout with an empty cart fails.
	resp, err = app.Test(jsonReq("DELETE", "/api/cart/"+item.ID, bearer, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", resp.StatusCode)
	}
	resp, err = app.Test(jsonReq("GET", "/api/checkout/whatsapp", bearer, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 on empty cart checkout, got %d", resp.StatusCode)
	}
}

func TestAPIWishlistFlow(t *testing.T) {
	app := apiApp(t)
	bearer := bearerFor(t, app, "rahul")

	// Toggle on.
	resp, err := app.Test(jsonReq("POST", "/api/wishlist", bearer, map[string]any{
		"product_id": "prod-smartwatch",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var tog struct {
		Saved bool `json:"saved"`
	}
	decode(t, resp, &tog)
	if !tog.Saved {
		t.Fatal("expected first toggle to save")
	}

	// Toggle off.
	resp, err = app.Test(jsonReq("POST", "/api/wishlist", bearer, map[string]any{
		"product_id": "prod-smartwatch",
	}))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &tog)
	if tog.Saved {
		t.Fatal("expected second toggle to unsave")
	}

	// Save again, then move to cart.
	if _, err := app.Test(jsonReq("POST", "/api/wishlist", bearer, map[string]any{
		"product_id": "prod-smartwatch",
	})); err != nil {
		t.Fatal(err)
	}
	resp, err = app.Test(jsonReq("POST", "/api/wishlist/move_to_cart", bearer, map[string]any{
		"product_id": "prod-smartwatch",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on move, got %d", resp.StatusCode)
	}
	var item struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	decode(t, resp, &item)
	if item.ProductID != "prod-smartwatch" || item.Quantity != 1 {
		t.Fatalf("expected smartwatch x1 in cart, got %+v", item)
	}

	// Wishlist is empty after the move.
	resp, err = app.Test(jsonReq("GET", "/api/wishlist", bearer, nil))
	if err != nil {
		t.Fatal(err)
	}
	var list struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	decode(t, resp, &list)
	if len(list.Items) != 0 {
		t.Fatalf("expected empty wishlist, got %d items", len(list.Items))
	}

	// Unknown product -> 404.
	resp, err = app.Test(jsonReq("POST", "/api/wishlist", bearer, map[string]any{
		"product_id": "prod-nope",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", resp.StatusCode)
	}
}

func TestAPIProductDetailAndReviews(t *testing.T) {
	app := apiApp(t)
	bearer := bearerFor(t, app, "asha")

	// Slug and id both resolve.
	for _, key := range []string{"wireless-earbuds", "prod-earbuds"} {
		resp, err := app.Test(jsonReq("GET", "/api/products/"+key, "", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 for %q, got %d", key, resp.StatusCode)
		}
	}

	resp, err := app.Test(jsonReq("POST", "/api/products/wireless-earbuds/reviews", bearer, map[string]any{
		"rating": 5, "comment": "Great sound for the price.",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on review, got %d", resp.StatusCode)
	}

	// One review per user per product.
	resp, err = app.Test(jsonReq("POST", "/api/products/wireless-earbuds/reviews", bearer, map[string]any{
		"rating": 1, "comment": "Changed my mind.",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate review, got %d", resp.StatusCode)
	}

	var detail struct {
		AverageRating float64 `json:"average_rating"`
		Reviews       []struct {
			Username string `json:"username"`
		} `json:"reviews"`
	}
	resp, err = app.Test(jsonReq("GET", "/api/products/wireless-earbuds", "", nil))
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &detail)
	if len(detail.Reviews) != 1 || detail.Reviews[0].Username != "asha" {
		t.Fatalf("unexpected reviews: %+v", detail.Reviews)
	}
	if detail.AverageRating != 5 {
		t.Fatalf("expected average 5, got %v", detail.AverageRating)
	}
}
