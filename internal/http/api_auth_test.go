package handlers_test

import (
	"net/http"
	"testing"
)

func TestAPISignupTokenRefresh(t *testing.T) {
	app := apiApp(t)

	body := map[string]string{
		"username":   "meera",
		"email":      "meera@jeetech.test",
		"first_name": "Meera",
		"last_name":  "Pillai",
		"password":   "Passw0rd!",
	}
	resp, err := app.Test(jsonReq("POST", "/api/signup", "", body))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on signup, got %d", resp.StatusCode)
	}

	// Same username again -> validation error naming the field.
	resp, err = app.Test(jsonReq("POST", "/api/signup", "", body))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate signup, got %d", resp.StatusCode)
	}
	var dup struct {
		Field string `json:"field"`
	}
	decode(t, resp, &dup)
	if dup.Field != "username" {
		t.Fatalf("expected username conflict, got %q", dup.Field)
	}

	// Weak password never reaches the service.
	weak := map[string]string{
		"username":   "weak",
		"email":      "weak@jeetech.test",
		"first_name": "We",
		"last_name":  "Ak",
		"password":   "alllowercase1",
	}
	resp, err = app.Test(jsonReq("POST", "/api/signup", "", weak))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d", resp.StatusCode)
	}

	// Token with bad creds -> 401.
	resp, err = app.Test(jsonReq("POST", "/api/token", "", map[string]string{
		"username": "meera", "password": "wrong",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", resp.StatusCode)
	}

	// Token with good creds, then refresh.
	resp, err = app.Test(jsonReq("POST", "/api/token", "", map[string]string{
		"username": "meera", "password": "Passw0rd!",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on token, got %d", resp.StatusCode)
	}
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, resp, &pair)
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatal("empty token pair")
	}

	resp, err = app.Test(jsonReq("POST", "/api/token/refresh", "", map[string]string{
		"refresh": pair.Refresh,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on refresh, got %d", resp.StatusCode)
	}

	// An access token is not a refresh token.
	resp, err = app.Test(jsonReq("POST", "/api/token/refresh", "", map[string]string{
		"refresh": pair.Access,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 refreshing with access token, got %d", resp.StatusCode)
	}
}

func TestAPIBearerRequired(t *testing.T) {
	app := apiApp(t)

	resp, err := app.Test(jsonReq("GET", "/api/cart", "", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("GET", "/api/cart", "not-a-token", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", resp.StatusCode)
	}

	// Public catalog stays open.
	resp, err = app.Test(jsonReq("GET", "/api/products", "", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on public products, got %d", resp.StatusCode)
	}
}
