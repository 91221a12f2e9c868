package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ThomasMorgana/Webservice/internal/model"
)

func TestCreateCarOwnerComesFromToken(t *testing.T) {
	cars := newFakeCarStore()
	h := NewCarHandler(cars)

	// The body names somebody else; the claim wins.
	c, rec := newTestContext(t, http.MethodPost, "/cars",
		`{"model":"Model 3","brand":"Tesla","year":2022,"userId":"user-other"}`)
	c.Set("user_id", "user-1")
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created model.Car
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.UserID != "user-1" {
		t.Errorf("owner = %q, want the authenticated caller", created.UserID)
	}
	if created.ID == 0 {
		t.Error("created car has no id")
	}
}

func TestCreateCarWithoutIdentityIs401(t *testing.T) {
	h := NewCarHandler(newFakeCarStore())

	c, rec := newTestContext(t, http.MethodPost, "/cars",
		`{"model":"Model 3","brand":"Tesla","year":2022}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreateCarValidatesBody(t *testing.T) {
	h := NewCarHandler(newFakeCarStore())

	cases := []struct {
		name string
		body string
	}{
		{"missing brand", `{"model":"Clio","year":2001}`},
		{"year before 1900", `{"model":"Clio","brand":"Renault","year":1850}`},
		{"empty body", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/cars", tc.body)
			c.Set("user_id", "user-1")
			if err := h.Create(c); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestUpdateCarPatchesOnlyProvidedFields(t *testing.T) {
	cars := newFakeCarStore()
	garage := uint64(7)
	seed := model.Car{Model: "Clio", Brand: "Renault", Year: 2001, UserID: "user-1", GarageID: &garage}
	if err := cars.Create(context.Background(), &seed); err != nil {
		t.Fatal(err)
	}
	h := NewCarHandler(cars)

	c, rec := newTestContext(t, http.MethodPatch, "/cars/1", `{"year":2005}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", "user-1")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	got, err := cars.GetByID(context.Background(), seed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Year != 2005 {
		t.Errorf("year = %d, want 2005", got.Year)
	}
	if got.Model != "Clio" || got.Brand != "Renault" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.GarageID == nil || *got.GarageID != garage {
		t.Error("garage assignment lost on unrelated patch")
	}
}

func TestUpdateCarUnparks(t *testing.T) {
	cars := newFakeCarStore()
	garage := uint64(7)
	seed := model.Car{Model: "Clio", Brand: "Renault", Year: 2001, UserID: "user-1", GarageID: &garage}
	if err := cars.Create(context.Background(), &seed); err != nil {
		t.Fatal(err)
	}
	h := NewCarHandler(cars)

	c, rec := newTestContext(t, http.MethodPatch, "/cars/1", `{"unpark":true}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", "user-1")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got, _ := cars.GetByID(context.Background(), seed.ID)
	if got.GarageID != nil {
		t.Error("car still parked after unpark")
	}
}

func TestUpdateCarForeignOwnerIsForbidden(t *testing.T) {
	cars := newFakeCarStore()
	seed := model.Car{Model: "Clio", Brand: "Renault", Year: 2001, UserID: "user-1"}
	if err := cars.Create(context.Background(), &seed); err != nil {
		t.Fatal(err)
	}
	h := NewCarHandler(cars)

	c, rec := newTestContext(t, http.MethodPatch, "/cars/1", `{"year":2005}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", "user-2")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	// ADMIN overrides ownership.
	c, rec = newTestContext(t, http.MethodPatch, "/cars/1", `{"year":2005}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", "user-2")
	c.Set("role", model.RoleAdmin)
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("admin patch status = %d", rec.Code)
	}
}

func TestGetCarNotFound(t *testing.T) {
	h := NewCarHandler(newFakeCarStore())

	c, rec := newTestContext(t, http.MethodGet, "/cars/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListCarsRejectsMalformedPagination(t *testing.T) {
	h := NewCarHandler(newFakeCarStore())

	for _, query := range []string{"?page=-1", "?step=0", "?page=abc", "?step=-5"} {
		c, rec := newTestContext(t, http.MethodGet, "/cars"+query, "")
		if err := h.List(c); err != nil {
			t.Fatalf("List: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q status = %d, want 400", query, rec.Code)
		}
	}
}

func TestDeleteCarRemovesRow(t *testing.T) {
	cars := newFakeCarStore()
	seed := model.Car{Model: "Clio", Brand: "Renault", Year: 2001, UserID: "user-1"}
	if err := cars.Create(context.Background(), &seed); err != nil {
		t.Fatal(err)
	}
	h := NewCarHandler(cars)

	c, rec := newTestContext(t, http.MethodDelete, "/cars/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", "user-1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, err := cars.GetByID(context.Background(), seed.ID); err == nil {
		t.Error("car still present after delete")
	}
}
