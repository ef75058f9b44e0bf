package catalog

import (
	"fmt"
	"time"

	"toyshop/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func category(id int64, parent *int64, order int, name string) models.Category {
	return models.Category{ID: id, ParentID: parent, Name: name, Order: order, Active: true}
}

func product(id int64, name string, price float64) models.Product {
	return models.Product{
		ID:        id,
		Name:      name,
		Price:     models.NewPrice(price),
		AgeGroup:  "3-5y",
		Gender:    models.GenderUnisex,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour),
	}
}

// sampleProducts is a small mixed catalog used across filter, sort and session tests.
func sampleProducts() []models.Product {
	lego := strPtr("Lego")
	mattel := strPtr("Mattel")
	return []models.Product{
		{ID: 1, Name: "Fire Truck", NameHe: strPtr("כבאית"), Price: "120", Brand: lego, AgeGroup: "3-5y",
			Gender: models.GenderBoys, Category: models.CategoryRef{Name: "Vehicles", NameHe: "רכבים"},
			Description: "Red truck with ladder", Rating: 4.5, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Doll House", NameHe: strPtr("בית בובות"), Price: "250", Brand: mattel, AgeGroup: "5-8y",
			Gender: models.GenderGirls, Category: models.CategoryRef{Name: "Dolls"},
			Description: "Three floors", Rating: 4.8, CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Name: "Puzzle 100", Price: "35.5", Brand: nil, AgeGroup: "5-8y",
			Gender: models.GenderUnisex, Category: models.CategoryRef{Name: "Puzzles", NameHe: "פאזלים"},
			Description: "One hundred pieces", Rating: 3.9, CreatedAt: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)},
		{ID: 4, Name: "Rattle", Price: "15", Brand: strPtr("Fisher"), AgeGroup: "0-6m",
			Gender: models.GenderUnisex, Category: models.CategoryRef{Name: "Baby"},
			Rating: 4.1, CreatedAt: time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC)},
		{ID: 5, Name: "Race Car Set", Price: "call us", Brand: lego, AgeGroup: "8-12y",
			Gender: models.GenderBoys, Category: models.CategoryRef{Name: "Vehicles"},
			Rating: 4.0, CreatedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 6, Name: "Craft Kit", Price: "42", Brand: mattel, AgeGroup: "8-12y",
			Gender: models.GenderCode("kids"), Category: models.CategoryRef{Name: "Arts & Crafts"},
			Rating: 3.2, CreatedAt: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)},
	}
}

func productIDs(ps []models.Product) []int64 {
	ids := make([]int64, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func categoryIDs(cs []models.Category) []int64 {
	ids := make([]int64, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

func nodeLabels(nodes []CategoryNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

func manyProducts(n int) []models.Product {
	ps := make([]models.Product, n)
	for i := range ps {
		ps[i] = product(int64(i+1), fmt.Sprintf("Item %03d", i+1), float64(10+i))
	}
	return ps
}
