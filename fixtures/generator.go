// Package fixtures generates the random request payloads that the contract tests send.
//
// Every value is valid for the endpoint it is meant for; numeric ranges are kept well inside
// what the API accepts so that a rejection always means a contract problem rather than an
// unlucky draw.
package fixtures

import (
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	productCodeLength = 9
	minPrice          = 1000
	maxPrice          = 10000
	minStock          = 1
	maxStock          = 99
)

// Registration is the body of POST /registration.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the body of POST /authentications.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Category is the body of POST /categories.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product is the body of POST /products and PUT /products/{id}. The API takes the numeric
// fields as decimal strings.
type Product struct {
	CategoryID string `json:"category_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Cost       string `json:"cost"`
	Stock      string `json:"stock"`
}

// Generator produces payloads from a seeded source, so a run can be repeated exactly.
// It is not safe for concurrent use.
type Generator struct {
	seed  int64
	faker *gofakeit.Faker
}

func New(seed int64) *Generator {
	return &Generator{seed: seed, faker: gofakeit.New(seed)}
}

func (g *Generator) Seed() int64 {
	return g.seed
}

func (g *Generator) Registration() Registration {
	return Registration{
		Name:     g.faker.FirstName(),
		Email:    strings.ToLower(g.faker.Email()),
		Password: g.faker.Password(true, true, true, false, false, 12),
	}
}

func (g *Generator) Category() Category {
	return Category{
		Name:        g.faker.ProductName(),
		Description: g.faker.Sentence(8),
	}
}

func (g *Generator) Product(categoryID string) Product {
	return Product{
		CategoryID: categoryID,
		Code:       g.ProductCode(),
		Name:       g.faker.ProductName(),
		Price:      strconv.Itoa(g.faker.Number(minPrice, maxPrice)),
		Cost:       strconv.Itoa(g.faker.Number(minPrice, maxPrice)),
		Stock:      strconv.Itoa(g.faker.Number(minStock, maxStock)),
	}
}

// ProductCode returns 9 uppercase alphanumeric characters.
func (g *Generator) ProductCode() string {
	return strings.ToUpper(g.faker.Password(false, true, true, false, false, productCodeLength))
}

// AsMap returns the JSON field names and values of a payload, for comparing what was sent
// against what the API echoes back.
func (r Registration) AsMap() map[string]string {
	return map[string]string{"name": r.Name, "email": r.Email, "password": r.Password}
}

func (r Registration) Credentials() Credentials {
	return Credentials{Email: r.Email, Password: r.Password}
}

func (c Category) AsMap() map[string]string {
	return map[string]string{"name": c.Name, "description": c.Description}
}

func (p Product) AsMap() map[string]string {
	return map[string]string{
		"category_id": p.CategoryID,
		"code":        p.Code,
		"name":        p.Name,
		"price":       p.Price,
		"cost":        p.Cost,
		"stock":       p.Stock,
	}
}
