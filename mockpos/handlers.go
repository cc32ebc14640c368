package mockpos

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const pageSize = 10

type registrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type productRequest struct {
	CategoryID string `json:"category_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Cost       string `json:"cost"`
	Stock      string `json:"stock"`
}

type pageMeta struct {
	TotalPage int `json:"totalPage"`
	Total     int `json:"total"`
	Page      int `json:"page"`
}

func decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func firstPage(total int) pageMeta {
	return pageMeta{TotalPage: (total + pageSize - 1) / pageSize, Total: total, Page: 1}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeFail(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}
	u, ok := s.store.addUser(req.Name, req.Email, req.Password)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Email is already registered")
		return
	}
	writeSuccess(w, http.StatusCreated, "User created successfully",
		map[string]string{"name": u.Name, "email": u.Email})
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if !decode(w, r, &req) {
		return
	}
	u, ok := s.store.findUser(req.Email, req.Password)
	if !ok {
		writeFail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	access, err := s.issueToken(u, "access")
	if err != nil {
		writeFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	refresh, err := s.issueToken(u, "refresh")
	if err != nil {
		writeFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeSuccess(w, http.StatusCreated, "Authentication success", map[string]interface{}{
		"user":         map[string]string{"id": u.ID, "name": u.Name, "email": u.Email},
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeFail(w, http.StatusBadRequest, "name is required")
		return
	}
	c := s.store.addCategory(req.Name, req.Description)
	writeSuccess(w, http.StatusCreated, "Category created successfully",
		map[string]string{"categoryId": c.ID, "name": c.Name})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	all := s.store.listCategories()
	items := make([]map[string]interface{}, 0, pageSize)
	for i, c := range all {
		if i == pageSize {
			break
		}
		var description interface{}
		if c.Description != "" {
			description = c.Description
		}
		items = append(items, map[string]interface{}{"id": c.ID, "name": c.Name, "description": description})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"categories": items, "meta": firstPage(len(all))},
	})
}

func (s *Server) parseProduct(w http.ResponseWriter, r *http.Request) (product, bool) {
	var req productRequest
	if !decode(w, r, &req) {
		return product{}, false
	}
	if _, ok := s.store.getCategory(req.CategoryID); !ok {
		writeFail(w, http.StatusBadRequest, "Category not found")
		return product{}, false
	}
	p := product{CategoryID: req.CategoryID, Code: req.Code, Name: req.Name}
	for _, f := range []struct {
		value string
		dest  *int
	}{{req.Price, &p.Price}, {req.Cost, &p.Cost}, {req.Stock, &p.Stock}} {
		n, err := strconv.Atoi(f.value)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "price, cost, and stock must be integers")
			return product{}, false
		}
		*f.dest = n
	}
	if p.Code == "" || p.Name == "" {
		writeFail(w, http.StatusBadRequest, "code and name are required")
		return product{}, false
	}
	return p, true
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parseProduct(w, r)
	if !ok {
		return
	}
	p = s.store.addProduct(p)
	writeSuccess(w, http.StatusCreated, "Product created successfully",
		map[string]string{"productId": p.ID, "name": p.Name})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	all := s.store.listProducts()
	items := make([]map[string]interface{}, 0, pageSize)
	for i, p := range all {
		if i == pageSize {
			break
		}
		c, _ := s.store.getCategory(p.CategoryID)
		items = append(items, map[string]interface{}{
			"id":            p.ID,
			"code":          p.Code,
			"name":          p.Name,
			"description":   nil,
			"price":         p.Price,
			"cost":          p.Cost,
			"stock":         p.Stock,
			"sale":          0,
			"purchase":      0,
			"category_name": c.Name,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"products": items, "meta": firstPage(len(all))},
	})
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parseProduct(w, r)
	if !ok {
		return
	}
	p, ok = s.store.updateProduct(chi.URLParam(r, "id"), p)
	if !ok {
		writeFail(w, http.StatusNotFound, "Product not found")
		return
	}
	writeSuccess(w, http.StatusOK, "Product updated successfully", map[string]string{"name": p.Name})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if !s.store.deleteProduct(chi.URLParam(r, "id")) {
		writeFail(w, http.StatusNotFound, "Product not found")
		return
	}
	writeSuccess(w, http.StatusOK, "Product deleted successfully", nil)
}
