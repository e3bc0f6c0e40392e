package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/application/usecase/product"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/internal/infra/web/middleware"
)

type productOutput struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	Price      string `json:"price"`
}

type Product struct {
	CreateProductUseCase product.CreateUseCase
	UpdateProductUseCase product.UpdateUseCase
	DeleteProductUseCase product.DeleteUseCase
	Products             outbound.ProductRepository
}

func NewProductHandler(
	create product.CreateUseCase,
	update product.UpdateUseCase,
	del product.DeleteUseCase,
	products outbound.ProductRepository,
) *Product {
	return &Product{
		CreateProductUseCase: create,
		UpdateProductUseCase: update,
		DeleteProductUseCase: del,
		Products:             products,
	}
}

// Create adds a catalog entry. Admin only; the use case enforces the role.
func (h *Product) Create(w http.ResponseWriter, r *http.Request) {
	var dto product.CreateInput

	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, entity.NewValidationError("malformed request body"))
		return
	}
	dto.ActingUserID = middleware.ActorFromContext(r.Context())

	output, err := h.CreateProductUseCase.Execute(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

// Update applies a partial edit; absent fields keep their current value.
func (h *Product) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var dto product.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, entity.NewValidationError("malformed request body"))
		return
	}
	dto.ProductID = id
	dto.ActingUserID = middleware.ActorFromContext(r.Context())

	output, err := h.UpdateProductUseCase.Execute(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *Product) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	err = h.DeleteProductUseCase.Execute(r.Context(), product.DeleteInput{
		ProductID:    id,
		ActingUserID: middleware.ActorFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List filters the catalog by optional category and name search.
func (h *Product) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	products, err := h.Products.List(r.Context(), category, search)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]productOutput, len(products))
	for i, p := range products {
		out[i] = toProductOutput(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Product) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.Products.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductOutput(product))
}

func (h *Product) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Products.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func toProductOutput(p *entity.Product) productOutput {
	return productOutput{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		PriceCents: int64(p.Price),
		Price:      p.Price.String(),
	}
}
