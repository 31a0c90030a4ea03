package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lojaweb/catalog/internal/cache"
	"github.com/lojaweb/catalog/internal/domain/product"
	"github.com/lojaweb/catalog/internal/observability"
	"github.com/lojaweb/catalog/internal/validation"
)

// ProductStore is implemented by both the memory and postgres repos.
type ProductStore interface {
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id int64) (product.Product, error)
	Create(ctx context.Context, in product.Input) (product.Product, error)
	Update(ctx context.Context, id int64, in product.Input) (product.Product, error)
	Delete(ctx context.Context, id int64) error
}

const productsListKey = "produtos:list:v1"

func productKey(id int64) string {
	return "produtos:item:v1:" + strconv.FormatInt(id, 10)
}

type ProductsHandler struct {
	repo  ProductStore
	cache cache.Cache
	prom  *observability.Prom
}

func NewProductsHandler(repo ProductStore) *ProductsHandler {
	return NewProductsHandlerWithCache(repo, cache.Nop{}, nil)
}

func NewProductsHandlerWithCache(repo ProductStore, c cache.Cache, prom *observability.Prom) *ProductsHandler {
	if c == nil {
		c = cache.Nop{}
	}
	return &ProductsHandler{repo: repo, cache: c, prom: prom}
}

func (h *ProductsHandler) ListProducts(ctx *gin.Context) {
	rctx := ctx.Request.Context()

	if body, ok := h.cache.Get(rctx, productsListKey); ok {
		h.prom.ObserveCache(true)
		RespondJSONBytesWithETag(ctx, http.StatusOK, body)
		return
	}
	h.prom.ObserveCache(false)

	products, err := h.repo.List(rctx)
	if err != nil {
		RespondStorage(ctx, "Could not list products", err)
		return
	}

	body, err := json.Marshal(products)
	if err != nil {
		RespondInternal(ctx, "Could not encode products")
		return
	}

	h.cache.Set(rctx, productsListKey, body)
	RespondJSONBytesWithETag(ctx, http.StatusOK, body)
}

func (h *ProductsHandler) GetProductByID(ctx *gin.Context) {
	id, ok := productID(ctx)
	if !ok {
		return
	}

	rctx := ctx.Request.Context()
	key := productKey(id)

	if body, ok := h.cache.Get(rctx, key); ok {
		h.prom.ObserveCache(true)
		RespondJSONBytesWithETag(ctx, http.StatusOK, body)
		return
	}
	h.prom.ObserveCache(false)

	p, err := h.repo.GetByID(rctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}
		RespondStorage(ctx, "Could not fetch product", err)
		return
	}

	body, err := json.Marshal(p)
	if err != nil {
		RespondInternal(ctx, "Could not encode product")
		return
	}

	h.cache.Set(rctx, key, body)
	RespondJSONBytesWithETag(ctx, http.StatusOK, body)
}

func (h *ProductsHandler) CreateProduct(ctx *gin.Context) {
	var in product.Input

	if !BindJSON(ctx, &in) {
		return
	}

	if errs := validation.ValidateProduct(in); len(errs) > 0 {
		RespondValidation(ctx, errs)
		return
	}

	p, err := h.repo.Create(ctx.Request.Context(), in)
	if err != nil {
		RespondStorage(ctx, "Could not create product", err)
		return
	}

	h.invalidate(ctx.Request.Context(), p.ID)
	ctx.Header("Location", "/produtos/"+strconv.FormatInt(p.ID, 10))
	ctx.JSON(http.StatusCreated, p)
}

func (h *ProductsHandler) UpdateProduct(ctx *gin.Context) {
	id, ok := productID(ctx)
	if !ok {
		return
	}

	var in product.Input

	if !BindJSON(ctx, &in) {
		return
	}

	if errs := validation.ValidateProduct(in); len(errs) > 0 {
		RespondValidation(ctx, errs)
		return
	}

	p, err := h.repo.Update(ctx.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}
		RespondStorage(ctx, "Could not update product", err)
		return
	}

	h.invalidate(ctx.Request.Context(), id)
	ctx.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) DeleteProduct(ctx *gin.Context) {
	id, ok := productID(ctx)
	if !ok {
		return
	}

	err := h.repo.Delete(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}
		RespondStorage(ctx, "Could not delete product", err)
		return
	}

	h.invalidate(ctx.Request.Context(), id)
	ctx.Status(http.StatusNoContent)
}

func (h *ProductsHandler) invalidate(ctx context.Context, id int64) {
	h.cache.Delete(ctx, productsListKey, productKey(id))
}

func productID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondBadRequest(ctx, "Product id must be a positive integer", gin.H{"id": ctx.Param("id")})
		return 0, false
	}
	return id, true
}
