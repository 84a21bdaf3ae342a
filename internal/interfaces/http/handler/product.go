package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/shopsync/backend/internal/application/catalog"
	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
)

// ProductHandler handles catalog product endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU         string   `json:"sku" binding:"required,min=1,max=50"`
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Description string   `json:"description"`
	CategoryID  *string  `json:"category_id" binding:"omitempty,uuid"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Currency    string   `json:"currency" binding:"omitempty,len=3"`
	ImageURLs   []string `json:"image_urls" binding:"omitempty,dive,url"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Description string   `json:"description"`
	CategoryID  *string  `json:"category_id" binding:"omitempty,uuid"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	ImageURLs   []string `json:"image_urls" binding:"omitempty,dive,url"`
}

// BundleComponentRequest is one component line of a bundle request
type BundleComponentRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// MakeBundleRequest represents a request to turn a product into a bundle
type MakeBundleRequest struct {
	PricingType        string                   `json:"pricing_type" binding:"required,oneof=fixed calculated"`
	DiscountPercentage float64                  `json:"discount_percentage" binding:"omitempty,min=0,max=100"`
	Components         []BundleComponentRequest `json:"components" binding:"required,min=1,dive"`
}

// ProductResponse represents a product in the response
type ProductResponse struct {
	ID                       string    `json:"id"`
	SKU                      string    `json:"sku"`
	Name                     string    `json:"name"`
	Description              string    `json:"description,omitempty"`
	CategoryID               *string   `json:"category_id,omitempty"`
	Price                    string    `json:"price"`
	Currency                 string    `json:"currency"`
	ImageURLs                []string  `json:"image_urls,omitempty"`
	IsBundle                 bool      `json:"is_bundle"`
	BundlePricingType        string    `json:"bundle_pricing_type,omitempty"`
	BundleDiscountPercentage string    `json:"bundle_discount_percentage,omitempty"`
	Status                   string    `json:"status"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func toProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Currency:    p.Currency,
		ImageURLs:   p.ImageURLs,
		IsBundle:    p.IsBundle,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.IsBundle {
		resp.BundlePricingType = string(p.BundlePricingType)
		resp.BundleDiscountPercentage = p.BundleDiscountPercentage.String()
	}
	return resp
}

// Create stores a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.CreateProductRequest{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		Currency:    req.Currency,
		ImageURLs:   req.ImageURLs,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		appReq.CategoryID = &categoryID
	}

	product, err := h.products.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toProductResponse(product))
}

// GetByID returns one product
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.products.Get(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// List returns products with pagination
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	products, err := h.products.List(c.Request.Context(), req.PageSize, req.Offset())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = toProductResponse(&products[i])
	}
	h.SuccessWithMeta(c, responses, req.Page, req.PageSize, len(responses))
}

// Update edits a product
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.UpdateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		appReq.CategoryID = &categoryID
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		appReq.Price = &price
	}

	product, err := h.products.Update(c.Request.Context(), productID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// MakeBundle turns a product into a bundle with the given components
func (h *ProductHandler) MakeBundle(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req MakeBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.BundleRequest{
		PricingType:        catalog.BundlePricingType(req.PricingType),
		DiscountPercentage: decimal.NewFromFloat(req.DiscountPercentage),
		Components:         make([]catalogapp.BundleComponentRequest, len(req.Components)),
	}
	for i, line := range req.Components {
		componentID, err := uuid.Parse(line.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid component product ID format")
			return
		}
		appReq.Components[i] = catalogapp.BundleComponentRequest{
			ProductID: componentID,
			Quantity:  line.Quantity,
		}
	}

	product, err := h.products.MakeBundle(c.Request.Context(), productID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.products.Delete(c.Request.Context(), productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
