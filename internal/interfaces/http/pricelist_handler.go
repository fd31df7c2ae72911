package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jeyostore/pos-api/internal/application/catalog"
	"github.com/jeyostore/pos-api/internal/application/dto"
)

// PriceListHandler serves the public read-only price list. No auth: this is
// the storefront page customers browse.
type PriceListHandler struct {
	uc *catalog.CatalogUseCase
}

// NewPriceListHandler builds the handler.
func NewPriceListHandler(uc *catalog.CatalogUseCase) *PriceListHandler {
	return &PriceListHandler{uc: uc}
}

// Get godoc
// @Summary      Public price list (visible products only)
// @Tags         public
// @Produce      json
// @Param        q     query  string  false  "Keyword filter on product name"
// @Param        sort  query  string  false  "Price sort"  Enums(asc, desc)
// @Success      200   {object}  dto.PriceListResponse
// @Router       /api/public/price-list [get]
func (h *PriceListHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.PriceList(c.Context(), c.Query("q"), c.Query("sort"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
