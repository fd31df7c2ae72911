package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jeyostore/pos-api/internal/application/dto"
	"github.com/jeyostore/pos-api/internal/application/receipt"
	"github.com/jeyostore/pos-api/internal/application/sales"
	"github.com/jeyostore/pos-api/internal/domain"
)

// SaleHandler handles ledger requests (protected): recording, corrections,
// reversals, receipts and the drift report.
type SaleHandler struct {
	uc        *sales.SaleUseCase
	formatter *receipt.Formatter
	pdfGen    sales.ReceiptPDFGenerator
}

// NewSaleHandler builds the handler.
func NewSaleHandler(uc *sales.SaleUseCase, formatter *receipt.Formatter, pdfGen sales.ReceiptPDFGenerator) *SaleHandler {
	return &SaleHandler{uc: uc, formatter: formatter, pdfGen: pdfGen}
}

// Record godoc
// @Summary      Record a sale
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Sale data"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.RecordSale(c.Context(), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required and qty must be positive"})
		case domain.ErrProductNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
		case domain.ErrProductHidden:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "PRODUCT_HIDDEN", Message: "hidden products cannot be sold"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "not enough stock for the requested quantity"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List ledger entries, newest first
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        window         query  string  false  "Time window"  Enums(today, 7d, month, year)
// @Param        customer_type  query  string  false  "Customer type filter"  Enums(retail, reseller)
// @Param        category       query  string  false  "Category snapshot filter"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("window"), c.Query("customer_type"), c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Correct display fields on a ledger entry
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Sale id"
// @Param        body  body  dto.UpdateSaleRequest  true  "Fields to correct"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [patch]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.UpdateSale(c.Context(), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no correctable fields, or customer_type is not retail/reseller"})
		case domain.ErrSaleNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sale not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Reverse godoc
// @Summary      Reverse a sale: restore stock and remove the ledger entry
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Sale id"
// @Success      204  "No Content"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Reverse(c *fiber.Ctx) error {
	if err := h.uc.ReverseSale(c.Context(), c.Params("id")); err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id is required"})
		case domain.ErrSaleNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sale not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt godoc
// @Summary      WhatsApp receipt text and wa.me link for a sale
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Sale id"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrSaleNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sale not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(h.formatter.Build(sale))
}

// ReceiptPDF godoc
// @Summary      Printable PDF receipt for a sale
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Sale id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt/pdf [get]
func (h *SaleHandler) ReceiptPDF(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrSaleNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sale not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	pdfBytes, err := h.pdfGen.GenerateReceiptPDF(c.Context(), sale)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt-`+sale.ID+`.pdf"`)
	return c.Send(pdfBytes)
}

// Drift godoc
// @Summary      Read-only stock drift report
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DriftReportResponse
// @Router       /api/inventory/drift [get]
func (h *SaleHandler) Drift(c *fiber.Ctx) error {
	out, err := h.uc.DriftReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
