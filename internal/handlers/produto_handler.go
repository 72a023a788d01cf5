package handlers

import (
	"estoque/internal/services"
	"estoque/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProdutoHandler handles HTTP requests for products.
type ProdutoHandler struct {
	service *services.ProdutoService
}

// NewProdutoHandler creates a new ProdutoHandler.
func NewProdutoHandler(service *services.ProdutoService) *ProdutoHandler {
	return &ProdutoHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
// stats and recent must come before /:id or the param route swallows them.
func (h *ProdutoHandler) RegisterRoutes(router fiber.Router) {
	produtos := router.Group("/products")
	produtos.Get("/stats", h.HandleStats)
	produtos.Get("/recent", h.HandleRecent)
	produtos.Post("/", h.HandleCreate)
	produtos.Get("/", h.HandleList)
	produtos.Get("/:id", h.HandleFindByID)
	produtos.Put("/:id", h.HandleUpdate)
	produtos.Delete("/:id", h.HandleDelete)
}

// HandleCreate creates a new product from a validated body.
func (h *ProdutoHandler) HandleCreate(c *fiber.Ctx) error {
	input, verr := validation.ParseCreateProduto(c.Body())
	if verr != nil {
		return verr
	}

	produto, err := h.service.Create(input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(produto)
}

// HandleList returns one page of products plus the total filtered count.
func (h *ProdutoHandler) HandleList(c *fiber.Ctx) error {
	query, verr := validation.ParseListQuery(c.Queries())
	if verr != nil {
		return verr
	}

	produtos, total, err := h.service.List(query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"products": produtos,
		"total":    total,
	})
}

// HandleFindByID returns a single product.
func (h *ProdutoHandler) HandleFindByID(c *fiber.Ctx) error {
	id, verr := validation.ParseProdutoID(c.Params("id"))
	if verr != nil {
		return verr
	}

	produto, err := h.service.FindByID(id)
	if err != nil {
		return err
	}
	return c.JSON(produto)
}

// HandleUpdate applies a partial update and returns the fresh record.
func (h *ProdutoHandler) HandleUpdate(c *fiber.Ctx) error {
	id, verr := validation.ParseProdutoID(c.Params("id"))
	if verr != nil {
		return verr
	}
	input, verr := validation.ParseUpdateProduto(c.Body())
	if verr != nil {
		return verr
	}

	produto, err := h.service.Update(id, input)
	if err != nil {
		return err
	}
	return c.JSON(produto)
}

// HandleDelete hard-deletes a product.
func (h *ProdutoHandler) HandleDelete(c *fiber.Ctx) error {
	id, verr := validation.ParseProdutoID(c.Params("id"))
	if verr != nil {
		return verr
	}

	if err := h.service.Remove(id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleStats returns the aggregate over active products.
func (h *ProdutoHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// HandleRecent returns the 5 most recently created products.
func (h *ProdutoHandler) HandleRecent(c *fiber.Ctx) error {
	produtos, err := h.service.ListRecent()
	if err != nil {
		return err
	}
	return c.JSON(produtos)
}
