package controller

import (
	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/serverutils"
	"fashion-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	GetRecommendations(ctx *fiber.Ctx) error
	GetProduct(ctx *fiber.Ctx) error
	GetSimilarProducts(ctx *fiber.Ctx) error
}

type productController struct {
	productService service.IProductService
}

func NewProductController(productService service.IProductService) IProductController {
	return &productController{productService: productService}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	r.Get("/recommendations", c.GetRecommendations)
	r.Get("/product/:productId", c.GetProduct)
	r.Get("/similar-products", c.GetSimilarProducts)
}

func parseListQuery(ctx *fiber.Ctx) (*dto.ProductListQuery, error) {
	var q dto.ProductListQuery
	if err := ctx.QueryParser(&q); err != nil {
		return nil, apperror.Validation("Tham số không hợp lệ", err)
	}
	if err := serverutils.ValidateRequest(q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *productController) GetRecommendations(ctx *fiber.Ctx) error {
	q, err := parseListQuery(ctx)
	if err != nil {
		return err
	}
	res, err := c.productService.GetRecommendations(ctx.Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *productController) GetProduct(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("productId"))
	if err != nil {
		return apperror.Validation("productId không hợp lệ", err)
	}
	res, err := c.productService.GetProduct(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *productController) GetSimilarProducts(ctx *fiber.Ctx) error {
	q, err := parseListQuery(ctx)
	if err != nil {
		return err
	}
	res, err := c.productService.GetSimilarProducts(ctx.Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
