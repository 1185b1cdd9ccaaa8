package controller

import (
	"whatsapp-storefront-be/internal/dto"
	"whatsapp-storefront-be/internal/pkg/serverutils"
	"whatsapp-storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	CreateCompany(ctx *fiber.Ctx) error
	CreateProduct(ctx *fiber.Ctx) error
	UpdateProduct(ctx *fiber.Ctx) error
	DeleteProduct(ctx *fiber.Ctx) error
	GetProducts(ctx *fiber.Ctx) error
	GetCategories(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/company", c.CreateCompany)
	h.Get("/company/:companyId/products", c.GetProducts)
	h.Post("/company/:companyId/products", c.CreateProduct)
	h.Put("/company/:companyId/products/:id", c.UpdateProduct)
	h.Delete("/company/:companyId/products/:id", c.DeleteProduct)
	h.Get("/company/:companyId/categories", c.GetCategories)
}

func (c *catalogController) CreateCompany(ctx *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateCompany(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create company", res))
}

func (c *catalogController) CreateProduct(ctx *fiber.Ctx) error {
	companyId, err := uuid.Parse(ctx.Params("companyId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid company id")
	}

	var req dto.CreateProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateProduct(ctx.Context(), companyId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create product", res))
}

func (c *catalogController) UpdateProduct(ctx *fiber.Ctx) error {
	companyId, err := uuid.Parse(ctx.Params("companyId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid company id")
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var req dto.UpdateProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProduct(ctx.Context(), companyId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update product", res))
}

func (c *catalogController) DeleteProduct(ctx *fiber.Ctx) error {
	companyId, err := uuid.Parse(ctx.Params("companyId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid company id")
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	if err := c.service.DeleteProduct(ctx.Context(), companyId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete product", nil))
}

func (c *catalogController) GetProducts(ctx *fiber.Ctx) error {
	companyId, err := uuid.Parse(ctx.Params("companyId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid company id")
	}

	res, err := c.service.GetProducts(ctx.Context(), companyId,
		ctx.Query("category"), ctx.Query("subcategory"),
		ctx.QueryInt("page", 1), ctx.QueryInt("per_page", 20))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get products", res))
}

func (c *catalogController) GetCategories(ctx *fiber.Ctx) error {
	companyId, err := uuid.Parse(ctx.Params("companyId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid company id")
	}

	res, err := c.service.GetCategories(ctx.Context(), companyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get categories", res))
}
