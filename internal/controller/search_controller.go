package controller

import (
	"novel-recall-be/internal/dto"
	"novel-recall-be/internal/pkg/serverutils"
	"novel-recall-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	reviewService service.IReviewService
}

func NewSearchController(reviewService service.IReviewService) ISearchController {
	return &searchController{reviewService: reviewService}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Post("/session", c.CreateSession)
	h.Post("", c.Search)
}

func (c *searchController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.reviewService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search novels", res))
}
