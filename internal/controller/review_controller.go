package controller

import (
	"novel-recall-be/internal/dto"
	"novel-recall-be/internal/pkg/serverutils"
	"novel-recall-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReviewController interface {
	RegisterRoutes(r fiber.Router)
	Render(ctx *fiber.Ctx) error
	Confirm(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	SubmitFeedback(ctx *fiber.Ctx) error
}

type reviewController struct {
	reviewService service.IReviewService
}

func NewReviewController(reviewService service.IReviewService) IReviewController {
	return &reviewController{reviewService: reviewService}
}

func (c *reviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/review/v1")
	h.Post("/confirm", c.Confirm)
	h.Post("/reject", c.Reject)
	h.Post("/feedback", c.SubmitFeedback)
	h.Get("/:sessionId", c.Render)
}

func (c *reviewController) Render(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	if sessionID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "sessionId parameter is required"))
	}

	res, err := c.reviewService.Render(ctx.Context(), sessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success render review", res))
}

func (c *reviewController) Confirm(ctx *fiber.Ctx) error {
	var req dto.ConfirmRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.Confirm(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Found your novel", res))
}

func (c *reviewController) Reject(ctx *fiber.Ctx) error {
	var req dto.RejectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.Reject(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reject candidate", res))
}

func (c *reviewController) SubmitFeedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.SubmitFeedback(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save feedback", res))
}
