package controller

import (
	"novel-recall-be/internal/pkg/serverutils"
	"novel-recall-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMetaController interface {
	RegisterRoutes(r fiber.Router)
	About(ctx *fiber.Ctx) error
}

type metaController struct {
	metaService service.IMetaService
}

func NewMetaController(metaService service.IMetaService) IMetaController {
	return &metaController{metaService: metaService}
}

func (c *metaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/meta/v1")
	h.Get("/about", c.About)
}

func (c *metaController) About(ctx *fiber.Ctx) error {
	res, err := c.metaService.About(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetch about", res))
}
