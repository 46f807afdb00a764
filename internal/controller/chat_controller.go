package controller

import (
	"context"
	"time"

	"legislation-qa-be/internal/dto"
	"legislation-qa-be/internal/pkg/serverutils"
	"legislation-qa-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultRequestTimeout = 60 * time.Second

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	timeout     time.Duration
}

func NewChatController(chatService service.IChatService, timeout time.Duration) IChatController {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &chatController{
		chatService: chatService,
		timeout:     timeout,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("sessions", c.CreateSession)
	h.Post("", c.SendChat)
}

// requestContext bounds downstream calls so a stalled store or model
// surfaces as a failed request instead of a hung connection.
func (c *chatController) requestContext(ctx *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Context(), c.timeout)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	res, err := c.chatService.CreateSession(reqCtx)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	res, err := c.chatService.SendChat(reqCtx, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}
