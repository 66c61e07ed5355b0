package controller

import (
	"errors"

	"ortprep_backend/internal/service"
	"ortprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdviceController struct {
	AdviceService *service.AdviceService
}

func NewAdviceController(adviceService *service.AdviceService) *AdviceController {
	return &AdviceController{AdviceService: adviceService}
}

// GenerateAdvice godoc
// @Summary Сгенерировать совет по последнему тесту
// @Description Составляет персональный совет по результатам последней попытки
// @Tags Советы
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.Advice}
// @Failure 404 {object} util.Response "Нет пройденных тестов"
// @Failure 502 {object} util.Response "Ошибка генерации"
// @Router /api/advice [post]
func (c *AdviceController) GenerateAdvice(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	advice, err := c.AdviceService.Generate(claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoTestHistory):
			util.NotFoundMessage(ctx, "Нет результатов тестов для этого пользователя")
		case errors.Is(err, util.ErrTestNotFound):
			util.NotFoundMessage(ctx, "Тест из последней попытки не найден")
		case util.IsGenerationError(err):
			util.BadGateway(ctx, "Не удалось сгенерировать совет")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, advice)
}

// ListAdvice godoc
// @Summary Советы пользователя
// @Tags Советы
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.AdviceRow}
// @Router /api/advice [get]
func (c *AdviceController) ListAdvice(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.AdviceService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
