package controller

import (
	"errors"

	"ortprep_backend/internal/model"
	"ortprep_backend/internal/service"
	"ortprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestProgressController struct {
	ProgressService *service.TestProgressService
}

func NewTestProgressController(progressService *service.TestProgressService) *TestProgressController {
	return &TestProgressController{ProgressService: progressService}
}

// SaveProgressRequest defines the progress save payload.
// swagger:model SaveProgressRequest
type SaveProgressRequest struct {
	TestID               string           `json:"testId" binding:"required"`
	CurrentQuestionIndex int              `json:"currentQuestionIndex"`
	Answers              model.AnswerList `json:"answers"`
	TimeLeft             int              `json:"timeLeft"`
}

// SaveProgress godoc
// @Summary Сохранить прогресс прохождения теста
// @Description Перезаписывает состояние попытки; при ответах на все вопросы помечает тест завершённым
// @Tags Прогресс
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveProgressRequest true "Состояние попытки"
// @Success 200 {object} util.Response{data=service.SaveResult}
// @Failure 400 {object} util.Response "Отсутствует testId"
// @Failure 404 {object} util.Response "Тест не найден"
// @Router /api/test-progress/save [post]
func (c *TestProgressController) SaveProgress(ctx *gin.Context) {
	var req SaveProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ProgressService.Save(claims.UserID, req.TestID, req.CurrentQuestionIndex, req.Answers, req.TimeLeft)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFoundMessage(ctx, "Тест не найден")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// ListProgress godoc
// @Summary Незавершённые тесты пользователя
// @Tags Прогресс
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.ProgressSummary}
// @Router /api/test-progress [get]
func (c *TestProgressController) ListProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summaries, err := c.ProgressService.ListActive(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

// GetProgress godoc
// @Summary Состояние попытки по тесту
// @Tags Прогресс
// @Produce json
// @Security BearerAuth
// @Param testId path string true "ID теста"
// @Success 200 {object} util.Response{data=service.ProgressDetail}
// @Failure 404 {object} util.Response "Прогресс не найден"
// @Router /api/test-progress/{testId} [get]
func (c *TestProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.ProgressService.Get(claims.UserID, ctx.Param("testId"))
	if err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFoundMessage(ctx, "Прогресс не найден")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// DeleteProgress godoc
// @Summary Удалить сохранённый прогресс
// @Tags Прогресс
// @Produce json
// @Security BearerAuth
// @Param testId path string true "ID теста"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Прогресс не найден"
// @Router /api/test-progress/{testId} [delete]
func (c *TestProgressController) DeleteProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ProgressService.Delete(claims.UserID, ctx.Param("testId")); err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFoundMessage(ctx, "Прогресс не найден")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
