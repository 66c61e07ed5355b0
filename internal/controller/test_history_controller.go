package controller

import (
	"errors"

	"ortprep_backend/internal/service"
	"ortprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestHistoryController struct {
	HistoryService *service.TestHistoryService
}

func NewTestHistoryController(historyService *service.TestHistoryService) *TestHistoryController {
	return &TestHistoryController{HistoryService: historyService}
}

// ListHistory godoc
// @Summary История пройденных тестов
// @Tags История
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.TestHistory}
// @Router /api/history [get]
func (c *TestHistoryController) ListHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.HistoryService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// GetHistory godoc
// @Summary Одна запись истории
// @Tags История
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} util.Response{data=model.TestHistory}
// @Failure 404 {object} util.Response "Запись не найдена"
// @Router /api/history/{id} [get]
func (c *TestHistoryController) GetHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	row, err := c.HistoryService.Get(id, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrHistoryNotFound) {
			util.NotFoundMessage(ctx, "Запись истории не найдена")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, row)
}

// CreateHistory godoc
// @Summary Создать запись истории вручную
// @Tags История
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateHistoryReq true "Результат теста"
// @Success 201 {object} util.Response{data=model.TestHistory}
// @Failure 400 {object} util.Response
// @Router /api/history [post]
func (c *TestHistoryController) CreateHistory(ctx *gin.Context) {
	var req service.CreateHistoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	row, err := c.HistoryService.Create(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, row)
}

// DeleteHistory godoc
// @Summary Удалить запись истории
// @Description Доступно только администратору
// @Tags История
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Запись не найдена"
// @Router /api/history/{id} [delete]
func (c *TestHistoryController) DeleteHistory(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.HistoryService.Delete(id); err != nil {
		if errors.Is(err, util.ErrHistoryNotFound) {
			util.NotFoundMessage(ctx, "Запись истории не найдена")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
