package controller

import (
	"errors"
	"strconv"
	"strings"

	"ortprep_backend/internal/service"
	"ortprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AiQuestionController struct {
	QuestionService *service.AiQuestionService
}

func NewAiQuestionController(questionService *service.AiQuestionService) *AiQuestionController {
	return &AiQuestionController{QuestionService: questionService}
}

// AskRequest defines the question box payload.
// swagger:model AskRequest
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask godoc
// @Summary Задать вопрос ИИ
// @Description Отвечает на свободный вопрос ученика и учитывает его популярность
// @Tags Вопросы ИИ
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AskRequest true "Вопрос"
// @Success 200 {object} util.Response{data=service.AskResult}
// @Failure 502 {object} util.Response "Ошибка генерации"
// @Router /api/ai/ask [post]
func (c *AiQuestionController) Ask(ctx *gin.Context) {
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		util.BadRequest(ctx, "Вопрос не может быть пустым")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuestionService.Ask(claims.UserID, req.Question)
	if err != nil {
		if util.IsGenerationError(err) {
			util.BadGateway(ctx, "Не удалось получить ответ")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// TopQuestions godoc
// @Summary Популярные вопросы
// @Tags Вопросы ИИ
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Максимум записей (по умолчанию 10)"
// @Success 200 {object} util.Response{data=[]model.AiQuestion}
// @Router /api/ai/top-questions [get]
func (c *AiQuestionController) TopQuestions(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	rows, err := c.QuestionService.TopQuestions(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// ListQuestions godoc
// @Summary Все заданные вопросы
// @Description Доступно только администратору
// @Tags Вопросы ИИ
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.AiQuestion}
// @Router /api/ai/questions [get]
func (c *AiQuestionController) ListQuestions(ctx *gin.Context) {
	rows, err := c.QuestionService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// GetQuestion godoc
// @Summary Один вопрос по ID
// @Description Доступно только администратору
// @Tags Вопросы ИИ
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID вопроса"
// @Success 200 {object} util.Response{data=model.AiQuestion}
// @Failure 404 {object} util.Response "Вопрос не найден"
// @Router /api/ai/questions/{id} [get]
func (c *AiQuestionController) GetQuestion(ctx *gin.Context) {
	q, err := c.QuestionService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrAiQuestionNotFound) {
			util.NotFoundMessage(ctx, "Вопрос не найден")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary Удалить вопрос
// @Description Доступно только администратору
// @Tags Вопросы ИИ
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID вопроса"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Вопрос не найден"
// @Router /api/ai/questions/{id} [delete]
func (c *AiQuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrAiQuestionNotFound) {
			util.NotFoundMessage(ctx, "Вопрос не найден")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
