package controller

import (
	"errors"

	"ortprep_backend/internal/model"
	"ortprep_backend/internal/service"
	"ortprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// GenerateTestRequest defines the generation payload.
// swagger:model GenerateTestRequest
type GenerateTestRequest struct {
	TopicID    uint             `json:"topicId" binding:"required"`
	Difficulty model.Difficulty `json:"difficulty" binding:"required"`
}

// GenerateTest godoc
// @Summary Сгенерировать тест по теме
// @Description Генерирует тест указанной сложности с помощью ИИ по материалам темы
// @Tags Тесты
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateTestRequest true "Тема и уровень сложности"
// @Success 201 {object} util.Response{data=service.SanitizedTest}
// @Failure 400 {object} util.Response "Неверный уровень сложности"
// @Failure 404 {object} util.Response "Тема не найдена"
// @Failure 502 {object} util.Response "Ошибка генерации"
// @Router /api/tests/generate [post]
func (c *TestController) GenerateTest(ctx *gin.Context) {
	var req GenerateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	test, err := c.TestService.GenerateTest(claims.UserID, req.TopicID, req.Difficulty)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidDifficulty):
			util.BadRequest(ctx, "Неверный уровень сложности")
		case errors.Is(err, util.ErrTopicNotFound):
			util.NotFoundMessage(ctx, "Тема не найдена")
		case util.IsGenerationError(err):
			util.BadGateway(ctx, "Не удалось сгенерировать тест")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, test)
}

// CreateTest godoc
// @Summary Создать тест вручную
// @Description Сохраняет тест с готовыми вопросами без генерации
// @Tags Тесты
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateTestReq true "Тест с вопросами"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Тема не найдена"
// @Router /api/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var req service.CreateTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	test, err := c.TestService.CreateTest(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidDifficulty):
			util.BadRequest(ctx, "Неверный уровень сложности")
		case errors.Is(err, util.ErrTopicNotFound):
			util.NotFoundMessage(ctx, "Тема не найдена")
		case errors.Is(err, service.ErrInvalidQuestion):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"testId": test.ID})
}

// GetTest godoc
// @Summary Получить тест для прохождения
// @Description Возвращает вопросы без правильных ответов и пояснений
// @Tags Тесты
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID теста"
// @Success 200 {object} util.Response{data=service.SanitizedTest}
// @Failure 404 {object} util.Response "Тест не найден"
// @Router /api/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	test, err := c.TestService.GetTest(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFoundMessage(ctx, "Тест не найден")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, test)
}

// SubmitTestRequest defines the submission payload.
// swagger:model SubmitTestRequest
type SubmitTestRequest struct {
	TestID  string                  `json:"testId" binding:"required"`
	Answers []model.SubmittedAnswer `json:"answers"`
}

// SubmitTest godoc
// @Summary Отправить ответы на проверку
// @Description Подсчитывает результат, сохраняет историю и разбор ответов
// @Tags Тесты
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitTestRequest true "Ответы пользователя"
// @Success 200 {object} util.Response{data=service.ScoreResult}
// @Failure 404 {object} util.Response "Тест не найден"
// @Router /api/tests/submit [post]
func (c *TestController) SubmitTest(ctx *gin.Context) {
	var req SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.TestService.SubmitTest(claims.UserID, req.TestID, req.Answers)
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

// ListTests godoc
// @Summary Список всех тестов
// @Tags Тесты
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	rows, err := c.TestService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// MyTests godoc
// @Summary Тесты текущего пользователя
// @Tags Тесты
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/tests/mine [get]
func (c *TestController) MyTests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.TestService.ListByCreator(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// UserTests godoc
// @Summary Тесты указанного пользователя
// @Description Доступно только администратору
// @Tags Тесты
// @Produce json
// @Security BearerAuth
// @Param userId path int true "ID пользователя"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/tests/user/{userId} [get]
func (c *TestController) UserTests(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if userID == 0 {
		util.BadRequest(ctx, "Неверный ID пользователя")
		return
	}

	rows, err := c.TestService.ListByCreator(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// GetTestAnswers godoc
// @Summary Разбор ответов по тесту
// @Description Возвращает правильные ответы и выбор пользователя после прохождения
// @Tags Тесты
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID теста"
// @Success 200 {object} util.Response{data=service.TestAnswersResult}
// @Failure 404 {object} util.Response "Тест не найден"
// @Router /api/tests/{id}/answers [get]
func (c *TestController) GetTestAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.TestService.GetTestAnswers(claims.UserID, ctx.Param("id"))
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
