package controller

import (
	"errors"

	"ortprep_backend/internal/service"
	"ortprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OrtSampleController struct {
	SampleService *service.OrtSampleService
}

func NewOrtSampleController(sampleService *service.OrtSampleService) *OrtSampleController {
	return &OrtSampleController{SampleService: sampleService}
}

// CreateSample godoc
// @Summary Добавить материал ОРТ
// @Description Сохраняет текст или файл с примерами для генерации тестов
// @Tags Материалы
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param topicId formData int true "ID темы"
// @Param content formData string false "Текст материала"
// @Param file formData file false "Файл материала"
// @Success 201 {object} util.Response{data=model.OrtSample}
// @Failure 404 {object} util.Response "Тема не найдена"
// @Router /api/ort-samples [post]
func (c *OrtSampleController) CreateSample(ctx *gin.Context) {
	var req service.CreateOrtSampleReq
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	file, _ := ctx.FormFile("file")
	if req.Content == "" && file == nil {
		util.BadRequest(ctx, "Нужен текст или файл материала")
		return
	}

	sample, err := c.SampleService.Create(ctx.Request.Context(), req, file)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFoundMessage(ctx, "Тема не найдена")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, sample)
}

// ListSamples godoc
// @Summary Список материалов ОРТ
// @Tags Материалы
// @Produce json
// @Security BearerAuth
// @Param topicId query int false "Фильтр по теме"
// @Success 200 {object} util.Response{data=[]model.OrtSample}
// @Router /api/ort-samples [get]
func (c *OrtSampleController) ListSamples(ctx *gin.Context) {
	topicID := util.MustParseUint(ctx.Query("topicId"))
	samples, err := c.SampleService.List(topicID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, samples)
}

// GetSample godoc
// @Summary Один материал ОРТ
// @Tags Материалы
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID материала"
// @Success 200 {object} util.Response{data=model.OrtSample}
// @Failure 404 {object} util.Response "Материал не найден"
// @Router /api/ort-samples/{id} [get]
func (c *OrtSampleController) GetSample(ctx *gin.Context) {
	sample, err := c.SampleService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrOrtSampleNotFound) {
			util.NotFoundMessage(ctx, "Материал не найден")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, sample)
}

// UpdateSample godoc
// @Summary Обновить материал ОРТ
// @Tags Материалы
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID материала"
// @Param topicId formData int false "ID темы"
// @Param content formData string false "Текст материала"
// @Param file formData file false "Файл материала"
// @Success 200 {object} util.Response{data=model.OrtSample}
// @Failure 404 {object} util.Response "Материал не найден"
// @Router /api/ort-samples/{id} [put]
func (c *OrtSampleController) UpdateSample(ctx *gin.Context) {
	var req service.UpdateOrtSampleReq
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	file, _ := ctx.FormFile("file")
	sample, err := c.SampleService.Update(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req, file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrOrtSampleNotFound):
			util.NotFoundMessage(ctx, "Материал не найден")
		case errors.Is(err, util.ErrTopicNotFound):
			util.NotFoundMessage(ctx, "Тема не найдена")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, sample)
}

// DeleteSample godoc
// @Summary Удалить материал ОРТ
// @Tags Материалы
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID материала"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Материал не найден"
// @Router /api/ort-samples/{id} [delete]
func (c *OrtSampleController) DeleteSample(ctx *gin.Context) {
	if err := c.SampleService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrOrtSampleNotFound) {
			util.NotFoundMessage(ctx, "Материал не найден")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
