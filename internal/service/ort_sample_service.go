package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"ortprep_backend/internal/model"
	"ortprep_backend/internal/repository"
	"ortprep_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrtSampleService struct {
	SampleRepo *repository.OrtSampleRepository
	TopicRepo  *repository.TopicRepository
	Storage    *StorageService
}

func NewOrtSampleService(sampleRepo *repository.OrtSampleRepository, topicRepo *repository.TopicRepository, storage *StorageService) *OrtSampleService {
	return &OrtSampleService{
		SampleRepo: sampleRepo,
		TopicRepo:  topicRepo,
		Storage:    storage,
	}
}

type CreateOrtSampleReq struct {
	Content string `form:"content"`
	TopicID uint   `form:"topicId" binding:"required"`
}

type UpdateOrtSampleReq struct {
	Content string `form:"content"`
	TopicID uint   `form:"topicId"`
}

func (s *OrtSampleService) Create(ctx context.Context, req CreateOrtSampleReq, file *multipart.FileHeader) (*model.OrtSample, error) {
	if _, err := s.TopicRepo.FindByID(req.TopicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	sample := &model.OrtSample{
		Content: req.Content,
		TopicID: req.TopicID,
	}
	if file != nil {
		url, err := s.storeFile(ctx, file)
		if err != nil {
			return nil, err
		}
		sample.File = url
	}

	if err := s.SampleRepo.Create(sample); err != nil {
		return nil, err
	}
	return s.SampleRepo.FindByID(sample.ID)
}

func (s *OrtSampleService) Get(id uint) (*model.OrtSample, error) {
	sample, err := s.SampleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrOrtSampleNotFound
		}
		return nil, err
	}
	return sample, nil
}

func (s *OrtSampleService) List(topicID uint) ([]model.OrtSample, error) {
	return s.SampleRepo.List(topicID)
}

func (s *OrtSampleService) Update(ctx context.Context, id uint, req UpdateOrtSampleReq, file *multipart.FileHeader) (*model.OrtSample, error) {
	sample, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Content != "" {
		sample.Content = req.Content
	}
	if req.TopicID != 0 {
		if _, err := s.TopicRepo.FindByID(req.TopicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrTopicNotFound
			}
			return nil, err
		}
		sample.TopicID = req.TopicID
	}
	if file != nil {
		url, err := s.storeFile(ctx, file)
		if err != nil {
			return nil, err
		}
		sample.File = url
	}

	sample.Topic = nil
	if err := s.SampleRepo.Update(sample); err != nil {
		return nil, err
	}
	return s.SampleRepo.FindByID(sample.ID)
}

func (s *OrtSampleService) Delete(id uint) error {
	err := s.SampleRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrOrtSampleNotFound
	}
	return err
}

func (s *OrtSampleService) storeFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("ort-samples/%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")

	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return s.Storage.Upload(uploadCtx, name, src, file.Size, contentType)
}
