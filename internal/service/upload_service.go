package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/config"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/repository"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/kafka"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/log"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/storage"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/tasks"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
)

// UploadService receives raw document files, stores them in MinIO and
// enqueues extraction. The document row stays in processing status until
// the pipeline finishes.
type UploadService interface {
	UploadDocument(ctx context.Context, fileHeader *multipart.FileHeader, category string, tags []string, uploadedBy string) (*model.Document, error)
}

type uploadService struct {
	docRepo   repository.DocumentRepository
	minioCfg  config.MinIOConfig
	uploadCfg config.UploadConfig
}

// NewUploadService creates a new UploadService instance.
func NewUploadService(docRepo repository.DocumentRepository, minioCfg config.MinIOConfig, uploadCfg config.UploadConfig) UploadService {
	return &uploadService{
		docRepo:   docRepo,
		minioCfg:  minioCfg,
		uploadCfg: uploadCfg,
	}
}

// UploadDocument validates the file, stores the raw bytes and creates the
// document row, then hands extraction to the queue. The returned document
// is still processing; clients poll the admin API for readiness.
func (s *uploadService) UploadDocument(ctx context.Context, fileHeader *multipart.FileHeader, category string, tags []string, uploadedBy string) (*model.Document, error) {
	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if !model.DocumentTypes[fileType] {
		return nil, ErrUnsupportedFileType
	}
	if limit := s.uploadCfg.MaxFileSizeMB * 1024 * 1024; limit > 0 && fileHeader.Size > limit {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	objectName := fmt.Sprintf("documents/%d-%s", time.Now().UnixNano(), fileHeader.Filename)
	_, err = storage.MinioClient.PutObject(ctx, s.minioCfg.BucketName, objectName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}

	if uploadedBy == "" {
		uploadedBy = "admin"
	}
	doc := &model.Document{
		Name:         fileHeader.Filename,
		OriginalName: fileHeader.Filename,
		Type:         fileType,
		Size:         fileHeader.Size,
		ObjectName:   objectName,
		Category:     category,
		Tags:         model.NormalizeTags(tags),
		IsActive:     true,
		Status:       model.DocumentStatusProcessing,
		UploadedBy:   uploadedBy,
	}
	if err := s.docRepo.Create(doc); err != nil {
		return nil, err
	}

	task := tasks.DocumentProcessingTask{
		DocumentID: doc.ID,
		ObjectName: objectName,
		FileName:   fileHeader.Filename,
		FileType:   fileType,
	}
	if err := kafka.ProduceDocumentTask(task); err != nil {
		log.Errorf("failed to enqueue document task for id=%d: %v", doc.ID, err)
		return nil, fmt.Errorf("failed to enqueue document processing: %w", err)
	}

	log.Infof("document uploaded: id=%d, object=%s", doc.ID, objectName)
	return doc, nil
}
