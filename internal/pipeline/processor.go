// Package pipeline contains the background document ingestion processor.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/config"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/repository"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/es"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/log"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/storage"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/tasks"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/tika"
)

// Shown when the extraction server cannot handle a file. The document stays
// usable for listing and download; it just contributes nothing to chat
// context until re-uploaded in a supported format.
const extractionUnavailableNote = "Content extraction is not available for this file. " +
	"The original document is stored and can be downloaded."

// Processor turns an uploaded file into searchable document content. It
// consumes ingestion tasks from the queue: fetch the raw object, extract
// its text, mark the document ready and mirror it into the search index.
type Processor struct {
	tikaClient *tika.Client
	esCfg      config.ElasticsearchConfig
	minioCfg   config.MinIOConfig
	docRepo    repository.DocumentRepository
}

// NewProcessor creates a new Processor instance.
func NewProcessor(tikaClient *tika.Client, esCfg config.ElasticsearchConfig, minioCfg config.MinIOConfig, docRepo repository.DocumentRepository) *Processor {
	return &Processor{
		tikaClient: tikaClient,
		esCfg:      esCfg,
		minioCfg:   minioCfg,
		docRepo:    docRepo,
	}
}

// Process handles one ingestion task. A returned error triggers the
// consumer's retry accounting; partial extraction failures are absorbed
// with a placeholder so a bad file cannot loop forever.
func (p *Processor) Process(ctx context.Context, task tasks.DocumentProcessingTask) error {
	doc, err := p.docRepo.GetByID(task.DocumentID)
	if err != nil {
		return fmt.Errorf("failed to load document %d: %w", task.DocumentID, err)
	}

	object, err := storage.MinioClient.GetObject(ctx, p.minioCfg.BucketName, task.ObjectName, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch object %s: %w", task.ObjectName, err)
	}
	defer object.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, object); err != nil {
		return fmt.Errorf("failed to read object %s: %w", task.ObjectName, err)
	}

	switch task.FileType {
	case "txt", "md":
		// Plain text needs no extraction round-trip.
		doc.Content = buf.String()
		doc.Size = int64(len(doc.Content))
	default:
		content, err := p.tikaClient.ExtractText(&buf, task.FileName)
		if err != nil {
			log.Warnf("text extraction failed for document %d (%s): %v", task.DocumentID, task.FileName, err)
			doc.Content = extractionUnavailableNote
		} else {
			doc.Content = content
			doc.Size = int64(len(content))
		}
	}

	doc.Status = model.DocumentStatusReady
	if err := p.docRepo.Update(doc); err != nil {
		return fmt.Errorf("failed to update document %d: %w", task.DocumentID, err)
	}

	esDoc := model.EsKnowledgeDoc{
		KnowledgeID: fmt.Sprintf("%s:%d", model.KnowledgeKindDocument, doc.ID),
		Kind:        model.KnowledgeKindDocument,
		RefID:       doc.ID,
		Title:       doc.Name,
		Content:     doc.Content,
		Category:    doc.Category,
		Tags:        doc.Tags,
		IsActive:    doc.IsActive,
	}
	if err := es.IndexKnowledge(ctx, p.esCfg.IndexName, esDoc); err != nil {
		// The document is ready either way; search lags until reindexed.
		log.Errorf("failed to index document %d: %v", doc.ID, err)
	}

	log.Infof("document processed: id=%d, type=%s, content=%d bytes", doc.ID, task.FileType, len(doc.Content))
	return nil
}

// Abandon marks a document failed after the queue gives up on its task.
// Failed documents stay listed so an administrator can delete or re-upload
// them.
func (p *Processor) Abandon(ctx context.Context, task tasks.DocumentProcessingTask) {
	doc, err := p.docRepo.GetByID(task.DocumentID)
	if err != nil {
		log.Errorf("failed to load abandoned document %d: %v", task.DocumentID, err)
		return
	}
	doc.Status = model.DocumentStatusFailed
	if err := p.docRepo.Update(doc); err != nil {
		log.Errorf("failed to mark document %d failed: %v", task.DocumentID, err)
	}
}
