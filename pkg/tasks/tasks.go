// Package tasks defines the payloads carried over the ingestion queue.
package tasks

// DocumentProcessingTask describes one uploaded document awaiting text
// extraction and indexing.
type DocumentProcessingTask struct {
	DocumentID uint   `json:"document_id"`
	ObjectName string `json:"object_name"`
	FileName   string `json:"file_name"`
	FileType   string `json:"file_type"`
}
