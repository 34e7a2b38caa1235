// Package es provides the Elasticsearch client backing knowledge-base search.
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/config"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/log"
)

var ESClient *elasticsearch.Client

// InitES builds the client and ensures the knowledge index exists.
func InitES(esCfg config.ElasticsearchConfig) error {
	cfg := elasticsearch.Config{
		Addresses: []string{esCfg.Addresses},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return err
	}
	ESClient = client
	return createIndexIfNotExists(esCfg.IndexName)
}

// createIndexIfNotExists creates the knowledge index when missing.
func createIndexIfNotExists(indexName string) error {
	res, err := ESClient.Indices.Exists([]string{indexName})
	if err != nil {
		log.Errorf("failed to check index existence: %v", err)
		return err
	}
	if !res.IsError() && res.StatusCode == http.StatusOK {
		log.Infof("index '%s' already exists", indexName)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Errorf("unexpected status code while checking index '%s': %d", indexName, res.StatusCode)
		return fmt.Errorf("unexpected status code while checking index: %d", res.StatusCode)
	}

	// One flat index for both FAQs and documents; kind discriminates.
	mapping := `{
		"mappings": {
			"properties": {
				"knowledge_id": { "type": "keyword" },
				"kind": { "type": "keyword" },
				"ref_id": { "type": "long" },
				"title": { "type": "text" },
				"content": { "type": "text" },
				"category": { "type": "keyword" },
				"tags": { "type": "keyword" },
				"is_active": { "type": "boolean" }
			}
		}
	}`

	res, err = ESClient.Indices.Create(
		indexName,
		ESClient.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		log.Errorf("failed to create index '%s': %v", indexName, err)
		return err
	}
	if res.IsError() {
		log.Errorf("Elasticsearch returned an error creating index '%s': %s", indexName, res.String())
		return errors.New("elasticsearch returned an error creating index")
	}

	log.Infof("index '%s' created successfully", indexName)
	return nil
}

// IndexKnowledge upserts a single knowledge entry into the index.
func IndexKnowledge(ctx context.Context, indexName string, doc model.EsKnowledgeDoc) error {
	docBytes, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: doc.KnowledgeID,
		Body:       bytes.NewReader(docBytes),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, ESClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Errorf("failed to index knowledge entry '%s': %s", doc.KnowledgeID, res.String())
		return errors.New("failed to index knowledge entry")
	}
	return nil
}

// DeleteKnowledge removes a knowledge entry from the index. A missing
// document is not treated as an error.
func DeleteKnowledge(ctx context.Context, indexName, knowledgeID string) error {
	req := esapi.DeleteRequest{
		Index:      indexName,
		DocumentID: knowledgeID,
		Refresh:    "true",
	}

	res, err := req.Do(ctx, ESClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		log.Errorf("failed to delete knowledge entry '%s': %s", knowledgeID, res.String())
		return errors.New("failed to delete knowledge entry")
	}
	return nil
}
