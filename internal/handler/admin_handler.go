package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/repository"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/service"
)

// AdminHandler exposes the knowledge-base management API and the dashboard.
type AdminHandler struct {
	adminService  service.AdminService
	searchService service.SearchService
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(adminService service.AdminService, searchService service.SearchService) *AdminHandler {
	return &AdminHandler{adminService: adminService, searchService: searchService}
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrFAQFieldsRequired) ||
		errors.Is(err, service.ErrInvalidPriority) ||
		errors.Is(err, service.ErrDocFieldsRequired) ||
		errors.Is(err, service.ErrInvalidDocumentType)
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// CreateFAQ handles POST /admin/faqs.
func (h *AdminHandler) CreateFAQ(c *gin.Context) {
	var in service.FAQInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	faq, err := h.adminService.CreateFAQ(c.Request.Context(), in)
	if err != nil {
		if isValidationError(err) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create FAQ")
		return
	}
	respondOK(c, http.StatusCreated, faq)
}

// GetFAQ handles GET /admin/faqs/:id.
func (h *AdminHandler) GetFAQ(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	faq, err := h.adminService.GetFAQ(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "FAQ not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load FAQ")
		return
	}
	respondOK(c, http.StatusOK, faq)
}

// UpdateFAQ handles PUT /admin/faqs/:id.
func (h *AdminHandler) UpdateFAQ(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var in service.FAQInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	faq, err := h.adminService.UpdateFAQ(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondError(c, http.StatusNotFound, "FAQ not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update FAQ")
		}
		return
	}
	respondOK(c, http.StatusOK, faq)
}

// DeleteFAQ handles DELETE /admin/faqs/:id.
func (h *AdminHandler) DeleteFAQ(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteFAQ(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "FAQ not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete FAQ")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// ListFAQs handles GET /admin/faqs.
func (h *AdminHandler) ListFAQs(c *gin.Context) {
	q := repository.FAQListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 20),
	}
	if active := c.Query("active"); active != "" {
		v := active == "true"
		q.Active = &v
	}

	faqs, total, err := h.adminService.ListFAQs(q)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list FAQs")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"faqs":  faqs,
		"total": total,
		"page":  q.Page,
		"limit": q.Limit,
	})
}

// CreateDocument handles POST /admin/documents.
func (h *AdminHandler) CreateDocument(c *gin.Context) {
	var in service.DocumentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.adminService.CreateDocument(c.Request.Context(), in)
	if err != nil {
		if isValidationError(err) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create document")
		return
	}
	respondOK(c, http.StatusCreated, doc)
}

// GetDocument handles GET /admin/documents/:id.
func (h *AdminHandler) GetDocument(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	doc, err := h.adminService.GetDocument(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "document not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load document")
		return
	}
	respondOK(c, http.StatusOK, doc)
}

// UpdateDocument handles PUT /admin/documents/:id.
func (h *AdminHandler) UpdateDocument(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var in service.DocumentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.adminService.UpdateDocument(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondError(c, http.StatusNotFound, "document not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update document")
		}
		return
	}
	respondOK(c, http.StatusOK, doc)
}

// DeleteDocument handles DELETE /admin/documents/:id.
func (h *AdminHandler) DeleteDocument(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteDocument(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "document not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete document")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// ListDocuments handles GET /admin/documents.
func (h *AdminHandler) ListDocuments(c *gin.Context) {
	q := repository.DocumentListQuery{
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Search:   c.Query("search"),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 20),
	}
	if active := c.Query("active"); active != "" {
		v := active == "true"
		q.Active = &v
	}

	docs, total, err := h.adminService.ListDocuments(q)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list documents")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"documents": docs,
		"total":     total,
		"page":      q.Page,
		"limit":     q.Limit,
	})
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load stats")
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// Search handles GET /admin/search.
func (h *AdminHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	results, err := h.searchService.Search(c.Request.Context(), query, intQuery(c, "size", 10))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "search failed")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"results": results, "query": query})
}
