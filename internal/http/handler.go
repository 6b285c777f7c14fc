package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"complaint-service/internal/http/middleware"
	"complaint-service/internal/model"
	"complaint-service/internal/service"
	"complaint-service/internal/validation"
)

// maxSubmitBodyBytes leaves room for a 5 MB attachment plus form fields.
const maxSubmitBodyBytes = 8 << 20

type HealthFunc func(ctx context.Context) error

type Handler struct {
	complaintService  *service.ComplaintService
	statisticsService *service.StatisticsService
	contentService    *service.ContentService
	health            HealthFunc
	log               zerolog.Logger
}

func NewHandler(
	complaintService *service.ComplaintService,
	statisticsService *service.StatisticsService,
	contentService *service.ContentService,
	health HealthFunc,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		complaintService:  complaintService,
		statisticsService: statisticsService,
		contentService:    contentService,
		health:            health,
		log:               log,
	}
}

type attachmentPayload struct {
	FileName  string `json:"file_name"`
	MediaType string `json:"media_type"`
	Size      int64  `json:"size"`
}

type submitComplaintRequest struct {
	Type          string             `json:"type" form:"type"`
	Urgency       string             `json:"urgency" form:"urgency"`
	Location      string             `json:"location" form:"location"`
	Description   string             `json:"description" form:"description"`
	Notes         *string            `json:"notes" form:"notes"`
	ContactNumber string             `json:"contact_number" form:"contact_number"`
	Attachment    *attachmentPayload `json:"attachment" form:"-"`
}

func (h *Handler) healthz(c *gin.Context) {
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			h.log.Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) submitComplaint(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSubmitBodyBytes)

	multipartBody := strings.HasPrefix(c.ContentType(), "multipart/")

	var req submitComplaintRequest
	if err := c.ShouldBind(&req); err != nil {
		h.handleBodyError(c, err, multipartBody)
		return
	}

	submission := validation.Submission{
		Type:          req.Type,
		Urgency:       req.Urgency,
		Location:      req.Location,
		Description:   req.Description,
		Notes:         req.Notes,
		ContactNumber: req.ContactNumber,
	}
	if req.Attachment != nil {
		submission.Attachment = &validation.Attachment{
			FileName:  req.Attachment.FileName,
			MediaType: req.Attachment.MediaType,
			Size:      req.Attachment.Size,
		}
	}
	if multipartBody {
		file, err := c.FormFile("attachment")
		switch {
		case err == nil:
			submission.Attachment = &validation.Attachment{
				FileName:  file.Filename,
				MediaType: file.Header.Get("Content-Type"),
				Size:      file.Size,
			}
		case !errors.Is(err, http.ErrMissingFile):
			h.handleBodyError(c, err, multipartBody)
			return
		}
	}

	result, err := h.complaintService.Submit(c.Request.Context(), submission)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(result))
}

func (h *Handler) trackComplaint(c *gin.Context) {
	view, ok, err := h.complaintService.Track(c.Request.Context(), c.Param("trackingId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse("no such complaint"))
		return
	}
	c.JSON(http.StatusOK, successResponse(view))
}

func (h *Handler) getStatistics(c *gin.Context) {
	stats, err := h.statisticsService.Compute(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(stats))
}

func (h *Handler) listAnnouncements(c *gin.Context) {
	announcements, err := h.contentService.Announcements(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": announcements}))
}

func (h *Handler) listAchievements(c *gin.Context) {
	achievements, err := h.contentService.Achievements(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": achievements}))
}

func (h *Handler) listComplaints(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	filter, err := parseComplaintQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	records, err := h.complaintService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": records}))
}

func (h *Handler) getComplaint(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	record, err := h.complaintService.Get(c.Request.Context(), principal, c.Param("trackingId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(record))
}

func (h *Handler) updateComplaintStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Status string  `json:"status" binding:"required"`
		Notes  *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	record, err := h.complaintService.UpdateStatus(c.Request.Context(), principal, c.Param("trackingId"), req.Status, req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(record))
}

func (h *Handler) setAdminNotes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		AdminNotes *string `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	record, err := h.complaintService.SetAdminNotes(c.Request.Context(), principal, c.Param("trackingId"), req.AdminNotes)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(record))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if ve, ok := validation.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": ve.Fields})
		return
	}

	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(service.ErrPermissionDenied.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse("no such complaint"))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

// handleBodyError answers a submission body that could not be read. A multipart
// body over the cap can only be an oversized attachment.
func (h *Handler) handleBodyError(c *gin.Context, err error, multipartBody bool) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge) && multipartBody:
		h.handleError(c, validation.AttachmentTooLarge())
	case errors.As(err, &tooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
	default:
		c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
	}
}

func parseComplaintQuery(c *gin.Context) (model.ComplaintFilter, error) {
	var filter model.ComplaintFilter

	if statusParam := c.Query("status"); statusParam != "" {
		for _, val := range splitCSV(statusParam) {
			status, err := model.ParseComplaintStatus(val)
			if err != nil {
				return filter, err
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if typeParam := c.Query("type"); typeParam != "" {
		for _, val := range splitCSV(typeParam) {
			complaintType, ok := model.ParseComplaintType(val)
			if !ok {
				return filter, fmt.Errorf("unknown complaint type %q", val)
			}
			filter.Types = append(filter.Types, complaintType)
		}
	}
	if urgencyParam := c.Query("urgency"); urgencyParam != "" {
		for _, val := range splitCSV(urgencyParam) {
			urgency, ok := model.ParseUrgencyLevel(val)
			if !ok {
				return filter, fmt.Errorf("unknown urgency level %q", val)
			}
			filter.Urgencies = append(filter.Urgencies, urgency)
		}
	}
	if dateFrom := strings.TrimSpace(c.Query("date_from")); dateFrom != "" {
		ts, err := time.Parse(time.RFC3339, dateFrom)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &ts
	}
	if dateTo := strings.TrimSpace(c.Query("date_to")); dateTo != "" {
		ts, err := time.Parse(time.RFC3339, dateTo)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &ts
	}
	if limit := strings.TrimSpace(c.Query("limit")); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			filter.Limit = v
		}
	}
	if offset := strings.TrimSpace(c.Query("offset")); offset != "" {
		if v, err := strconv.Atoi(offset); err == nil {
			filter.Offset = v
		}
	}
	return filter, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
