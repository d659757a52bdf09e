package attendance

import (
	"net/http"
	"strconv"
	"strings"

	"go-hr-portal/internal/middleware"
	"go-hr-portal/internal/shared/apperror"
	"go-hr-portal/internal/shared/contextutil"
	"go-hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
	rbac    middleware.RBACService
	logger  *zap.Logger
}

func NewHandler(service Service, rbacService middleware.RBACService, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, rbac: rbacService, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// filterFrom reads the query filter. Callers who cannot manage attendance are
// pinned to their own records.
func (h *Handler) filterFrom(c *gin.Context) AttendanceFilter {
	filter := AttendanceFilter{
		Date:       strings.TrimSpace(c.Query("date")),
		EmployeeID: strings.TrimSpace(c.Query("employee_id")),
		Department: strings.TrimSpace(c.Query("department")),
	}
	if !middleware.Can(c, h.rbac, "attendance", "manage") {
		filter.EmployeeID = c.GetString("employee_id")
		filter.Department = ""
	}
	return filter
}

func (h *Handler) ClockEvent(c *gin.Context) {
	var req ClockEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http clock event validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.ClockEvent(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockIn(c *gin.Context) {
	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateTimes(c *gin.Context) {
	var req UpdateTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.UpdateTimes(c.Request.Context(), c.GetString("company_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Query(c *gin.Context) {
	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	result, err := h.service.Query(ctx, c.GetString("company_id"), h.filterFrom(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	start, end, page, pageSize := response.PageBounds(len(result.Items), page, pageSize)

	meta := response.NewPaginationMeta(int64(len(result.Items)), page, pageSize)
	meta.Degraded = result.Degraded
	response.Success(c, http.StatusOK, result.Items[start:end], &meta)
}

func (h *Handler) Export(c *gin.Context) {
	filter := h.filterFrom(c)

	buf, err := h.service.ExportXLSX(c.Request.Context(), c.GetString("company_id"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ExportFilename(filter)+`"`)
	c.Data(http.StatusOK, xlsxMimeType, buf.Bytes())
}
