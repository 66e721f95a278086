package compensation

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Handler struct {
	service Service
	cache   *redis.Client
	group   singleflight.Group
	logger  *zap.Logger
}

func NewHandler(service Service, cache *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("compensation.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compensation.handler")
	}
	return &Handler{service: service, cache: cache, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("compensation request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req CreateCompensationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.cache != nil {
		_ = h.cache.Del(c.Request.Context(), CurrentCacheKey(resp.EmployeeID)).Err()
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

// releaseIdempotencyLock frees the in-flight lock set by the idempotency
// middleware once the handler has finished.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.cache == nil {
		return
	}
	if lk := c.GetString("idempotency_lock_key"); lk != "" {
		_ = h.cache.Del(c.Request.Context(), lk).Err()
	}
}

// cacheIdempotentResponse stores the successful response so a retry with
// the same Idempotency-Key replays instead of re-executing.
func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp any) {
	if h.cache == nil {
		return
	}
	ck := c.GetString("idempotency_cache_key")
	if ck == "" {
		return
	}
	if payload, err := json.Marshal(resp); err == nil {
		_ = h.cache.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
	}
}

// GetCurrent serves the hot path through Redis; concurrent misses for the
// same employee collapse into one service call.
func (h *Handler) GetCurrent(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("employee_id")
	key := CurrentCacheKey(employeeID)

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, key).Bytes(); err == nil {
			var resp CompensationResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				response.Success(c, http.StatusOK, resp, nil)
				return
			}
			_ = h.cache.Del(ctx, key).Err()
		}
	}

	result, err, _ := h.group.Do(key, func() (any, error) {
		resp, err := h.service.GetCurrent(ctx, employeeID)
		if err != nil {
			return nil, err
		}

		if h.cache != nil {
			if raw, err := json.Marshal(resp); err == nil {
				_ = h.cache.Set(ctx, key, raw, currentCacheTTL).Err()
			}
		}

		return resp, nil
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result.(CompensationResponse), nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	resp, err := h.service.GetHistory(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
