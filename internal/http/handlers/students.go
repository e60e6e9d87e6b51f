package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danmwangi/schoolhub/internal/cache"
	"github.com/danmwangi/schoolhub/internal/domain/student"
	"github.com/danmwangi/schoolhub/internal/observability"
	"github.com/danmwangi/schoolhub/internal/repo/memory"
	"github.com/danmwangi/schoolhub/internal/repo/postgres"
	"github.com/danmwangi/schoolhub/internal/utils"
	"github.com/gin-gonic/gin"
)

type StudentsStore interface {
	ListPage(ctx context.Context, page, limit int) ([]student.Student, int, error)
	Create(ctx context.Context, req student.CreateStudentRequest) (student.Student, error)
	GetByID(ctx context.Context, id string) (student.Student, error)
	Update(ctx context.Context, id string, req student.UpdateStudentRequest) (student.Student, error)
	Delete(ctx context.Context, id string) error
}

type StudentsHandler struct {
	store   StudentsStore
	pages   cache.PageCache
	metrics *observability.Prom
}

func NewStudentsHandler(store StudentsStore, pages cache.PageCache, metrics *observability.Prom) *StudentsHandler {
	return &StudentsHandler{
		store:   store,
		pages:   pages,
		metrics: metrics,
	}
}

type ListPayload struct {
	Data       []student.Student `json:"data"`
	TotalPages int               `json:"totalPages"`
}

// ListAll serves GET /api/student/all?page=<n>&limit=<m>. Pages are
// 1-indexed; out-of-range values fall back to defaults rather than
// erroring, matching what the table view expects.
func (h *StudentsHandler) ListAll(ctx *gin.Context) {
	page := utils.ParsePageParam(ctx.Query("page"))
	limit := utils.ParseLimitParam(ctx.Query("limit"))

	key := fmt.Sprintf("students:page:%d:limit:%d", page, limit)

	if h.pages != nil {
		if raw, ok := h.pages.Get(ctx.Request.Context(), key); ok {
			if h.metrics != nil {
				h.metrics.ListCacheHits.Inc()
			}
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", raw)
			return
		}
		if h.metrics != nil {
			h.metrics.ListCacheMisses.Inc()
		}
	}

	start := time.Now()
	records, totalPages, err := h.store.ListPage(ctx.Request.Context(), page, limit)

	if h.metrics != nil {
		h.metrics.ObserveDB("students.list", start, err)
	}

	if err != nil {
		RespondInternal(ctx, "Could not list students")
		return
	}

	resp := ListPayload{Data: records, TotalPages: totalPages}

	if h.pages != nil {
		if raw, err := json.Marshal(resp); err == nil {
			h.pages.Set(ctx.Request.Context(), key, raw)
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

func (h *StudentsHandler) Create(ctx *gin.Context) {
	var req student.CreateStudentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	start := time.Now()
	s, err := h.store.Create(ctx.Request.Context(), req)

	if h.metrics != nil {
		h.metrics.ObserveDB("students.create", start, err)
	}

	if err != nil {
		RespondInternal(ctx, "Could not create student")
		return
	}

	h.invalidatePages(ctx.Request.Context())

	ctx.JSON(http.StatusCreated, s)
}

func (h *StudentsHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	s, err := h.store.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if isStudentNotFound(err) {
			RespondNotFound(ctx, "Student not found")
			return
		}
		RespondInternal(ctx, "Could not fetch student")
		return
	}

	ctx.JSON(http.StatusOK, s)
}

func (h *StudentsHandler) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req student.UpdateStudentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	s, err := h.store.Update(ctx.Request.Context(), id, req)

	if err != nil {
		if isStudentNotFound(err) {
			RespondNotFound(ctx, "Student not found")
			return
		}
		RespondInternal(ctx, "Could not update student")
		return
	}

	h.invalidatePages(ctx.Request.Context())

	ctx.JSON(http.StatusOK, s)
}

func (h *StudentsHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	err := h.store.Delete(ctx.Request.Context(), id)

	if err != nil {
		if isStudentNotFound(err) {
			RespondNotFound(ctx, "Student not found")
			return
		}
		RespondInternal(ctx, "Could not delete student")
		return
	}

	h.invalidatePages(ctx.Request.Context())

	ctx.Status(http.StatusNoContent)
}

func (h *StudentsHandler) invalidatePages(ctx context.Context) {
	if h.pages != nil {
		h.pages.Invalidate(ctx)
	}
}

func isStudentNotFound(err error) bool {
	return errors.Is(err, postgres.ErrStudentNotFound) || errors.Is(err, memory.ErrNotFound)
}
