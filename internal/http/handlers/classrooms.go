package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danmwangi/schoolhub/internal/domain/classroom"
	"github.com/danmwangi/schoolhub/internal/observability"
	"github.com/danmwangi/schoolhub/internal/utils"
	"github.com/gin-gonic/gin"
)

type ClassroomsStore interface {
	ListPage(ctx context.Context, page, limit int) ([]classroom.Classroom, int, error)
}

type ClassroomsHandler struct {
	store   ClassroomsStore
	metrics *observability.Prom
}

func NewClassroomsHandler(store ClassroomsStore, metrics *observability.Prom) *ClassroomsHandler {
	return &ClassroomsHandler{store: store, metrics: metrics}
}

// ListAll mirrors the student listing contract for classrooms.
func (h *ClassroomsHandler) ListAll(ctx *gin.Context) {
	page := utils.ParsePageParam(ctx.Query("page"))
	limit := utils.ParseLimitParam(ctx.Query("limit"))

	start := time.Now()
	records, totalPages, err := h.store.ListPage(ctx.Request.Context(), page, limit)

	if h.metrics != nil {
		h.metrics.ObserveDB("classrooms.list", start, err)
	}

	if err != nil {
		RespondInternal(ctx, "Could not list classrooms")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data":       records,
		"totalPages": totalPages,
	})
}
