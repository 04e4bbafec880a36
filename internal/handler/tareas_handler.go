package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rockalpatio/internal/dashboard"
	"rockalpatio/internal/model"
	"rockalpatio/internal/service/auth"
	"rockalpatio/pkg/logger"
)

type TareaHandler struct {
	tareas *dashboard.Tareas
	logger *zap.Logger
}

func NewTareaHandler(tareas *dashboard.Tareas, logger *zap.Logger) *TareaHandler {
	return &TareaHandler{tareas: tareas, logger: logger}
}

func (h *TareaHandler) page(v *dashboard.TareasView) gin.H {
	body := listBody(h.tareas.Manager, v)
	body["board"] = h.tareas.Board(v)
	body["draft"] = v.Draft
	body["dialog_open"] = v.DialogOpen
	body["options"] = gin.H{
		"areas":       model.Areas,
		"prioridades": model.Priorities,
		"estados":     model.TaskStatuses,
	}
	return body
}

// Board 返回看板（按状态分列），estado 可选过滤列表
func (h *TareaHandler) Board(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	v := h.tareas.NewView()
	if err := h.tareas.SetFilter(v, c.Query("estado")); err != nil {
		writeError(c, log, "TareasBoard", err, nil)
		return
	}
	if err := h.tareas.Load(ctx, v); err != nil {
		loadFailed(c, log, "TareasBoard", err)
		return
	}

	log.Debug("TareasBoard: success", zap.Int("count", len(v.Items)))
	c.JSON(http.StatusOK, h.page(v))
}

func (h *TareaHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	var draft dashboard.TareaDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v := h.tareas.NewView()
	h.tareas.OpenDialog(v)
	v.Draft = draft
	if err := h.tareas.Create(ctx, v, auth.Actor(CurrentUser(c))); err != nil {
		writeError(c, log, "CreateTarea", err, gin.H{"draft": v.Draft, "dialog_open": v.DialogOpen})
		return
	}

	body := h.page(v)
	body["retry"] = v.LoadErr != nil
	c.JSON(http.StatusCreated, body)
}

type estadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

func (h *TareaHandler) CambiarEstado(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	id, ok := parseID(c)
	if !ok {
		return
	}
	var req estadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estado is required"})
		return
	}

	v := h.tareas.NewView()
	// 状态转换检查需要当前行
	_ = h.tareas.Load(ctx, v)

	if err := h.tareas.CambiarEstado(ctx, v, id, req.Estado); err != nil {
		writeError(c, log, "CambiarEstado", err, nil)
		return
	}

	log.Info("CambiarEstado: success", zap.Int64("tarea_id", id), zap.String("estado", req.Estado))
	body := h.page(v)
	body["retry"] = v.LoadErr != nil
	c.JSON(http.StatusOK, body)
}
