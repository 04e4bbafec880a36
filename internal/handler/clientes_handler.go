package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rockalpatio/internal/dashboard"
	"rockalpatio/internal/model"
	"rockalpatio/internal/service/auth"
	"rockalpatio/pkg/logger"
)

type ClienteHandler struct {
	clientes *dashboard.Clientes
	logger   *zap.Logger
}

func NewClienteHandler(clientes *dashboard.Clientes, logger *zap.Logger) *ClienteHandler {
	return &ClienteHandler{clientes: clientes, logger: logger}
}

func (h *ClienteHandler) page(v *dashboard.ClientesView) gin.H {
	body := listBody(h.clientes.Manager, v)
	body["draft"] = v.Draft
	body["dialog_open"] = v.DialogOpen
	body["options"] = gin.H{
		"tipos":  model.ClientTypes,
		"etapas": model.PipelineStages,
		"pagos":  model.PaymentStatuses,
	}
	return body
}

// List 返回客户列表，可按 etapa 过滤，selected 打开详情
func (h *ClienteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	v := h.clientes.NewView()
	if err := h.clientes.SetFilter(v, c.Query("etapa")); err != nil {
		writeError(c, log, "ListClientes", err, nil)
		return
	}
	if err := h.clientes.Load(ctx, v); err != nil {
		loadFailed(c, log, "ListClientes", err)
		return
	}

	if raw := c.Query("selected"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || !h.clientes.Select(v, id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cliente not found"})
			return
		}
	}

	log.Debug("ListClientes: success", zap.Int("count", len(v.Items)), zap.String("filter", v.Filter))
	c.JSON(http.StatusOK, h.page(v))
}

func (h *ClienteHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	var draft dashboard.ClienteDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v := h.clientes.NewView()
	h.clientes.OpenDialog(v)
	v.Draft = draft
	if err := h.clientes.Create(ctx, v, auth.Actor(CurrentUser(c))); err != nil {
		writeError(c, log, "CreateCliente", err, gin.H{"draft": v.Draft, "dialog_open": v.DialogOpen})
		return
	}

	body := h.page(v)
	body["retry"] = v.LoadErr != nil
	c.JSON(http.StatusCreated, body)
}

type pipelineRequest struct {
	EstadoPipeline string `json:"estado_pipeline" binding:"required"`
}

// CambiarPipeline 修改客户所处的商务阶段
func (h *ClienteHandler) CambiarPipeline(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	id, ok := parseID(c)
	if !ok {
		return
	}
	var req pipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estado_pipeline is required"})
		return
	}

	v := h.clientes.NewView()
	// 先加载并打开详情，使修改后的详情与列表一致
	if err := h.clientes.Load(ctx, v); err == nil {
		h.clientes.Select(v, id)
	}

	if err := h.clientes.CambiarPipeline(ctx, v, id, req.EstadoPipeline); err != nil {
		writeError(c, log, "CambiarPipeline", err, nil)
		return
	}

	log.Info("CambiarPipeline: success", zap.Int64("cliente_id", id), zap.String("estado", req.EstadoPipeline))
	body := h.page(v)
	body["retry"] = v.LoadErr != nil
	c.JSON(http.StatusOK, body)
}
