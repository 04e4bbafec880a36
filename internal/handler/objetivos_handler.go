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

type ObjetivoHandler struct {
	objetivos *dashboard.Objetivos
	logger    *zap.Logger
}

func NewObjetivoHandler(objetivos *dashboard.Objetivos, logger *zap.Logger) *ObjetivoHandler {
	return &ObjetivoHandler{objetivos: objetivos, logger: logger}
}

func (h *ObjetivoHandler) page(v *dashboard.ObjetivosView) gin.H {
	body := listBody(h.objetivos.Manager, v)
	body["draft"] = v.Draft
	body["dialog_open"] = v.DialogOpen
	body["options"] = gin.H{
		"areas":   model.Areas,
		"estados": model.ObjectiveStatuses,
	}
	return body
}

func (h *ObjetivoHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	v := h.objetivos.NewView()
	if err := h.objetivos.SetFilter(v, c.Query("area")); err != nil {
		writeError(c, log, "ListObjetivos", err, nil)
		return
	}
	if err := h.objetivos.Load(ctx, v); err != nil {
		loadFailed(c, log, "ListObjetivos", err)
		return
	}

	log.Debug("ListObjetivos: success", zap.Int("count", len(v.Items)), zap.String("filter", v.Filter))
	c.JSON(http.StatusOK, h.page(v))
}

func (h *ObjetivoHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	var draft dashboard.ObjetivoDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v := h.objetivos.NewView()
	h.objetivos.OpenDialog(v)
	v.Draft = draft
	if err := h.objetivos.Create(ctx, v, auth.Actor(CurrentUser(c))); err != nil {
		writeError(c, log, "CreateObjetivo", err, gin.H{"draft": v.Draft, "dialog_open": v.DialogOpen})
		return
	}

	body := h.page(v)
	body["retry"] = v.LoadErr != nil
	c.JSON(http.StatusCreated, body)
}

type progresoRequest struct {
	// número o texto del slider
	Progreso any `json:"progreso"`
}

func (h *ObjetivoHandler) ActualizarProgreso(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithTrace(ctx, h.logger)

	id, ok := parseID(c)
	if !ok {
		return
	}
	var req progresoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Progreso == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "progreso is required"})
		return
	}

	v := h.objetivos.NewView()
	if err := h.objetivos.ActualizarProgreso(ctx, v, id, req.Progreso); err != nil {
		writeError(c, log, "ActualizarProgreso", err, nil)
		return
	}

	log.Info("ActualizarProgreso: success", zap.Int64("objetivo_id", id))
	body := h.page(v)
	body["retry"] = v.LoadErr != nil
	c.JSON(http.StatusOK, body)
}
