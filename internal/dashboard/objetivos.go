package dashboard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rockalpatio/internal/collection"
	"rockalpatio/internal/model"
	"rockalpatio/internal/store"
)

// ObjetivoDraft is the new-objective form.
type ObjetivoDraft struct {
	Titulo      string     `json:"titulo"`
	Descripcion string     `json:"descripcion"`
	Area        string     `json:"area"`
	FechaInicio string     `json:"fecha_inicio"`
	FechaFin    string     `json:"fecha_fin"`
	Estado      string     `json:"estado"`
	Progreso    FormNumber `json:"progreso"`
}

func NewObjetivoDraft() ObjetivoDraft {
	return ObjetivoDraft{
		Estado:   string(model.ObjetivoActivo),
		Progreso: "0",
	}
}

// BuildObjetivo validates a draft and makes actor the responsible party.
func BuildObjetivo(d ObjetivoDraft, actor *store.Actor) (*model.Objetivo, error) {
	if actor == nil || actor.ID == 0 {
		return nil, collection.ErrUnauthorized
	}

	titulo := strings.TrimSpace(d.Titulo)
	if titulo == "" {
		return nil, collection.Required("titulo")
	}
	area, err := requiredEnum("area", d.Area, model.Areas)
	if err != nil {
		return nil, err
	}
	estado, err := enumValue("estado", d.Estado, model.ObjectiveStatuses, string(model.ObjetivoActivo))
	if err != nil {
		return nil, err
	}
	inicio, err := parseDate("fecha_inicio", d.FechaInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parseDate("fecha_fin", d.FechaFin)
	if err != nil {
		return nil, err
	}
	if inicio != nil && fin != nil && fin.Before(*inicio) {
		return nil, &collection.FieldError{Field: "fecha_fin", Reason: "is before fecha_inicio"}
	}
	progreso, err := ParseProgress(d.Progreso)
	if err != nil {
		return nil, err
	}

	return &model.Objetivo{
		Titulo:        titulo,
		Descripcion:   strings.TrimSpace(d.Descripcion),
		Area:          model.Area(area),
		FechaInicio:   inicio,
		FechaFin:      fin,
		Estado:        model.ObjectiveStatus(estado),
		Progreso:      progreso,
		ResponsableID: actor.ID,
	}, nil
}

type ObjetivosView = collection.View[model.Objetivo, ObjetivoDraft]

// Objetivos is the objectives page, filtered by area.
type Objetivos struct {
	*collection.Manager[model.Objetivo, ObjetivoDraft]
}

func NewObjetivos(table store.Table[model.Objetivo], logger *zap.Logger) *Objetivos {
	mgr := collection.NewManager(collection.Config[model.Objetivo, ObjetivoDraft]{
		Table:      table,
		Key:        func(o model.Objetivo) string { return string(o.Area) },
		Categories: model.Areas,
		NewDraft:   NewObjetivoDraft,
		Build:      BuildObjetivo,
		Fields: map[string]collection.FieldRule[model.Objetivo]{
			"progreso": {
				Normalize: func(raw any) (any, error) { return ParseProgress(raw) },
				Apply:     func(o *model.Objetivo, v any) { o.Progreso = v.(int) },
			},
		},
	}, logger)
	return &Objetivos{Manager: mgr}
}

// ActualizarProgreso sets an objective's progress. raw may be a number or
// the text of a range input; see ParseProgress.
func (o *Objetivos) ActualizarProgreso(ctx context.Context, v *ObjetivosView, id int64, raw any) error {
	return o.UpdateField(ctx, v, id, "progreso", raw)
}
