package dashboard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rockalpatio/internal/collection"
	"rockalpatio/internal/model"
	"rockalpatio/internal/store"
)

// TareaDraft is the new-task form.
type TareaDraft struct {
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	Area        string `json:"area"`
	Prioridad   string `json:"prioridad"`
	Estado      string `json:"estado"`
	FechaLimite string `json:"fecha_limite"`
}

func NewTareaDraft() TareaDraft {
	return TareaDraft{
		Prioridad: string(model.PrioridadMedia),
		Estado:    string(model.TareaPendiente),
	}
}

// BuildTarea validates a draft and records actor as the creator.
func BuildTarea(d TareaDraft, actor *store.Actor) (*model.Tarea, error) {
	if actor == nil || actor.ID == 0 {
		return nil, collection.ErrUnauthorized
	}

	titulo := strings.TrimSpace(d.Titulo)
	if titulo == "" {
		return nil, collection.Required("titulo")
	}
	area, err := enumValue("area", d.Area, model.Areas, "")
	if err != nil {
		return nil, err
	}
	prioridad, err := enumValue("prioridad", d.Prioridad, model.Priorities, string(model.PrioridadMedia))
	if err != nil {
		return nil, err
	}
	estado, err := enumValue("estado", d.Estado, model.TaskStatuses, string(model.TareaPendiente))
	if err != nil {
		return nil, err
	}
	limite, err := parseDate("fecha_limite", d.FechaLimite)
	if err != nil {
		return nil, err
	}

	return &model.Tarea{
		Titulo:      titulo,
		Descripcion: strings.TrimSpace(d.Descripcion),
		Area:        model.Area(area),
		Prioridad:   model.Priority(prioridad),
		Estado:      model.TaskStatus(estado),
		FechaLimite: limite,
		CreadoPor:   actor.ID,
	}, nil
}

type TareasView = collection.View[model.Tarea, TareaDraft]

// Column is one kanban column.
type Column struct {
	ID    string        `json:"id"`
	Label string        `json:"label"`
	Count int           `json:"count"`
	Items []model.Tarea `json:"items"`
}

// Tareas is the kanban board page.
type Tareas struct {
	*collection.Manager[model.Tarea, TareaDraft]
}

func tareaColumn(t model.Tarea) string { return string(t.Estado) }

func NewTareas(table store.Table[model.Tarea], logger *zap.Logger) *Tareas {
	mgr := collection.NewManager(collection.Config[model.Tarea, TareaDraft]{
		Table:      table,
		Key:        tareaColumn,
		Categories: model.TaskStatuses,
		NewDraft:   NewTareaDraft,
		Build:      BuildTarea,
		Fields: map[string]collection.FieldRule[model.Tarea]{
			"estado": {
				Normalize: func(raw any) (any, error) {
					s, err := stringValue("estado", raw)
					if err != nil {
						return nil, err
					}
					if !model.TaskStatus(s).Valid() {
						return nil, collection.Undeclared("estado", s)
					}
					return model.TaskStatus(s), nil
				},
				Apply: func(t *model.Tarea, v any) { t.Estado = v.(model.TaskStatus) },
			},
		},
	}, logger)
	return &Tareas{Manager: mgr}
}

// Board groups the loaded tasks into one column per status, in board order.
func (t *Tareas) Board(v *TareasView) []Column {
	cols := make([]Column, 0, len(model.TaskStatuses))
	for _, s := range model.TaskStatuses {
		items := collection.Project(v.Items, s.ID, tareaColumn)
		cols = append(cols, Column{ID: s.ID, Label: s.Label, Count: len(items), Items: items})
	}
	return cols
}

// CambiarEstado moves a task to another column.
func (t *Tareas) CambiarEstado(ctx context.Context, v *TareasView, id int64, estado string) error {
	to := model.TaskStatus(strings.TrimSpace(estado))
	for _, ta := range v.Items {
		if ta.ID == id && to.Valid() && ta.Estado.Valid() && !ta.Estado.CanTransition(to) {
			return &collection.FieldError{Field: "estado", Reason: "transition not allowed from " + string(ta.Estado)}
		}
	}
	return t.UpdateField(ctx, v, id, "estado", string(to))
}
