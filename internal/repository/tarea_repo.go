package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"rockalpatio/internal/model"
	"rockalpatio/pkg/outbox"
)

var tareaMapping = mapping[model.Tarea]{
	table: "tareas",
	columns: []string{
		"titulo", "descripcion", "area", "prioridad", "estado", "fecha_limite", "creado_por",
	},
	values: func(t *model.Tarea) []any {
		return []any{
			t.Titulo, t.Descripcion, string(t.Area), string(t.Prioridad), string(t.Estado),
			t.FechaLimite, t.CreadoPor,
		}
	},
	dest: func(t *model.Tarea) []any {
		return []any{
			&t.ID,
			&t.Titulo, &t.Descripcion, &t.Area, &t.Prioridad, &t.Estado,
			&t.FechaLimite, &t.CreadoPor,
			&t.CreatedAt,
		}
	},
	updatable: map[string]bool{"estado": true},
}

// NewTareaRepository returns the tareas table.
func NewTareaRepository(db *pgxpool.Pool, events *outbox.Repository, logger *zap.Logger) *Table[model.Tarea] {
	return newTable(db, events, tareaMapping, logger)
}
