package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"rockalpatio/internal/model"
	"rockalpatio/pkg/outbox"
)

var objetivoMapping = mapping[model.Objetivo]{
	table: "objetivos",
	columns: []string{
		"titulo", "descripcion", "area", "fecha_inicio", "fecha_fin",
		"estado", "progreso", "responsable_id",
	},
	values: func(o *model.Objetivo) []any {
		return []any{
			o.Titulo, o.Descripcion, string(o.Area), o.FechaInicio, o.FechaFin,
			string(o.Estado), o.Progreso, o.ResponsableID,
		}
	},
	dest: func(o *model.Objetivo) []any {
		return []any{
			&o.ID,
			&o.Titulo, &o.Descripcion, &o.Area, &o.FechaInicio, &o.FechaFin,
			&o.Estado, &o.Progreso, &o.ResponsableID,
			&o.CreatedAt,
		}
	},
	updatable: map[string]bool{"progreso": true},
}

// NewObjetivoRepository returns the objetivos table.
func NewObjetivoRepository(db *pgxpool.Pool, events *outbox.Repository, logger *zap.Logger) *Table[model.Objetivo] {
	return newTable(db, events, objetivoMapping, logger)
}
