package model

import "time"

// Objetivo is a row of the objetivos table.
type Objetivo struct {
	ID            int64           `json:"id"`
	Titulo        string          `json:"titulo"`
	Descripcion   string          `json:"descripcion"`
	Area          Area            `json:"area"`
	FechaInicio   *time.Time      `json:"fecha_inicio"`
	FechaFin      *time.Time      `json:"fecha_fin"`
	Estado        ObjectiveStatus `json:"estado"`
	Progreso      int             `json:"progreso"`
	ResponsableID int64           `json:"responsable_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (o Objetivo) EntityID() int64 { return o.ID }
