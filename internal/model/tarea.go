package model

import "time"

// Tarea is a row of the tareas table.
type Tarea struct {
	ID          int64      `json:"id"`
	Titulo      string     `json:"titulo"`
	Descripcion string     `json:"descripcion"`
	Area        Area       `json:"area"`
	Prioridad   Priority   `json:"prioridad"`
	Estado      TaskStatus `json:"estado"`
	FechaLimite *time.Time `json:"fecha_limite"`
	CreadoPor   int64      `json:"creado_por"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (t Tarea) EntityID() int64 { return t.ID }
