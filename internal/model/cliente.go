package model

import "time"

// Cliente is a row of the clientes table.
type Cliente struct {
	ID               int64         `json:"id"`
	Nombre           string        `json:"nombre"`
	Tipo             ClientType    `json:"tipo"`
	EstadoPipeline   PipelineStage `json:"estado_pipeline"`
	ContactoNombre   string        `json:"contacto_nombre"`
	ContactoCargo    string        `json:"contacto_cargo"`
	ContactoEmail    string        `json:"contacto_email"`
	ContactoTelefono string        `json:"contacto_telefono"`
	Notas            string        `json:"notas"`
	EstadoPago       PaymentStatus `json:"estado_pago"`
	CreatedAt        time.Time     `json:"created_at"`
}

func (c Cliente) EntityID() int64 { return c.ID }
