package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"rockalpatio/internal/model"
	"rockalpatio/pkg/outbox"
)

var clienteMapping = mapping[model.Cliente]{
	table: "clientes",
	columns: []string{
		"nombre", "tipo", "estado_pipeline",
		"contacto_nombre", "contacto_cargo", "contacto_email", "contacto_telefono",
		"notas", "estado_pago",
	},
	values: func(c *model.Cliente) []any {
		return []any{
			c.Nombre, string(c.Tipo), string(c.EstadoPipeline),
			c.ContactoNombre, c.ContactoCargo, c.ContactoEmail, c.ContactoTelefono,
			c.Notas, string(c.EstadoPago),
		}
	},
	dest: func(c *model.Cliente) []any {
		return []any{
			&c.ID,
			&c.Nombre, &c.Tipo, &c.EstadoPipeline,
			&c.ContactoNombre, &c.ContactoCargo, &c.ContactoEmail, &c.ContactoTelefono,
			&c.Notas, &c.EstadoPago,
			&c.CreatedAt,
		}
	},
	updatable: map[string]bool{"estado_pipeline": true},
}

// NewClienteRepository returns the clientes table.
func NewClienteRepository(db *pgxpool.Pool, events *outbox.Repository, logger *zap.Logger) *Table[model.Cliente] {
	return newTable(db, events, clienteMapping, logger)
}
