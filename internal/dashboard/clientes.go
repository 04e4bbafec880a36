package dashboard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rockalpatio/internal/collection"
	"rockalpatio/internal/model"
	"rockalpatio/internal/store"
)

// ClienteDraft is the new-client form.
type ClienteDraft struct {
	Nombre           string `json:"nombre"`
	Tipo             string `json:"tipo"`
	EstadoPipeline   string `json:"estado_pipeline"`
	ContactoNombre   string `json:"contacto_nombre"`
	ContactoCargo    string `json:"contacto_cargo"`
	ContactoEmail    string `json:"contacto_email"`
	ContactoTelefono string `json:"contacto_telefono"`
	Notas            string `json:"notas"`
	EstadoPago       string `json:"estado_pago"`
}

func NewClienteDraft() ClienteDraft {
	return ClienteDraft{
		EstadoPipeline: string(model.StageProspecto),
		EstadoPago:     string(model.PagoPendiente),
	}
}

// BuildCliente validates a draft. Clients need no acting user.
func BuildCliente(d ClienteDraft, _ *store.Actor) (*model.Cliente, error) {
	nombre := strings.TrimSpace(d.Nombre)
	if nombre == "" {
		return nil, collection.Required("nombre")
	}
	tipo, err := enumValue("tipo", d.Tipo, model.ClientTypes, "")
	if err != nil {
		return nil, err
	}
	stage, err := enumValue("estado_pipeline", d.EstadoPipeline, model.PipelineStages, string(model.StageProspecto))
	if err != nil {
		return nil, err
	}
	pago, err := enumValue("estado_pago", d.EstadoPago, model.PaymentStatuses, string(model.PagoPendiente))
	if err != nil {
		return nil, err
	}

	return &model.Cliente{
		Nombre:           nombre,
		Tipo:             model.ClientType(tipo),
		EstadoPipeline:   model.PipelineStage(stage),
		ContactoNombre:   strings.TrimSpace(d.ContactoNombre),
		ContactoCargo:    strings.TrimSpace(d.ContactoCargo),
		ContactoEmail:    strings.TrimSpace(d.ContactoEmail),
		ContactoTelefono: strings.TrimSpace(d.ContactoTelefono),
		Notas:            d.Notas,
		EstadoPago:       model.PaymentStatus(pago),
	}, nil
}

type ClientesView = collection.View[model.Cliente, ClienteDraft]

// Clientes is the client pipeline page.
type Clientes struct {
	*collection.Manager[model.Cliente, ClienteDraft]
}

func NewClientes(table store.Table[model.Cliente], logger *zap.Logger) *Clientes {
	mgr := collection.NewManager(collection.Config[model.Cliente, ClienteDraft]{
		Table:      table,
		Key:        func(c model.Cliente) string { return string(c.EstadoPipeline) },
		Categories: model.PipelineStages,
		NewDraft:   NewClienteDraft,
		Build:      BuildCliente,
		Fields: map[string]collection.FieldRule[model.Cliente]{
			"estado_pipeline": {
				Normalize: func(raw any) (any, error) {
					s, err := stringValue("estado_pipeline", raw)
					if err != nil {
						return nil, err
					}
					if !model.PipelineStage(s).Valid() {
						return nil, collection.Undeclared("estado_pipeline", s)
					}
					return model.PipelineStage(s), nil
				},
				Apply: func(c *model.Cliente, v any) { c.EstadoPipeline = v.(model.PipelineStage) },
			},
		},
	}, logger)
	return &Clientes{Manager: mgr}
}

// CambiarPipeline moves a client to another pipeline stage.
func (c *Clientes) CambiarPipeline(ctx context.Context, v *ClientesView, id int64, estado string) error {
	to := model.PipelineStage(strings.TrimSpace(estado))
	for _, cl := range v.Items {
		if cl.ID == id && to.Valid() && cl.EstadoPipeline.Valid() && !cl.EstadoPipeline.CanTransition(to) {
			return &collection.FieldError{Field: "estado_pipeline", Reason: "transition not allowed from " + string(cl.EstadoPipeline)}
		}
	}
	return c.UpdateField(ctx, v, id, "estado_pipeline", string(to))
}
