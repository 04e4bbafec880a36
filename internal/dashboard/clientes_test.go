package dashboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rockalpatio/internal/collection"
	"rockalpatio/internal/dashboard"
	"rockalpatio/internal/model"
	"rockalpatio/internal/testutil"
)

func TestBuildClienteDefaultsAndValidation(t *testing.T) {
	c, err := dashboard.BuildCliente(dashboard.ClienteDraft{Nombre: " Colegio A "}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Colegio A", c.Nombre)
	assert.Equal(t, model.StageProspecto, c.EstadoPipeline)
	assert.Equal(t, model.PagoPendiente, c.EstadoPago)
	assert.Empty(t, c.Tipo)

	_, err = dashboard.BuildCliente(dashboard.ClienteDraft{Nombre: "  "}, nil)
	var fe *collection.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "nombre", fe.Field)

	_, err = dashboard.BuildCliente(dashboard.ClienteDraft{Nombre: "X", Tipo: "ong"}, nil)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "tipo", fe.Field)

	_, err = dashboard.BuildCliente(dashboard.ClienteDraft{Nombre: "X", EstadoPipeline: "ganado"}, nil)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "estado_pipeline", fe.Field)
}

func TestCambiarPipelineUpdatesListAndSelection(t *testing.T) {
	table := testutil.NewMemTable[model.Cliente]("clientes")
	table.Seed(model.Cliente{ID: 1, Nombre: "Colegio A", EstadoPipeline: model.StageProspecto, EstadoPago: model.PagoPendiente})
	clientes := dashboard.NewClientes(table, zap.NewNop())
	ctx := context.Background()

	v := clientes.NewView()
	require.NoError(t, clientes.Load(ctx, v))
	require.True(t, clientes.Select(v, 1))

	var duringReload model.PipelineStage
	table.OnSelect = func() { duringReload = v.Selected.EstadoPipeline }

	require.NoError(t, clientes.CambiarPipeline(ctx, v, 1, "cerrado"))

	assert.Equal(t, model.StageCerrado, duringReload, "detail copy updated before the reload")
	assert.Equal(t, model.StageCerrado, v.Items[0].EstadoPipeline)
	assert.Equal(t, model.StageCerrado, v.Selected.EstadoPipeline)

	stored, _ := table.Get(1)
	assert.Equal(t, "Colegio A", stored.Nombre)
	assert.Equal(t, model.PagoPendiente, stored.EstadoPago)
}

func TestCambiarPipelineRejectsUnknownStage(t *testing.T) {
	table := testutil.NewMemTable[model.Cliente]("clientes")
	table.Seed(model.Cliente{ID: 1, Nombre: "Colegio A", EstadoPipeline: model.StageProspecto})
	clientes := dashboard.NewClientes(table, zap.NewNop())
	v := clientes.NewView()
	require.NoError(t, clientes.Load(context.Background(), v))

	err := clientes.CambiarPipeline(context.Background(), v, 1, "perdido")

	var fe *collection.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, table.Updates)
}

func TestClientesTabsCountByStage(t *testing.T) {
	table := testutil.NewMemTable[model.Cliente]("clientes")
	table.Seed(
		model.Cliente{ID: 1, Nombre: "A", EstadoPipeline: model.StageProspecto},
		model.Cliente{ID: 2, Nombre: "B", EstadoPipeline: model.StageCerrado},
		model.Cliente{ID: 3, Nombre: "C", EstadoPipeline: model.StageProspecto},
	)
	clientes := dashboard.NewClientes(table, zap.NewNop())
	v := clientes.NewView()
	require.NoError(t, clientes.Load(context.Background(), v))

	tabs := clientes.Tabs(v)
	require.Len(t, tabs, len(model.PipelineStages)+1)
	assert.Equal(t, 3, tabs[0].Count)
	assert.Equal(t, "prospecto", tabs[1].ID)
	assert.Equal(t, 2, tabs[1].Count)
	assert.Equal(t, "Cerrado", tabs[6].Label)
	assert.Equal(t, 1, tabs[6].Count)

	require.NoError(t, clientes.SetFilter(v, "prospecto"))
	visible := clientes.Visible(v)
	require.Len(t, visible, 2)
	assert.Equal(t, "C", visible[0].Nombre)
}
