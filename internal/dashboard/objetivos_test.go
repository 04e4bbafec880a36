package dashboard_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rockalpatio/internal/collection"
	"rockalpatio/internal/dashboard"
	"rockalpatio/internal/model"
	"rockalpatio/internal/store"
	"rockalpatio/internal/testutil"
)

var responsable = &store.Actor{ID: 7, Email: "direccion@rockalpatio.cl"}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		raw  any
		want int
	}{
		{nil, 0},
		{"", 0},
		{"65", 65},
		{65, 65},
		{float64(65), 65},
		{"130", 100},
		{-20, 0},
		{"62", 60},
		{"63", 65},
		{"47.5", 50},
		{json.Number("85"), 85},
		{dashboard.FormNumber("100"), 100},
	}
	for _, tt := range tests {
		got, err := dashboard.ParseProgress(tt.raw)
		require.NoError(t, err, "%v", tt.raw)
		assert.Equal(t, tt.want, got, "%v", tt.raw)
	}

	for _, bad := range []any{"mucho", true, "NaN"} {
		_, err := dashboard.ParseProgress(bad)
		var fe *collection.FieldError
		assert.ErrorAs(t, err, &fe, "%v", bad)
	}
}

func TestFormNumberAcceptsStringsAndNumbers(t *testing.T) {
	var d dashboard.ObjetivoDraft
	require.NoError(t, json.Unmarshal([]byte(`{"titulo":"x","progreso":"35"}`), &d))
	assert.Equal(t, dashboard.FormNumber("35"), d.Progreso)

	require.NoError(t, json.Unmarshal([]byte(`{"progreso":40}`), &d))
	assert.Equal(t, dashboard.FormNumber("40"), d.Progreso)

	var empty dashboard.ObjetivoDraft
	require.NoError(t, json.Unmarshal([]byte(`{"progreso":null}`), &empty))
	assert.Equal(t, dashboard.FormNumber(""), empty.Progreso)
}

func TestBuildObjetivoNormalizes(t *testing.T) {
	o, err := dashboard.BuildObjetivo(dashboard.ObjetivoDraft{
		Titulo:      "Llegar a 20 colegios",
		Area:        "vinculacion",
		FechaInicio: "2026-03-01",
		FechaFin:    "",
		Progreso:    "130",
	}, responsable)
	require.NoError(t, err)

	assert.Equal(t, 100, o.Progreso)
	assert.Equal(t, model.ObjetivoActivo, o.Estado)
	assert.Equal(t, int64(7), o.ResponsableID)
	require.NotNil(t, o.FechaInicio)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *o.FechaInicio)
	assert.Nil(t, o.FechaFin, "empty date is stored as absent")
}

func TestBuildObjetivoValidation(t *testing.T) {
	var fe *collection.FieldError

	_, err := dashboard.BuildObjetivo(dashboard.ObjetivoDraft{Titulo: "x", Area: "vinculacion"}, nil)
	assert.ErrorIs(t, err, collection.ErrUnauthorized)

	_, err = dashboard.BuildObjetivo(dashboard.ObjetivoDraft{Area: "vinculacion"}, responsable)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "titulo", fe.Field)

	_, err = dashboard.BuildObjetivo(dashboard.ObjetivoDraft{Titulo: "x"}, responsable)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "area", fe.Field)

	_, err = dashboard.BuildObjetivo(dashboard.ObjetivoDraft{Titulo: "x", Area: "ventas"}, responsable)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "area", fe.Field)

	_, err = dashboard.BuildObjetivo(dashboard.ObjetivoDraft{Titulo: "x", Area: "admin", FechaInicio: "01/03/2026"}, responsable)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "fecha_inicio", fe.Field)

	_, err = dashboard.BuildObjetivo(dashboard.ObjetivoDraft{Titulo: "x", Area: "admin", FechaInicio: "2026-05-01", FechaFin: "2026-04-01"}, responsable)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "fecha_fin", fe.Field)
}

func TestCreateObjetivoPersistsNormalizedDraft(t *testing.T) {
	table := testutil.NewMemTable[model.Objetivo]("objetivos")
	objetivos := dashboard.NewObjetivos(table, zap.NewNop())
	ctx := context.Background()

	v := objetivos.NewView()
	require.NoError(t, objetivos.Load(ctx, v))
	objetivos.OpenDialog(v)
	v.Draft = dashboard.ObjetivoDraft{Titulo: "Nuevo taller", Area: "pedagogico", Progreso: "130"}

	require.NoError(t, objetivos.Create(ctx, v, responsable))

	require.Len(t, v.Items, 1)
	assert.Equal(t, 100, v.Items[0].Progreso, "never persisted as 130")
	assert.Equal(t, model.Area("pedagogico"), v.Items[0].Area)
	assert.Nil(t, v.Items[0].FechaInicio)
	assert.NotZero(t, v.Items[0].ID)
	assert.False(t, v.DialogOpen)
	assert.Equal(t, dashboard.NewObjetivoDraft(), v.Draft)
}

func TestActualizarProgresoOnlyTouchesProgress(t *testing.T) {
	inicio := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	table := testutil.NewMemTable[model.Objetivo]("objetivos")
	table.Seed(
		model.Objetivo{ID: 1, Titulo: "A", Area: "admin", Estado: model.ObjetivoActivo, Progreso: 10, FechaInicio: &inicio, ResponsableID: 7},
		model.Objetivo{ID: 2, Titulo: "B", Area: "direccion", Estado: model.ObjetivoPausado, Progreso: 40, ResponsableID: 7},
	)
	objetivos := dashboard.NewObjetivos(table, zap.NewNop())
	ctx := context.Background()

	before, _ := table.Get(1)
	otherBefore := table.Raw(2)

	v := objetivos.NewView()
	require.NoError(t, objetivos.Load(ctx, v))
	require.NoError(t, objetivos.ActualizarProgreso(ctx, v, 1, 65))

	after, _ := table.Get(1)
	assert.Equal(t, 65, after.Progreso)
	after.Progreso = before.Progreso
	assert.Equal(t, before, after)
	assert.Equal(t, otherBefore, table.Raw(2))

	require.NoError(t, objetivos.ActualizarProgreso(ctx, v, 2, "130"))
	stored, _ := table.Get(2)
	assert.Equal(t, 100, stored.Progreso)
}

func TestObjetivosFilterByArea(t *testing.T) {
	table := testutil.NewMemTable[model.Objetivo]("objetivos")
	table.Seed(
		model.Objetivo{ID: 1, Titulo: "A", Area: "admin"},
		model.Objetivo{ID: 2, Titulo: "B", Area: "produccion"},
	)
	objetivos := dashboard.NewObjetivos(table, zap.NewNop())
	v := objetivos.NewView()
	require.NoError(t, objetivos.Load(context.Background(), v))

	require.NoError(t, objetivos.SetFilter(v, "produccion"))
	visible := objetivos.Visible(v)
	require.Len(t, visible, 1)
	assert.Equal(t, "B", visible[0].Titulo)

	require.NoError(t, objetivos.SetFilter(v, "todas"))
	assert.Len(t, objetivos.Visible(v), 2)
}
