package dashboard

// Module is one card on the dashboard home.
type Module struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Path        string `json:"path,omitempty"`
	Disponible  bool   `json:"disponible"`
}

// Modules lists the dashboard sections. Those without a path are planned
// but not built yet.
func Modules() []Module {
	return []Module{
		{Nombre: "Mi Día", Descripcion: "Tus tareas y pendientes de hoy"},
		{Nombre: "Tareas", Descripcion: "Gestión operativa del equipo", Path: "/tareas", Disponible: true},
		{Nombre: "Objetivos", Descripcion: "Metas macro por área", Path: "/objetivos", Disponible: true},
		{Nombre: "Clientes", Descripcion: "Pipeline comercial y fichas", Path: "/clientes", Disponible: true},
		{Nombre: "Calendario", Descripcion: "Actividades y eventos"},
		{Nombre: "Panel Dirección", Descripcion: "Vista global del equipo"},
	}
}
