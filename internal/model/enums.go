package model

// Option is one declared value of an enumerated field together with the
// label shown to users.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Declared reports whether id is one of opts.
func Declared(opts []Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}

// LabelOf returns the label for id, or id itself when it is not declared.
func LabelOf(opts []Option, id string) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

// PipelineStage is the commercial stage of a client relationship.
type PipelineStage string

const (
	StageProspecto   PipelineStage = "prospecto"
	StagePropuesta   PipelineStage = "propuesta"
	StageNegociacion PipelineStage = "negociacion"
	StageContrato    PipelineStage = "contrato"
	StageEjecucion   PipelineStage = "ejecucion"
	StageCerrado     PipelineStage = "cerrado"
)

var PipelineStages = []Option{
	{ID: string(StageProspecto), Label: "Prospecto"},
	{ID: string(StagePropuesta), Label: "Propuesta enviada"},
	{ID: string(StageNegociacion), Label: "Negociación"},
	{ID: string(StageContrato), Label: "Contrato firmado"},
	{ID: string(StageEjecucion), Label: "En ejecución"},
	{ID: string(StageCerrado), Label: "Cerrado"},
}

func (s PipelineStage) Valid() bool { return Declared(PipelineStages, string(s)) }

// PaymentStatus tracks how much of a client's contract has been paid.
type PaymentStatus string

const (
	PagoPendiente PaymentStatus = "pendiente"
	PagoParcial   PaymentStatus = "parcial"
	PagoCompleto  PaymentStatus = "completo"
)

var PaymentStatuses = []Option{
	{ID: string(PagoPendiente), Label: "Pago pendiente"},
	{ID: string(PagoParcial), Label: "Pago parcial"},
	{ID: string(PagoCompleto), Label: "Pago completo"},
}

func (p PaymentStatus) Valid() bool { return Declared(PaymentStatuses, string(p)) }

// ClientType is the kind of organization a client is.
type ClientType string

var ClientTypes = []Option{
	{ID: "colegio", Label: "Colegio"},
	{ID: "empresa", Label: "Empresa"},
	{ID: "institucion", Label: "Institución"},
	{ID: "municipio", Label: "Municipio"},
	{ID: "otro", Label: "Otro"},
}

func (t ClientType) Valid() bool { return Declared(ClientTypes, string(t)) }

// Area is an organizational department.
type Area string

var Areas = []Option{
	{ID: "vinculacion", Label: "Vinculación"},
	{ID: "produccion", Label: "Producción"},
	{ID: "admin", Label: "Admin y Finanzas"},
	{ID: "comunicaciones", Label: "Comunicaciones"},
	{ID: "pedagogico", Label: "Desarrollo Pedagógico"},
	{ID: "direccion", Label: "Dirección"},
}

func (a Area) Valid() bool { return Declared(Areas, string(a)) }

// ObjectiveStatus is the lifecycle state of an objective.
type ObjectiveStatus string

const (
	ObjetivoActivo     ObjectiveStatus = "activo"
	ObjetivoPausado    ObjectiveStatus = "pausado"
	ObjetivoCompletado ObjectiveStatus = "completado"
)

var ObjectiveStatuses = []Option{
	{ID: string(ObjetivoActivo), Label: "Activo"},
	{ID: string(ObjetivoPausado), Label: "Pausado"},
	{ID: string(ObjetivoCompletado), Label: "Completado"},
}

func (s ObjectiveStatus) Valid() bool { return Declared(ObjectiveStatuses, string(s)) }

// TaskStatus doubles as the kanban column of a task.
type TaskStatus string

const (
	TareaPendiente  TaskStatus = "pendiente"
	TareaEnProceso  TaskStatus = "en_proceso"
	TareaBloqueada  TaskStatus = "bloqueada"
	TareaCompletada TaskStatus = "completada"
)

var TaskStatuses = []Option{
	{ID: string(TareaPendiente), Label: "Pendiente"},
	{ID: string(TareaEnProceso), Label: "En proceso"},
	{ID: string(TareaBloqueada), Label: "Bloqueada"},
	{ID: string(TareaCompletada), Label: "Completada"},
}

func (s TaskStatus) Valid() bool { return Declared(TaskStatuses, string(s)) }

// Priority of a task.
type Priority string

const (
	PrioridadAlta  Priority = "alta"
	PrioridadMedia Priority = "media"
	PrioridadBaja  Priority = "baja"
)

var Priorities = []Option{
	{ID: string(PrioridadAlta), Label: "Prioridad Alta"},
	{ID: string(PrioridadMedia), Label: "Prioridad Media"},
	{ID: string(PrioridadBaja), Label: "Prioridad Baja"},
}

func (p Priority) Valid() bool { return Declared(Priorities, string(p)) }
