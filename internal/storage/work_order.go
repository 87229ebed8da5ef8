package storage

import "sort"

// Имена полей бона, они же ключи JSON и колонки в БД
const (
	FieldCode                  = "code"
	FieldDate                  = "date"
	FieldDeclaredBy            = "declared_by"
	FieldWorkstation           = "workstation"
	FieldDeclarationTime       = "declaration_time"
	FieldMachineStopped        = "machine_stopped"
	FieldInterventionStartTime = "intervention_start_time"
	FieldInterventionEndTime   = "intervention_end_time"
	FieldTechnician            = "technician"
	FieldProblemDescription    = "problem_description"
	FieldActionTaken           = "action_taken"
	FieldSparePartUsed         = "spare_part_used"
	FieldObservation           = "observation"
	FieldResult                = "result"
	FieldAcceptanceCondition   = "acceptance_condition"
	FieldMaintenanceDept       = "maintenance_dept"
	FieldQualityDept           = "quality_dept"
	FieldProductionDept        = "production_dept"
)

// WorkOrderFields lists every work order field in storage order.
var WorkOrderFields = []string{
	FieldCode,
	FieldDate,
	FieldDeclaredBy,
	FieldWorkstation,
	FieldDeclarationTime,
	FieldMachineStopped,
	FieldInterventionStartTime,
	FieldInterventionEndTime,
	FieldTechnician,
	FieldProblemDescription,
	FieldActionTaken,
	FieldSparePartUsed,
	FieldObservation,
	FieldResult,
	FieldAcceptanceCondition,
	FieldMaintenanceDept,
	FieldQualityDept,
	FieldProductionDept,
}

// Допустимые значения перечислений
const (
	MachineStoppedYes = "Oui"
	MachineStoppedNo  = "Non"

	ResultAccepted              = "Accepter"
	ResultRefused               = "Refuser"
	ResultAcceptedWithCondition = "Accepter avec condition"

	DeptValidated    = "Valider"
	DeptNotValidated = "Non Valider"
)

var enumValues = map[string][]string{
	FieldMachineStopped:  {"", MachineStoppedYes, MachineStoppedNo},
	FieldResult:          {"", ResultAccepted, ResultRefused, ResultAcceptedWithCondition},
	FieldMaintenanceDept: {"", DeptValidated, DeptNotValidated},
	FieldQualityDept:     {"", DeptValidated, DeptNotValidated},
	FieldProductionDept:  {"", DeptValidated, DeptNotValidated},
}

// WorkOrder is a "bon de travail": one logged equipment stoppage.
type WorkOrder struct {
	Code                  string `json:"code"`
	Date                  string `json:"date"`
	DeclaredBy            string `json:"declared_by"`
	Workstation           string `json:"workstation"`
	DeclarationTime       string `json:"declaration_time"`
	MachineStopped        string `json:"machine_stopped"`
	InterventionStartTime string `json:"intervention_start_time"`
	InterventionEndTime   string `json:"intervention_end_time"`
	Technician            string `json:"technician"`
	ProblemDescription    string `json:"problem_description"`
	ActionTaken           string `json:"action_taken"`
	SparePartUsed         string `json:"spare_part_used"`
	Observation           string `json:"observation"`
	Result                string `json:"result"`
	AcceptanceCondition   string `json:"acceptance_condition"`
	MaintenanceDept       string `json:"maintenance_dept"`
	QualityDept           string `json:"quality_dept"`
	ProductionDept        string `json:"production_dept"`
}

// Fields is a partial work order: field name -> new value.
type Fields map[string]string

// Names returns the field names in sorted order.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (wo *WorkOrder) ref(field string) *string {
	switch field {
	case FieldCode:
		return &wo.Code
	case FieldDate:
		return &wo.Date
	case FieldDeclaredBy:
		return &wo.DeclaredBy
	case FieldWorkstation:
		return &wo.Workstation
	case FieldDeclarationTime:
		return &wo.DeclarationTime
	case FieldMachineStopped:
		return &wo.MachineStopped
	case FieldInterventionStartTime:
		return &wo.InterventionStartTime
	case FieldInterventionEndTime:
		return &wo.InterventionEndTime
	case FieldTechnician:
		return &wo.Technician
	case FieldProblemDescription:
		return &wo.ProblemDescription
	case FieldActionTaken:
		return &wo.ActionTaken
	case FieldSparePartUsed:
		return &wo.SparePartUsed
	case FieldObservation:
		return &wo.Observation
	case FieldResult:
		return &wo.Result
	case FieldAcceptanceCondition:
		return &wo.AcceptanceCondition
	case FieldMaintenanceDept:
		return &wo.MaintenanceDept
	case FieldQualityDept:
		return &wo.QualityDept
	case FieldProductionDept:
		return &wo.ProductionDept
	}
	return nil
}

// Get returns the value of a field; unknown names yield "".
func (wo WorkOrder) Get(field string) string {
	if p := wo.ref(field); p != nil {
		return *p
	}
	return ""
}

// Apply merges the supplied fields into the record. The code is never
// touched: it is the immutable key. Unknown names are ignored.
func (wo *WorkOrder) Apply(fields Fields) {
	for name, value := range fields {
		if name == FieldCode {
			continue
		}
		if p := wo.ref(name); p != nil {
			*p = value
		}
	}
}

// ToFields returns every field of the record.
func (wo WorkOrder) ToFields() Fields {
	f := make(Fields, len(WorkOrderFields))
	for _, name := range WorkOrderFields {
		f[name] = wo.Get(name)
	}
	return f
}

// WorkOrderFromFields builds a record; missing fields stay empty.
func WorkOrderFromFields(fields Fields) WorkOrder {
	var wo WorkOrder
	wo.Apply(fields)
	wo.Code = fields[FieldCode]
	return wo
}

// IsWorkOrderField reports whether name is a known work order field.
func IsWorkOrderField(name string) bool {
	var wo WorkOrder
	return wo.ref(name) != nil
}

// Validate checks the key and the enum fields.
func (wo WorkOrder) Validate() error {
	if wo.Code == "" {
		return NewValidationError(FieldCode, "обязательное поле")
	}
	return ValidateEnums(wo.ToFields())
}

// ValidateEnums checks that enum fields present in fields hold allowed values.
func ValidateEnums(fields Fields) error {
	for _, name := range fields.Names() {
		allowed, ok := enumValues[name]
		if !ok {
			continue
		}
		if !contains(allowed, fields[name]) {
			return NewValidationError(name, "недопустимое значение "+quote(fields[name]))
		}
	}
	return nil
}

// EnumValues returns the allowed values of an enum field, nil for free text.
func EnumValues(field string) []string {
	return enumValues[field]
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return "\"" + s + "\""
}
