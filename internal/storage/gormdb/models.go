package gormdb

import (
	"time"

	"bons-travail/internal/storage"
)

type workOrderModel struct {
	ID                    uint   `gorm:"primaryKey"`
	Code                  string `gorm:"size:64;not null;uniqueIndex"`
	Date                  string `gorm:"size:32"`
	DeclaredBy            string `gorm:"size:255"`
	Workstation           string `gorm:"size:255"`
	DeclarationTime       string `gorm:"size:32"`
	MachineStopped        string `gorm:"size:8"`
	InterventionStartTime string `gorm:"size:32"`
	InterventionEndTime   string `gorm:"size:32"`
	Technician            string `gorm:"size:255"`
	ProblemDescription    string `gorm:"size:512"`
	ActionTaken           string
	SparePartUsed         string `gorm:"size:64"`
	Observation           string
	Result                string `gorm:"size:32"`
	AcceptanceCondition   string
	MaintenanceDept       string `gorm:"size:16"`
	QualityDept           string `gorm:"size:16"`
	ProductionDept        string `gorm:"size:16"`
}

func (workOrderModel) TableName() string { return "work_orders" }

func newWorkOrderModel(wo storage.WorkOrder) workOrderModel {
	return workOrderModel{
		Code:                  wo.Code,
		Date:                  wo.Date,
		DeclaredBy:            wo.DeclaredBy,
		Workstation:           wo.Workstation,
		DeclarationTime:       wo.DeclarationTime,
		MachineStopped:        wo.MachineStopped,
		InterventionStartTime: wo.InterventionStartTime,
		InterventionEndTime:   wo.InterventionEndTime,
		Technician:            wo.Technician,
		ProblemDescription:    wo.ProblemDescription,
		ActionTaken:           wo.ActionTaken,
		SparePartUsed:         wo.SparePartUsed,
		Observation:           wo.Observation,
		Result:                wo.Result,
		AcceptanceCondition:   wo.AcceptanceCondition,
		MaintenanceDept:       wo.MaintenanceDept,
		QualityDept:           wo.QualityDept,
		ProductionDept:        wo.ProductionDept,
	}
}

func (m workOrderModel) toWorkOrder() storage.WorkOrder {
	return storage.WorkOrder{
		Code:                  m.Code,
		Date:                  m.Date,
		DeclaredBy:            m.DeclaredBy,
		Workstation:           m.Workstation,
		DeclarationTime:       m.DeclarationTime,
		MachineStopped:        m.MachineStopped,
		InterventionStartTime: m.InterventionStartTime,
		InterventionEndTime:   m.InterventionEndTime,
		Technician:            m.Technician,
		ProblemDescription:    m.ProblemDescription,
		ActionTaken:           m.ActionTaken,
		SparePartUsed:         m.SparePartUsed,
		Observation:           m.Observation,
		Result:                m.Result,
		AcceptanceCondition:   m.AcceptanceCondition,
		MaintenanceDept:       m.MaintenanceDept,
		QualityDept:           m.QualityDept,
		ProductionDept:        m.ProductionDept,
	}
}

type sparePartModel struct {
	ID            uint   `gorm:"primaryKey"`
	Code          string `gorm:"size:64;not null;uniqueIndex"`
	Replacement   string `gorm:"size:255"`
	ComponentName string `gorm:"size:255"`
	Quantity      int    `gorm:"not null;default:0"`
}

func (sparePartModel) TableName() string { return "spare_parts" }

func (m sparePartModel) toSparePart() storage.SparePart {
	return storage.SparePart{
		Code:          m.Code,
		Replacement:   m.Replacement,
		ComponentName: m.ComponentName,
		Quantity:      m.Quantity,
	}
}

type userModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:128;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:32;not null"`
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m userModel) toUser() storage.User {
	return storage.User{
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
	}
}

type optionModel struct {
	ID    uint   `gorm:"primaryKey"`
	Kind  string `gorm:"size:64;not null;uniqueIndex:idx_options_kind_value"`
	Value string `gorm:"size:255;not null;uniqueIndex:idx_options_kind_value"`
}

func (optionModel) TableName() string { return "options" }
