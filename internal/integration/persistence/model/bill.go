// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patungan/backend/internal/domain/entity"
)

// BillModel represents the bills table in the database.
type BillModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title         string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ServiceAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TipAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt     time.Time       `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the BillModel.
func (BillModel) TableName() string {
	return "bills"
}

// ToEntity converts a BillModel to a domain Bill entity.
func (m *BillModel) ToEntity() *entity.Bill {
	return &entity.Bill{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Description:   m.Description,
		TaxAmount:     m.TaxAmount,
		ServiceAmount: m.ServiceAmount,
		TipAmount:     m.TipAmount,
		TotalAmount:   m.TotalAmount,
		CreatedAt:     m.CreatedAt,
	}
}

// BillModelFromEntity creates a BillModel from a domain Bill entity.
// Amounts are rounded to cents at this boundary; the domain keeps the
// unrounded values.
func BillModelFromEntity(bill *entity.Bill) *BillModel {
	return &BillModel{
		ID:            bill.ID,
		UserID:        bill.UserID,
		Title:         bill.Title,
		Description:   bill.Description,
		TaxAmount:     bill.TaxAmount.Round(2),
		ServiceAmount: bill.ServiceAmount.Round(2),
		TipAmount:     bill.TipAmount.Round(2),
		TotalAmount:   bill.TotalAmount.Round(2),
		CreatedAt:     bill.CreatedAt,
	}
}

// BillItemModel represents the bill_items table in the database.
type BillItemModel struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BillID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name     string          `gorm:"type:varchar(100);not null"`
	Price    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Quantity int             `gorm:"not null"`
	Category string          `gorm:"type:varchar(50)"`

	Bill *BillModel `gorm:"foreignKey:BillID;references:ID"`
}

// TableName returns the table name for the BillItemModel.
func (BillItemModel) TableName() string {
	return "bill_items"
}

// ToEntity converts a BillItemModel to a domain BillItem entity.
func (m *BillItemModel) ToEntity() *entity.BillItem {
	return &entity.BillItem{
		ID:       m.ID,
		BillID:   m.BillID,
		Name:     m.Name,
		Price:    m.Price,
		Quantity: m.Quantity,
		Category: m.Category,
	}
}

// BillItemModelFromEntity creates a BillItemModel from a domain BillItem entity.
func BillItemModelFromEntity(item *entity.BillItem) *BillItemModel {
	return &BillItemModel{
		ID:       item.ID,
		BillID:   item.BillID,
		Name:     item.Name,
		Price:    item.Price.Round(2),
		Quantity: item.Quantity,
		Category: item.Category,
	}
}

// BillParticipantModel represents the bill_participants table in the database.
type BillParticipantModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BillID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(100);not null"`
	OwedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	Bill *BillModel `gorm:"foreignKey:BillID;references:ID"`
}

// TableName returns the table name for the BillParticipantModel.
func (BillParticipantModel) TableName() string {
	return "bill_participants"
}

// ToEntity converts a BillParticipantModel to a domain BillParticipant entity.
func (m *BillParticipantModel) ToEntity() *entity.BillParticipant {
	return &entity.BillParticipant{
		ID:         m.ID,
		BillID:     m.BillID,
		Name:       m.Name,
		OwedAmount: m.OwedAmount,
	}
}

// BillParticipantModelFromEntity creates a BillParticipantModel from a domain
// BillParticipant entity.
func BillParticipantModelFromEntity(p *entity.BillParticipant) *BillParticipantModel {
	return &BillParticipantModel{
		ID:         p.ID,
		BillID:     p.BillID,
		Name:       p.Name,
		OwedAmount: p.OwedAmount.Round(2),
	}
}

// ItemAssignmentModel represents the item_assignments table in the database.
type ItemAssignmentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;index"`

	Item        *BillItemModel        `gorm:"foreignKey:ItemID;references:ID"`
	Participant *BillParticipantModel `gorm:"foreignKey:ParticipantID;references:ID"`
}

// TableName returns the table name for the ItemAssignmentModel.
func (ItemAssignmentModel) TableName() string {
	return "item_assignments"
}

// ToEntity converts an ItemAssignmentModel to a domain ItemAssignment entity.
func (m *ItemAssignmentModel) ToEntity() *entity.ItemAssignment {
	return &entity.ItemAssignment{
		ID:            m.ID,
		ItemID:        m.ItemID,
		ParticipantID: m.ParticipantID,
	}
}

// ItemAssignmentModelFromEntity creates an ItemAssignmentModel from a domain
// ItemAssignment entity.
func ItemAssignmentModelFromEntity(a *entity.ItemAssignment) *ItemAssignmentModel {
	return &ItemAssignmentModel{
		ID:            a.ID,
		ItemID:        a.ItemID,
		ParticipantID: a.ParticipantID,
	}
}
