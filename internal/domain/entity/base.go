package entity

// Base carries the autoincrement primary key shared by every stored row.
type Base struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
}

// GetID returns the primary key.
func (b *Base) GetID() uint { return b.ID }

// SetID overwrites the primary key.
func (b *Base) SetID(id uint) { b.ID = id }

// Identifiable is satisfied by pointers to every entity embedding Base.
type Identifiable interface {
	GetID() uint
	SetID(id uint)
}
