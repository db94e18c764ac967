package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderCreated   OrderStatus = "created"
	OrderFinished  OrderStatus = "finished"
	OrderCancelled OrderStatus = "cancelled"
)

type DeliveryMethod string

const (
	DeliveryCourier DeliveryMethod = "delivery"
	DeliveryPickup  DeliveryMethod = "pickup"
)

// Valid reports whether the value is one of the declared delivery methods.
func (d DeliveryMethod) Valid() bool {
	switch d {
	case DeliveryCourier, DeliveryPickup:
		return true
	}
	return false
}

// Availability is the tri-state catalog visibility of a component.
// A component starts out "no" (pending approval), becomes "yes" once
// approved, and "deleted" once withdrawn. Withdrawn rows stay in the
// table so historical orders keep resolving.
type Availability string

const (
	AvailabilityYes     Availability = "yes"
	AvailabilityNo      Availability = "no"
	AvailabilityDeleted Availability = "deleted"
)

// Valid reports whether the value is one of the declared availability states.
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityYes, AvailabilityNo, AvailabilityDeleted:
		return true
	}
	return false
}

// User is keyed by the caller-supplied Telegram id; ids are never generated.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username string `gorm:"type:varchar(64)" json:"username"`
}

func (User) TableName() string { return "user" }

type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderNumber string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"order_number"`
	UserID      int64          `gorm:"not null;index" json:"user_id"`
	TypeID      uint           `gorm:"not null" json:"type_id"`
	ShapeID     *uint          `json:"shape_id"`
	FlavourID   uint           `gorm:"not null" json:"flavour_id"`
	ConfitID    *uint          `json:"confit_id"`
	Comment     string         `gorm:"type:varchar(512)" json:"comment"`
	Delivery    DeliveryMethod `gorm:"type:varchar(16);not null" json:"delivery"`
	Status      OrderStatus    `gorm:"type:varchar(16);not null;default:'created'" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// User backs the user_id foreign key; deleting a user with live orders
	// is rejected by the store.
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Order) TableName() string { return "order" }

// Component backs all four catalog tables; the repository binds the
// concrete table at construction time.
type Component struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	Desc      string       `gorm:"column:desc;type:varchar(512)" json:"desc"`
	Available Availability `gorm:"type:varchar(16);not null;default:'no'" json:"available"`
}

// ComponentKind names one of the catalog tables.
type ComponentKind string

const (
	KindType    ComponentKind = "type"
	KindShape   ComponentKind = "shape"
	KindFlavour ComponentKind = "flavour"
	KindConfit  ComponentKind = "confit"
)

// ComponentKinds lists every catalog kind in a stable order.
func ComponentKinds() []ComponentKind {
	return []ComponentKind{KindType, KindShape, KindFlavour, KindConfit}
}

// TableName returns the catalog table backing the kind.
func (k ComponentKind) TableName() string { return string(k) }

// Migrate creates the full schema. Safe to call repeatedly; must not run
// concurrently with in-flight transactions.
func Migrate(db *gorm.DB) error {
	for _, kind := range ComponentKinds() {
		if err := db.Table(kind.TableName()).AutoMigrate(&Component{}); err != nil {
			return err
		}
	}
	return db.AutoMigrate(&User{}, &Order{})
}

// Drop removes the full schema. Intended for test teardown.
func Drop(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&Order{}, &User{}); err != nil {
		return err
	}
	for _, kind := range ComponentKinds() {
		if err := db.Migrator().DropTable(kind.TableName()); err != nil {
			return err
		}
	}
	return nil
}
