package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Category groups products
type Category struct {
	CategoryID   int32  `gorm:"primaryKey"`
	CategoryName string `gorm:"size:15;not null"`
	Description  *string
	Picture      []byte
	Attributes   JSON      `gorm:"type:json"`
	RowVersion   int32     `gorm:"not null"`
	Products     []Product `gorm:"foreignKey:CategoryID;references:CategoryID"`
}

// Customer is keyed by a client assigned guid
type Customer struct {
	CustomerID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerIDOld *string   `gorm:"column:customer_id_old;size:5"`
	CompanyName   string    `gorm:"size:40;not null"`
	ContactName   *string   `gorm:"size:30"`
	ContactTitle  *string   `gorm:"size:30"`
	Address       *string   `gorm:"size:60"`
	City          *string   `gorm:"size:15"`
	Region        *string   `gorm:"size:15"`
	PostalCode    *string   `gorm:"size:10"`
	Country       *string   `gorm:"size:15"`
	Phone         *string   `gorm:"size:24"`
	Fax           *string   `gorm:"size:24"`
	RowVersion    *int32    `breeze:"concurrency"`
	Orders        []Order   `gorm:"foreignKey:CustomerID;references:CustomerID"`
}

// Employee reports to a manager and manages direct reports
type Employee struct {
	EmployeeID          int32   `gorm:"primaryKey"`
	LastName            string  `gorm:"size:30;not null"`
	FirstName           string  `gorm:"size:30;not null"`
	Title               *string `gorm:"size:30"`
	TitleOfCourtesy     *string `gorm:"size:25"`
	BirthDate           *time.Time
	HireDate            *datatypes.Date
	Address             *string `gorm:"size:60"`
	City                *string `gorm:"size:15"`
	Region              *string `gorm:"size:15"`
	PostalCode          *string `gorm:"size:10"`
	Country             *string `gorm:"size:15"`
	HomePhone           *string `gorm:"size:24"`
	Extension           *string `gorm:"size:4"`
	Photo               []byte
	Notes               *string
	PhotoPath           *string `gorm:"size:255"`
	ReportsToEmployeeID *int32
	RowVersion          int32               `gorm:"not null"`
	FullName            string              `gorm:"->;-:migration"`
	Manager             *Employee           `gorm:"foreignKey:ReportsToEmployeeID;references:EmployeeID;belongsTo"`
	DirectReports       []Employee          `gorm:"foreignKey:ReportsToEmployeeID;references:EmployeeID"`
	EmployeeTerritories []EmployeeTerritory `gorm:"foreignKey:EmployeeID;references:EmployeeID"`
	Orders              []Order             `gorm:"foreignKey:EmployeeID;references:EmployeeID"`
}

// EmployeeTerritory links employees to the territories they cover
type EmployeeTerritory struct {
	ID          int32      `gorm:"primaryKey"`
	EmployeeID  int32      `gorm:"not null"`
	TerritoryID int32      `gorm:"not null"`
	RowVersion  int32      `gorm:"not null"`
	Employee    *Employee  `gorm:"foreignKey:EmployeeID;references:EmployeeID;belongsTo"`
	Territory   *Territory `gorm:"foreignKey:TerritoryID;references:TerritoryID;belongsTo"`
}

// Order is placed by a customer and taken by an employee
type Order struct {
	OrderID        int32      `gorm:"primaryKey"`
	CustomerID     *uuid.UUID `gorm:"type:uuid"`
	EmployeeID     *int32
	OrderDate      *time.Time
	RequiredDate   *time.Time
	ShippedDate    *time.Time
	Freight        *decimal.Decimal `gorm:"type:decimal(19,4)"`
	ShipName       *string          `gorm:"size:40"`
	ShipAddress    *string          `gorm:"size:60"`
	ShipCity       *string          `gorm:"size:15"`
	ShipRegion     *string          `gorm:"size:15"`
	ShipPostalCode *string          `gorm:"size:10"`
	ShipCountry    *string          `gorm:"size:15"`
	RowVersion     int32            `gorm:"not null"`
	Customer       *Customer        `gorm:"foreignKey:CustomerID;references:CustomerID;belongsTo"`
	Employee       *Employee        `gorm:"foreignKey:EmployeeID;references:EmployeeID;belongsTo"`
	OrderDetails   []OrderDetail    `gorm:"foreignKey:OrderID;references:OrderID"`
}

// InternationalOrder extends Order with customs information
type InternationalOrder struct {
	Order
	CustomsDescription string          `gorm:"size:100;not null"`
	ExciseTax          decimal.Decimal `gorm:"type:decimal(19,4);not null"`
}

// OrderDetail is keyed by (OrderID, ProductID)
type OrderDetail struct {
	OrderID    int32           `gorm:"primaryKey;autoIncrement:false"`
	ProductID  int32           `gorm:"primaryKey;autoIncrement:false"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Quantity   int16           `gorm:"not null"`
	Discount   float32         `gorm:"not null"`
	RowVersion int32           `gorm:"not null"`
	Order      *Order          `gorm:"foreignKey:OrderID;references:OrderID;belongsTo"`
	Product    *Product        `gorm:"foreignKey:ProductID;references:ProductID;belongsTo"`
}

// Product is supplied by a supplier and belongs to a category
type Product struct {
	ProductID        int32  `gorm:"primaryKey"`
	ProductName      string `gorm:"size:40;not null"`
	SupplierID       *int32
	CategoryID       *int32
	QuantityPerUnit  *string          `gorm:"size:20"`
	UnitPrice        *decimal.Decimal `gorm:"type:decimal(19,4)"`
	UnitsInStock     *int16
	UnitsOnOrder     *int16
	ReorderLevel     *int16
	Discontinued     bool `gorm:"not null;default:false"`
	DiscontinuedDate *time.Time
	RowVersion       int32     `gorm:"not null"`
	Category         *Category `gorm:"foreignKey:CategoryID;references:CategoryID;belongsTo"`
	Supplier         *Supplier `gorm:"foreignKey:SupplierID;references:SupplierID;belongsTo"`
}

// Region is referenced by description from previous employees
type Region struct {
	RegionID          int32              `gorm:"primaryKey;autoIncrement:false"`
	RegionDescription string             `gorm:"size:50;not null;uniqueIndex"`
	RowVersion        int32              `gorm:"not null"`
	Territories       []Territory        `gorm:"foreignKey:RegionID;references:RegionID"`
	PreviousEmployees []PreviousEmployee `gorm:"foreignKey:Region;references:RegionDescription"`
}

// Territory belongs to a region
type Territory struct {
	TerritoryID          int32               `gorm:"primaryKey;autoIncrement:false"`
	TerritoryDescription string              `gorm:"size:50;not null"`
	RegionID             int32               `gorm:"not null"`
	RowVersion           int32               `gorm:"not null"`
	Region               *Region             `gorm:"foreignKey:RegionID;references:RegionID;belongsTo"`
	EmployeeTerritories  []EmployeeTerritory `gorm:"foreignKey:TerritoryID;references:TerritoryID"`
}

// PreviousEmployee references Region through its description, not its key
type PreviousEmployee struct {
	EmployeeID      int32   `gorm:"primaryKey;autoIncrement:false"`
	LastName        string  `gorm:"size:20;not null"`
	FirstName       string  `gorm:"size:10;not null"`
	Title           *string `gorm:"size:30"`
	TitleOfCourtesy *string `gorm:"size:25"`
	BirthDate       *time.Time
	HireDate        *time.Time
	Region          *string `gorm:"size:50"`
	RowVersion      int32   `gorm:"not null"`
	EmpRegion       *Region `gorm:"foreignKey:Region;references:RegionDescription;belongsTo"`
}

// Supplier owns a Location value
type Supplier struct {
	SupplierID   int32    `gorm:"primaryKey"`
	CompanyName  string   `gorm:"size:40;not null"`
	ContactName  *string  `gorm:"size:30"`
	ContactTitle *string  `gorm:"size:30"`
	Location     Location `gorm:"embedded;embeddedPrefix:location_"`
	Phone        *string  `gorm:"size:24"`
	Fax          *string  `gorm:"size:24"`
	HomePage     *string
	RowVersion   int32     `gorm:"not null"`
	Products     []Product `gorm:"foreignKey:SupplierID;references:SupplierID"`
}

// Location is stored inline with its owner
type Location struct {
	Address    *string `gorm:"size:60"`
	City       *string `gorm:"size:15"`
	Region     *string `gorm:"size:15"`
	PostalCode *string `gorm:"size:10"`
	Country    *string `gorm:"size:15"`
}
