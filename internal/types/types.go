// Package types provides shared domain definitions used across the AgriMarket
// client packages. This package exists to break import cycles between the API
// client, the session controller, and the UI; types here are foundational
// records mirroring the backend's wire format with no complex dependencies.
package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Role is the account type assigned at registration.
type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleSupplier Role = "supplier"
	RoleBuyer    Role = "buyer"
)

// Category classifies a produce listing.
type Category string

const (
	CategoryGrains     Category = "grains"
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryLivestock  Category = "livestock"
)

// Region is one of the fixed service areas the marketplace covers.
type Region string

const (
	RegionAccra   Region = "accra"
	RegionAshanti Region = "ashanti"
	RegionWestern Region = "western"
)

// Unit is the quantity unit a listing is sold in.
type Unit string

const (
	UnitKg      Unit = "kg"
	UnitBags    Unit = "bags"
	UnitPieces  Unit = "pieces"
	UnitBundles Unit = "bundles"
)

// OrderStatus tracks the backend-owned lifecycle of an order.
// The client only displays it; transitions happen server-side.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPaid      OrderStatus = "paid"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Roles, Categories, Regions and Units enumerate the valid values in the
// order the registration and listing forms present them.
var (
	Roles      = []Role{RoleBuyer, RoleFarmer, RoleSupplier}
	Categories = []Category{CategoryVegetables, CategoryFruits, CategoryGrains, CategoryLivestock}
	Regions    = []Region{RegionAccra, RegionAshanti, RegionWestern}
	Units      = []Unit{UnitKg, UnitBags, UnitPieces, UnitBundles}
)

// UserProfile is the authenticated identity as reported by the backend.
// Immutable from the client's perspective.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone"`
	Region    Region    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// ProduceListing is a farmer-created sellable unit of agricultural goods.
// Availability and quantity are mutated only by the backend as orders land.
type ProduceListing struct {
	ID          string    `json:"id"`
	FarmerID    string    `json:"farmer_id"`
	FarmerName  string    `json:"farmer_name"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Unit        Unit      `json:"unit"`
	Region      Region    `json:"region"`
	ImageData   string    `json:"image_data,omitempty"`
	UniqueCode  string    `json:"unique_code"`
	CreatedAt   time.Time `json:"created_at"`
	IsAvailable bool      `json:"is_available"`
}

// PriceLabel renders the listing price the way the marketplace displays it.
func (p ProduceListing) PriceLabel() string {
	return fmt.Sprintf("GHS %.2f/%s", p.Price, p.Unit)
}

// Order is a buyer-initiated request to purchase a quantity of a listing.
type Order struct {
	ID               string      `json:"id"`
	ProduceID        string      `json:"produce_id"`
	FarmerID         string      `json:"farmer_id"`
	BuyerID          string      `json:"buyer_id"`
	BuyerName        string      `json:"buyer_name"`
	FarmerName       string      `json:"farmer_name"`
	ProduceTitle     string      `json:"produce_title"`
	Quantity         int         `json:"quantity"`
	UnitPrice        float64     `json:"unit_price"`
	TotalAmount      float64     `json:"total_amount"`
	Status           OrderStatus `json:"status"`
	PaymentReference string      `json:"payment_reference,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// DashboardStats carries the role-dependent aggregate counters. The backend
// only populates the fields relevant to the caller's role; the rest stay zero.
type DashboardStats struct {
	TotalProduce    int `json:"total_produce,omitempty"`
	ActiveProduce   int `json:"active_produce,omitempty"`
	TotalOrders     int `json:"total_orders,omitempty"`
	PendingOrders   int `json:"pending_orders,omitempty"`
	CompletedOrders int `json:"completed_orders,omitempty"`
}

// LoginInput is the login form record.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the form before submission.
func (in LoginInput) Validate() error {
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if in.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// RegisterInput is the registration form record. Role and Region default to
// buyer/accra when left unset, matching the registration form defaults.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
	Region   Region `json:"region"`
}

// Normalized returns a copy with defaults applied.
func (in RegisterInput) Normalized() RegisterInput {
	out := in
	if out.Role == "" {
		out.Role = RoleBuyer
	}
	if out.Region == "" {
		out.Region = RegionAccra
	}
	return out
}

// Validate checks the form before submission.
func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if in.Password == "" {
		return fmt.Errorf("password is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

// ProduceInput is the add/edit listing form record. Price and Quantity are
// kept as the raw form strings and parsed on validation, so a malformed
// number is caught before any request is issued.
type ProduceInput struct {
	Title       string
	Category    Category
	Description string
	Price       string
	Quantity    string
	Unit        Unit
	ImageData   string // base64-encoded, optional
}

// Parsed validates the form and returns the wire-ready payload.
func (in ProduceInput) Parsed() (ProduceCreate, error) {
	var out ProduceCreate
	if strings.TrimSpace(in.Title) == "" {
		return out, fmt.Errorf("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return out, fmt.Errorf("description is required")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || price < 0 {
		return out, fmt.Errorf("price must be a non-negative number")
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil || quantity < 0 {
		return out, fmt.Errorf("quantity must be a non-negative integer")
	}
	category := in.Category
	if category == "" {
		category = CategoryVegetables
	}
	unit := in.Unit
	if unit == "" {
		unit = UnitKg
	}
	return ProduceCreate{
		Title:       strings.TrimSpace(in.Title),
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Quantity:    quantity,
		Unit:        unit,
		ImageData:   in.ImageData,
	}, nil
}

// ProduceCreate is the POST /produce and PUT /produce/{id} request body.
type ProduceCreate struct {
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Unit        Unit     `json:"unit"`
	ImageData   string   `json:"image_data,omitempty"`
}

// OrderCreate is the POST /orders request body.
type OrderCreate struct {
	ProduceID string `json:"produce_id"`
	Quantity  int    `json:"quantity"`
}

// AuthResponse is the body returned by both login and register.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserProfile `json:"user"`
}
