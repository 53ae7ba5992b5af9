package enums

import "fmt"

// Role classifies an authenticated user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role %q", value)
	}
	return role, nil
}

// OrderStatus tracks settlement progress of an order.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusCanceled OrderStatus = "canceled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCanceled
}

// PartCategory groups catalog listings for storefront filtering.
type PartCategory string

const (
	CategoryBrakes     PartCategory = "brakes"
	CategoryEngine     PartCategory = "engine"
	CategorySuspension PartCategory = "suspension"
	CategoryElectrical PartCategory = "electrical"
	CategoryFilters    PartCategory = "filters"
	CategoryBody       PartCategory = "body"
	CategoryAccessory  PartCategory = "accessory"
)

func (c PartCategory) IsValid() bool {
	switch c {
	case CategoryBrakes, CategoryEngine, CategorySuspension,
		CategoryElectrical, CategoryFilters, CategoryBody, CategoryAccessory:
		return true
	}
	return false
}

func ParsePartCategory(value string) (PartCategory, error) {
	category := PartCategory(value)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid part category %q", value)
	}
	return category, nil
}
