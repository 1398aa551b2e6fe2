package auth

import "time"

const (
	RoleCustomer        = "CUSTOMER"
	RoleVendor          = "VENDOR"
	RoleDeliveryPartner = "DELIVERY_PARTNER"
	RoleAdmin           = "ADMIN"
)

// User is the domain entity.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// selfServiceRoles are the roles a caller may pick when registering.
var selfServiceRoles = map[string]bool{
	RoleCustomer:        true,
	RoleVendor:          true,
	RoleDeliveryPartner: true,
}
