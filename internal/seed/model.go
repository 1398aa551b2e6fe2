package seed

import "bandiwala/internal/pricing"

// File is the layout of a seed YAML document.
type File struct {
	Users   []User   `yaml:"users"`
	Vendors []Vendor `yaml:"vendors"`
}

type User struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type Vendor struct {
	ID         string `yaml:"id"`
	OwnerEmail string `yaml:"owner"`
	Name       string `yaml:"name"`
	Location   string `yaml:"location"`
	ImageURL   string `yaml:"image_url"`
	Items      []Item `yaml:"items"`
}

type Item struct {
	ID            string                `yaml:"id"`
	Name          string                `yaml:"name"`
	Description   string                `yaml:"description"`
	ImageURL      string                `yaml:"image_url"`
	Available     *bool                 `yaml:"available"`
	Subcategories []pricing.Subcategory `yaml:"subcategories"`
}

// IsAvailable defaults to true when the field is omitted.
func (i Item) IsAvailable() bool {
	return i.Available == nil || *i.Available
}

// Result counts the rows written by Apply.
type Result struct {
	Users   int
	Vendors int
	Items   int
}
