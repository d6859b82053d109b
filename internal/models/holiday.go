package models

// Holiday is a school closure excluded from business days.
type Holiday struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Name string `json:"name" validate:"required,max=100"`
}
