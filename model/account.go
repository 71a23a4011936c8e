package model

type Account struct {
	DTO
	Username string `gorm:"unique;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null" json:"role"`
	Active   bool   `gorm:"default:true" json:"active"`
}

type CreateAccountInput struct {
	Username string `validate:"required" json:"username"`
	Password string `validate:"required,min=8" json:"password"`
	Role     string `validate:"required,oneof=ADMIN STAFF" json:"role"`
}
