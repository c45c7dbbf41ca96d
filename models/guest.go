package models

import (
	"gorm.io/gorm"
)

type Guest struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `json:"email" gorm:"size:150"`
	Phone    string `json:"phone" gorm:"size:50"`
}
