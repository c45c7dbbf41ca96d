package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	BranchID uint `json:"branchId" gorm:"column:branch_id;uniqueIndex:idx_branch_room"`
	// Nullable so a room without a catalogued type doesn't force a zero FK insert.
	RoomTypeID *uint  `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex:idx_branch_room;type:varchar(50)"`

	Status        string  `json:"status"`
	Floor         string  `json:"floor" gorm:"type:varchar(10)"`
	PricePerNight float64 `json:"pricePerNight" gorm:"column:price_per_night;type:decimal(12,2)"`
	MaxOccupancy  int     `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description   string  `json:"description" gorm:"type:text"`

	Branch   Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
