package models

import "time"

// BaseModel carries the store-assigned identity and timestamps shared by all
// records. CreatedAt and UpdatedAt are maintained by GORM: set on insert,
// UpdatedAt refreshed on every update.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListPagination echoes the paging window of a public list response
type ListPagination struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
	Count int `json:"count"`
}

// PagedPagination is the richer paging block returned by admin listings
type PagedPagination struct {
	Limit int   `json:"limit"`
	Skip  int   `json:"skip"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}
