package storage

type Resource struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Color    *string `json:"color"`
	IsActive bool    `json:"is_active"`
}
