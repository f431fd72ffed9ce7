package storage

const (
	ItemKindMachine  = "machine"
	ItemKindSoftware = "software"
)

type CatalogItem struct {
	ID          int64   `json:"id"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
}

type Plan struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

func IsValidItemKind(kind string) bool {
	return kind == ItemKindMachine || kind == ItemKindSoftware
}
