package dto

// CreateShopRequest entrada para crear una tienda.
type CreateShopRequest struct {
	Label string `json:"label" validate:"required,max=100"`
}

// RenameShopRequest entrada para renombrar una tienda.
type RenameShopRequest struct {
	Label string `json:"label" validate:"required,max=100"`
}

// ShopResponse salida de una tienda.
type ShopResponse struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}
