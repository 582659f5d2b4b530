package dto

// LoginRequest código de acceso del operador.
type LoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// LoginResponse token emitido y rol resuelto.
type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
