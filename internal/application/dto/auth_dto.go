package dto

// LoginRequest credenciales del administrador.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
