package dto

// RegisterRequest entrada para registro de vendedores.
type RegisterRequest struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// LoginRequest entrada para login (por nombre de usuario, no por email).
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PublicUser vista pública de un usuario (sin password).
type PublicUser struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
}

// AuthResponse salida de registro y login.
type AuthResponse struct {
	Mensaje string     `json:"mensaje"`
	Token   string     `json:"token"`
	Usuario PublicUser `json:"usuario"`
}

// TokenInfoResponse claims verificados del token (endpoint de depuración).
type TokenInfoResponse struct {
	OK       bool   `json:"ok"`
	Message  string `json:"message,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Rol      string `json:"rol,omitempty"`
	Expira   int64  `json:"exp,omitempty"`
}
