package entity

// Roles de operador. No hay cuentas de usuario: cada rol tiene un código de acceso.
const (
	RoleAdmin = "admin"
	RoleClerk = "clerk"
)
