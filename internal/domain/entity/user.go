package entity

import "time"

// Roles de la aplicación. El rol viaja como claim en el JWT;
// el middleware RBAC decide sin consultar la base de datos.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleComprador = "comprador"
)

// User usuario de la aplicación. PasswordHash es bcrypt; nunca sale por la API.
type User struct {
	ID           string
	Email        string
	Username     string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
