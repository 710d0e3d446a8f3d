package entity

// Role rol de un vendedor dentro del sistema. Enumeración cerrada: cualquier valor fuera de
// RoleMember, RoleManager y RoleAdmin se rechaza al verificar el token.
type Role string

// Roles válidos.
const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole convierte un string en Role. ok=false si no pertenece a la enumeración.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleMember, RoleManager, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Valid indica si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string { return string(r) }

// AuthUser usuario autenticado, construido a partir de los claims del token.
type AuthUser struct {
	ID    int64
	Email string
	Role  Role
}

// VisibilityScope alcance de los informes que un usuario puede listar.
type VisibilityScope int

const (
	// ScopeOwn solo los informes propios.
	ScopeOwn VisibilityScope = iota + 1
	// ScopeTeam los propios y los de sus subordinados directos.
	ScopeTeam
	// ScopeAll todos los informes.
	ScopeAll
)
