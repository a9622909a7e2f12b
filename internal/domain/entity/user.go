package entity

import "time"

// Roles válidos. Cada rol tiene su propio tablero y conjunto de formularios.
const (
	RoleClerk      = "clerk"
	RoleAccountant = "accountant"
	RoleOwner      = "owner"
)

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	switch r {
	case RoleClerk, RoleAccountant, RoleOwner:
		return true
	}
	return false
}

// Session estado persistido del lado del cliente: token y user id, sin manejo de expiración.
type Session struct {
	Token   string    `json:"token"`
	UserID  string    `json:"user_id"`
	Role    string    `json:"role,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// Active indica si hay un token guardado.
func (s Session) Active() bool { return s.Token != "" }
