// Package policy contiene las reglas de acceso sobre informes y datos maestros.
//
// Resumen de reglas:
//
//	ver informe       admin siempre; cualquiera el suyo; manager el de sus subordinados
//	comentar informe  admin siempre; manager el de sus subordinados; member nunca (tampoco el suyo)
//	editar informe    solo el dueño, sin importar el rol
//	datos maestros    solo admin
//
// Las funciones no tienen efectos secundarios. La única E/S es la consulta del jefe en
// IsSubordinateOf; si falla se registra un warning, se interpreta como "no es subordinado"
// y no se reintenta.
package policy

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/daily-report-api/internal/domain/entity"
)

// UserLookup es el contrato mínimo para resolver el jefe de un vendedor.
// Lo implementa repository.SalesPersonRepository.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*entity.SalesPerson, error)
}

// AccessPolicy decide qué operaciones puede hacer un usuario autenticado.
type AccessPolicy struct {
	users UserLookup
}

// NewAccessPolicy construye la política con el puerto de consulta de usuarios.
func NewAccessPolicy(users UserLookup) *AccessPolicy {
	return &AccessPolicy{users: users}
}

// IsSubordinateOf indica si targetUserID tiene como jefe directo a managerID.
// Uno mismo nunca es su propio subordinado: se responde false antes de consultar.
func (p *AccessPolicy) IsSubordinateOf(ctx context.Context, managerID, targetUserID int64) bool {
	if managerID == targetUserID {
		return false
	}
	target, err := p.users.GetByID(ctx, targetUserID)
	if err != nil {
		log.Warn().Err(err).
			Int64("manager_id", managerID).
			Int64("target_id", targetUserID).
			Msg("policy: no se pudo resolver el jefe, se deniega")
		return false
	}
	if target == nil {
		return false
	}
	return target.ReportsTo(managerID)
}

// CanViewReport indica si user puede ver un informe cuyo dueño es reportOwnerID.
func (p *AccessPolicy) CanViewReport(ctx context.Context, user entity.AuthUser, reportOwnerID int64) bool {
	if user.ID == reportOwnerID {
		return true
	}
	switch user.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleManager:
		return p.IsSubordinateOf(ctx, user.ID, reportOwnerID)
	case entity.RoleMember:
		return false
	default:
		return false
	}
}

// CanPostComment indica si user puede comentar (o revisar) un informe de reportOwnerID.
// Un member no comenta nunca, ni siquiera sus propios informes.
func (p *AccessPolicy) CanPostComment(ctx context.Context, user entity.AuthUser, reportOwnerID int64) bool {
	switch user.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleManager:
		return p.IsSubordinateOf(ctx, user.ID, reportOwnerID)
	case entity.RoleMember:
		return false
	default:
		return false
	}
}

// CanEditReport solo el dueño edita su informe; el rol no interviene (ni siquiera admin).
func (p *AccessPolicy) CanEditReport(user entity.AuthUser, reportOwnerID int64) bool {
	return user.ID == reportOwnerID
}

// CanManageMaster indica si user puede administrar vendedores y clientes.
func (p *AccessPolicy) CanManageMaster(user entity.AuthUser) bool {
	switch user.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleManager, entity.RoleMember:
		return false
	default:
		return false
	}
}

// ReportScope alcance del listado de informes, coherente con CanViewReport.
func (p *AccessPolicy) ReportScope(user entity.AuthUser) entity.VisibilityScope {
	switch user.Role {
	case entity.RoleAdmin:
		return entity.ScopeAll
	case entity.RoleManager:
		return entity.ScopeTeam
	case entity.RoleMember:
		return entity.ScopeOwn
	default:
		return entity.ScopeOwn
	}
}
