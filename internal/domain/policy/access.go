// Package policy concentra el predicado de autorización por propiedad que
// comparten clientes, proyectos y albaranes: el creador siempre puede
// acceder, y los compañeros de compañía (mismo CIF) también.
package policy

import "github.com/jhoicas/albaranes-api/internal/domain/entity"

// CanAccess decide si user puede leer/modificar/eliminar un recurso creado
// por createdBy con identificador de compañía companyID. Un companyID vacío
// nunca concede acceso por compañía.
func CanAccess(user *entity.User, createdBy, companyID string) bool {
	if user == nil {
		return false
	}
	if createdBy == user.ID {
		return true
	}
	return companyID != "" && companyID == user.CompanyCIF()
}

// CanAccessNote variante para albaranes: el acceso por compañía se evalúa
// contra la lista enumerada de usuarios de la compañía del solicitante
// (companyUserIDs), no contra el CIF del recurso.
func CanAccessNote(user *entity.User, createdBy string, companyUserIDs []string) bool {
	if user == nil {
		return false
	}
	if createdBy == user.ID {
		return true
	}
	for _, id := range companyUserIDs {
		if id == createdBy {
			return true
		}
	}
	return false
}
