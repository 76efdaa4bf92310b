package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/policy"
)

func userWithCompany(id, cif string) *entity.User {
	return &entity.User{ID: id, CompanyData: entity.CompanyData{CIF: cif}}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name      string
		user      *entity.User
		createdBy string
		companyID string
		want      bool
	}{
		{"creador accede", userWithCompany("u1", ""), "u1", "", true},
		{"misma compañía accede", userWithCompany("u2", "B11111111"), "u1", "B11111111", true},
		{"otra compañía no accede", userWithCompany("u3", "C22222222"), "u1", "B11111111", false},
		{"sin compañía no accede a recurso ajeno", userWithCompany("u3", ""), "u1", "B11111111", false},
		{"companyID vacío nunca concede por compañía", userWithCompany("u2", ""), "u1", "", false},
		{"usuario nil", nil, "u1", "B11111111", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanAccess(tt.user, tt.createdBy, tt.companyID))
		})
	}
}

// Un autónomo sin companyData usa su NIF personal como identificador de compañía.
func TestCanAccess_Autonomo(t *testing.T) {
	u := &entity.User{ID: "u9", Autonomo: true, PersonalData: entity.PersonalData{NIF: "12345678Z"}}
	assert.True(t, policy.CanAccess(u, "otro", "12345678Z"))
	assert.False(t, policy.CanAccess(u, "otro", "87654321X"))
}

func TestCanAccessNote(t *testing.T) {
	caller := userWithCompany("u1", "B11111111")
	compas := []string{"u2", "u3"}

	assert.True(t, policy.CanAccessNote(caller, "u1", nil), "el creador siempre accede")
	assert.True(t, policy.CanAccessNote(caller, "u2", compas), "creador en la lista de la compañía")
	assert.False(t, policy.CanAccessNote(caller, "u4", compas), "creador fuera de la lista")
	assert.False(t, policy.CanAccessNote(nil, "u1", compas))
}
