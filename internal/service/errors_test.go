package service

import (
	"fmt"
	"testing"
)

func TestErrorKindPredicates(t *testing.T) {
	cases := []struct {
		err          error
		notFound     bool
		validation   bool
		conflict     bool
		unauthorized bool
	}{
		{notFoundf("no existe usuario con id %d", 7), true, false, false, false},
		{validationf("el usuario no tiene email"), false, true, false, false},
		{conflictf("el usuario ya pertenece al equipo"), false, false, true, false},
		{Unauthorizedf("usuario no autorizado"), false, false, false, true},
		{fmt.Errorf("lookup: %w", notFoundf("equipo no encontrado con id %d", 3)), true, false, false, false},
		{fmt.Errorf("plain failure"), false, false, false, false},
		{nil, false, false, false, false},
	}

	for _, tc := range cases {
		if got := IsNotFound(tc.err); got != tc.notFound {
			t.Errorf("IsNotFound(%v) = %v, want %v", tc.err, got, tc.notFound)
		}
		if got := IsValidation(tc.err); got != tc.validation {
			t.Errorf("IsValidation(%v) = %v, want %v", tc.err, got, tc.validation)
		}
		if got := IsConflict(tc.err); got != tc.conflict {
			t.Errorf("IsConflict(%v) = %v, want %v", tc.err, got, tc.conflict)
		}
		if got := IsUnauthorized(tc.err); got != tc.unauthorized {
			t.Errorf("IsUnauthorized(%v) = %v, want %v", tc.err, got, tc.unauthorized)
		}
	}
}
