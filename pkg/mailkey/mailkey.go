// Package mailkey normaliza direcciones de correo a la clave de identidad
// inmutable del sistema: el email case-folded. Dos invitaciones con el mismo
// correo en distinta capitalización deben chocar contra el mismo registro.
package mailkey

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Fold devuelve el email normalizado: sin espacios alrededor y case-folded
// según Unicode (no un simple ToLower, para cubrir correos no ASCII).
func Fold(email string) string {
	return folder.String(strings.TrimSpace(email))
}
