package mailkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Dos capitalizaciones del mismo correo deben producir la misma clave.
func TestFold_MismaClaveParaCapitalizacionesDistintas(t *testing.T) {
	assert.Equal(t, Fold("Juan.Perez@Empresa.CO"), Fold("juan.perez@empresa.co"))
	assert.Equal(t, "ana@fijosdn.co", Fold("  ANA@FijosDN.co "))
}
