package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

func TestNextCode(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		last   string
		want   string
	}{
		{"sin registros previos arranca en 1", "TR", "", "TR-1"},
		{"incrementa el sufijo del último código", "TR", "TR-41", "TR-42"},
		{"sufijo de varios dígitos", "TR", "TR-999", "TR-1000"},
		{"prefijo de producto", "PART", "PART-7", "PART-8"},
		{"prefijo de proveedor", "SUP", "SUP-12", "SUP-13"},
		{"código sin guión cae al valor inicial", "TR", "basura", "TR-1"},
		{"sufijo no numérico cae al valor inicial", "TR", "TR-abc", "TR-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.NextCode(tc.prefix, tc.last))
		})
	}
}

// Dos asignadores que leen el mismo último código derivan el mismo n:
// la carrera es benigna porque el constraint único del código la detecta
// en el insert y el caso de uso reintenta.
func TestNextCode_LecturaConcurrenteDerivaMismoCodigo(t *testing.T) {
	a := inventory.NextCode(inventory.PrefixTransaction, "TR-5")
	b := inventory.NextCode(inventory.PrefixTransaction, "TR-5")
	assert.Equal(t, a, b, "ambos lectores deben derivar TR-6; el unique constraint decide al ganador")
	assert.Equal(t, "TR-6", a)
}
