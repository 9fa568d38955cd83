package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefijos de código secuencial por tipo de registro.
// Entradas y salidas llevan ambas TR- pero con secuencias independientes
// (cada una se deriva de su propia tabla).
const (
	PrefixTransaction = "TR"
	PrefixProduct     = "PART"
	PrefixSupplier    = "SUP"
)

// NextCode deriva el siguiente código "<PREFIX>-<n>" a partir del último
// código existente (ordenado por creación descendente). Sin registros previos
// n = 1. La lectura es solo orientativa: dos asignadores concurrentes pueden
// derivar el mismo n; la unicidad real la garantiza el constraint único de la
// columna al hacer commit, y el caso de uso reintenta ante ErrCodeCollision.
func NextCode(prefix, lastCode string) string {
	n := 1
	if lastCode != "" {
		if _, suffix, found := strings.Cut(lastCode, "-"); found {
			if last, err := strconv.Atoi(suffix); err == nil {
				n = last + 1
			}
		}
	}
	return fmt.Sprintf("%s-%d", prefix, n)
}
