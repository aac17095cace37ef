// Package password envuelve bcrypt con un costo configurable.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost costo por defecto en producción.
const DefaultCost = 12

// Hasher genera y compara hashes bcrypt (sal incluida en el hash).
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher construye el hasher. Un costo fuera de rango usa DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	// Hash de referencia para igualar el tiempo de respuesta cuando no existe el usuario.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("bizos-dummy-password"), cost)
	return &Hasher{cost: cost, dummy: dummy}
}

// Hash devuelve el hash bcrypt de plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(out), nil
}

// Compare informa si plaintext corresponde al hash. Nunca devuelve error:
// hash vacío o corrupto cuenta como no coincidencia.
func (h *Hasher) Compare(hash, plaintext string) bool {
	if hash == "" {
		h.Burn(plaintext)
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Burn consume el mismo tiempo que una comparación real.
func (h *Hasher) Burn(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
}
