package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/bizos-api/internal/domain"
	"github.com/jhoicas/bizos-api/internal/domain/authz"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/pkg/password"
)

// MinPasswordLength largo mínimo de una contraseña nueva.
const MinPasswordLength = 8

// Principal identifica a quien posee una credencial: staff o cliente del portal.
type Principal struct {
	ID   string
	Kind string
}

// CredentialStore guarda y verifica hashes bcrypt de staff y clientes.
type CredentialStore struct {
	users   repository.UserRepository
	clients repository.ClientRepository
	hasher  *password.Hasher
}

// NewCredentialStore construye el almacén de credenciales.
func NewCredentialStore(users repository.UserRepository, clients repository.ClientRepository, hasher *password.Hasher) *CredentialStore {
	return &CredentialStore{users: users, clients: clients, hasher: hasher}
}

// Hash valida el largo y devuelve el hash para una fila que aún no existe.
func (s *CredentialStore) Hash(plaintext string) (string, error) {
	if len(plaintext) < MinPasswordLength {
		return "", domain.Invalid("password debe tener al menos %d caracteres", MinPasswordLength)
	}
	return s.hasher.Hash(plaintext)
}

// SetCredential reemplaza el hash del principal.
func (s *CredentialStore) SetCredential(ctx context.Context, p Principal, plaintext string) error {
	hash, err := s.Hash(plaintext)
	if err != nil {
		return err
	}
	switch p.Kind {
	case authz.KindStaff:
		return s.users.UpdatePasswordHash(ctx, p.ID, hash)
	case authz.KindClient:
		return s.clients.UpdatePasswordHash(ctx, p.ID, hash)
	}
	return fmt.Errorf("credenciales: kind desconocido %q", p.Kind)
}

// VerifyCredential compara en tiempo constante. Nunca devuelve error: un principal
// inexistente o sin credencial cuenta como no coincidencia.
func (s *CredentialStore) VerifyCredential(ctx context.Context, p Principal, plaintext string) bool {
	var hash string
	switch p.Kind {
	case authz.KindStaff:
		if u, err := s.users.GetByID(ctx, p.ID); err == nil && u != nil {
			hash = u.PasswordHash
		}
	case authz.KindClient:
		if c, err := s.clients.GetByID(ctx, p.ID); err == nil && c != nil {
			hash = c.PasswordHash
		}
	}
	return s.hasher.Compare(hash, plaintext)
}

// compare verifica contra un hash ya cargado (login por email).
func (s *CredentialStore) compare(hash, plaintext string) bool {
	return s.hasher.Compare(hash, plaintext)
}

// burn iguala el tiempo de respuesta cuando el email no existe.
func (s *CredentialStore) burn(plaintext string) {
	s.hasher.Burn(plaintext)
}
