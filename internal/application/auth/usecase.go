package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/domain"
	"github.com/invorya/almacen-api/pkg/session"
)

// Config credenciales del único principal (admin) y parámetros de la sesión.
// Viene de la configuración de arranque; nunca se lee de estado global.
type Config struct {
	AdminUser         string
	AdminPasswordHash string // bcrypt; vacío = login deshabilitado
	Secret            string
	MaxAge            time.Duration
}

// UseCase caso de uso de autenticación del administrador.
type UseCase struct {
	cfg Config
}

// NewUseCase construye el caso de uso.
func NewUseCase(cfg Config) *UseCase {
	return &UseCase{cfg: cfg}
}

// Login verifica usuario y password contra las credenciales configuradas y,
// si coinciden, emite el token de sesión con su expiración absoluta.
// Credenciales incorrectas (o hash sin configurar) devuelven ErrUnauthorized.
func (uc *UseCase) Login(in dto.LoginRequest) (token string, expires time.Time, err error) {
	if in.Username != uc.cfg.AdminUser || uc.cfg.AdminPasswordHash == "" {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.AdminPasswordHash), []byte(in.Password)); err != nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	return session.New(uc.cfg.Secret, in.Username, uc.cfg.MaxAge)
}
