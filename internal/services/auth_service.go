package services

import (
	"context"
	"errors"
	"net/url"

	"github.com/hypernova-labs/dashboard-service/internal/auth"
	"github.com/sirupsen/logrus"
)

// Mensajes de resultado de autenticación
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgSomethingWentWrong = "Something went wrong."
)

// SignInProvider define el proveedor de identidad externo
type SignInProvider interface {
	SignIn(ctx context.Context, strategy string, form url.Values) (string, error)
}

// AuthService delega la verificación de credenciales al proveedor de
// identidad y traduce su taxonomía de errores a un mensaje para el usuario
type AuthService struct {
	provider SignInProvider
	logger   *logrus.Logger
}

// NewAuthService crea una nueva instancia del servicio
func NewAuthService(provider SignInProvider, logger *logrus.Logger) *AuthService {
	return &AuthService{
		provider: provider,
		logger:   logger,
	}
}

// Authenticate intenta el sign-in con la estrategia de credenciales.
// Retorna el token de sesión en éxito, o un mensaje para el usuario cuando
// el proveedor reporta un error de autenticación. Cualquier otro error se
// propaga al error boundary del framework.
func (s *AuthService) Authenticate(ctx context.Context, prev string, form url.Values) (string, string, error) {
	token, err := s.provider.SignIn(ctx, auth.StrategyCredentials, form)
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			switch authErr.Type {
			case auth.ErrorTypeCredentialsSignin:
				return "", MsgInvalidCredentials, nil
			default:
				s.logger.WithError(err).Warn("Sign-in failed")
				return "", MsgSomethingWentWrong, nil
			}
		}
		return "", "", err
	}

	return token, "", nil
}
