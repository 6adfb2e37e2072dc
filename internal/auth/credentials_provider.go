package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/hypernova-labs/dashboard-service/internal/database"
	"github.com/hypernova-labs/dashboard-service/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// StrategyCredentials es el identificador de la estrategia de credenciales
const StrategyCredentials = "credentials"

// UserStore define el acceso a usuarios que necesita el proveedor
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// CredentialsProvider verifica credenciales contra la base de usuarios y
// establece la sesión emitiendo un token firmado
type CredentialsProvider struct {
	users  UserStore
	secret string
	expiry time.Duration
	logger *logrus.Logger
}

// NewCredentialsProvider crea una nueva instancia del proveedor
func NewCredentialsProvider(users UserStore, secret string, expiry time.Duration, logger *logrus.Logger) *CredentialsProvider {
	return &CredentialsProvider{
		users:  users,
		secret: secret,
		expiry: expiry,
		logger: logger,
	}
}

// SignIn verifica las credenciales del formulario y retorna el token de
// sesión. Credenciales incorrectas producen un *Error CredentialsSignin;
// fallos del proveedor producen un *Error CallbackRouteError; cualquier
// otro error se propaga sin envolver.
func (p *CredentialsProvider) SignIn(ctx context.Context, strategy string, form url.Values) (string, error) {
	if strategy != StrategyCredentials {
		return "", NewError(ErrorTypeCallbackRoute, fmt.Errorf("unknown strategy %q", strategy))
	}

	email := form.Get("email")
	password := form.Get("password")
	if email == "" || password == "" {
		return "", NewError(ErrorTypeCredentialsSignin, errors.New("missing credentials"))
	}

	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", NewError(ErrorTypeCredentialsSignin, errors.New("unknown user"))
		}
		return "", NewError(ErrorTypeCallbackRoute, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewError(ErrorTypeCredentialsSignin, errors.New("password mismatch"))
	}

	token, err := GenerateSessionToken(user.ID, user.Email, p.secret, p.expiry)
	if err != nil {
		// Fallo de firma: no es un error de autenticación
		return "", err
	}

	p.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User signed in")

	return token, nil
}
