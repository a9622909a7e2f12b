package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/form"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/pkg/jwt"
)

// AuthUseCase login contra el backend y manejo de la sesión local.
// store es opcional: el CLI persiste la sesión, el servicio HTTP solo devuelve el token.
type AuthUseCase struct {
	gateway   ports.BackendGateway
	store     ports.SessionStore
	jwtSecret string
	validate  *validator.Validate
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(gateway ports.BackendGateway, store ports.SessionStore, jwtSecret string) *AuthUseCase {
	return &AuthUseCase{
		gateway:   gateway,
		store:     store,
		jwtSecret: jwtSecret,
		validate:  form.NewValidator(),
		now:       time.Now,
	}
}

// Login valida las credenciales (sin red si faltan), llama al backend y completa
// user id y rol desde los claims cuando la respuesta no los trae.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, entity.Session, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, entity.Session{}, fmt.Errorf("%w: %s", domain.ErrValidation, form.ValidationMessage(err))
	}

	resp, err := uc.gateway.Login(ctx, in)
	if err != nil {
		return nil, entity.Session{}, err
	}

	if resp.UserID == "" || resp.Role == "" {
		if claims, cerr := jwt.ParseClaims(uc.jwtSecret, resp.Token); cerr == nil {
			if resp.UserID == "" {
				resp.UserID = claims.UserID
			}
			if resp.Role == "" {
				resp.Role = claims.Role
			}
		}
	}

	sess := entity.Session{Token: resp.Token, UserID: resp.UserID, Role: resp.Role, SavedAt: uc.now().UTC()}
	if uc.store != nil {
		if err := uc.store.Save(sess); err != nil {
			return nil, entity.Session{}, err
		}
	}
	return resp, sess, nil
}

// Logout borra la sesión local. Sin store no hace nada.
func (uc *AuthUseCase) Logout() error {
	if uc.store == nil {
		return nil
	}
	return uc.store.Clear()
}

// Current sesión guardada. Devuelve domain.ErrMissingToken si no hay token.
func (uc *AuthUseCase) Current() (entity.Session, error) {
	if uc.store == nil {
		return entity.Session{}, domain.ErrMissingToken
	}
	sess, err := uc.store.Load()
	if err != nil {
		return entity.Session{}, err
	}
	if !sess.Active() {
		return entity.Session{}, domain.ErrMissingToken
	}
	return sess, nil
}

// Claims decodifica el token de la sesión (verificado si hay secret).
func (uc *AuthUseCase) Claims(token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	claims, err := jwt.ParseClaims(uc.jwtSecret, token)
	if err != nil {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	return claims, nil
}
