package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customs-receipts/internal/application/auth"
	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/pkg/jwt"
)

type fakeGateway struct {
	ports.BackendGateway
	resp  *dto.LoginResponse
	err   error
	calls int
}

func (g *fakeGateway) Login(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	r := *g.resp
	return &r, nil
}

type memStore struct{ sess entity.Session }

func (m *memStore) Load() (entity.Session, error) { return m.sess, nil }
func (m *memStore) Save(s entity.Session) error   { m.sess = s; return nil }
func (m *memStore) Clear() error                  { m.sess = entity.Session{}; return nil }

func TestLogin_SinPasswordNoLlamaAlBackend(t *testing.T) {
	gw := &fakeGateway{}
	uc := auth.NewAuthUseCase(gw, nil, "")

	_, _, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, gw.calls)
}

func TestLogin_CompletaRolDesdeClaimsYGuarda(t *testing.T) {
	tok, err := jwt.Generate("backend-secret", "u-7", entity.RoleAccountant, "backend", 60)
	require.NoError(t, err)

	gw := &fakeGateway{resp: &dto.LoginResponse{Token: tok}}
	store := &memStore{}
	uc := auth.NewAuthUseCase(gw, store, "")

	resp, sess, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "u-7", resp.UserID)
	assert.Equal(t, entity.RoleAccountant, resp.Role)
	assert.Equal(t, tok, store.sess.Token)
	assert.Equal(t, sess, store.sess)

	cur, err := uc.Current()
	require.NoError(t, err)
	assert.Equal(t, "u-7", cur.UserID)

	require.NoError(t, uc.Logout())
	_, err = uc.Current()
	assert.ErrorIs(t, err, domain.ErrMissingToken)
}

func TestLogin_ErrorDelBackend(t *testing.T) {
	gw := &fakeGateway{err: domain.ErrUnauthorized}
	store := &memStore{}
	uc := auth.NewAuthUseCase(gw, store, "")

	_, _, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "bad"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, store.sess.Active(), "no se guarda sesión si el login falla")
}

func TestClaims(t *testing.T) {
	uc := auth.NewAuthUseCase(&fakeGateway{}, nil, "s3cret")

	_, err := uc.Claims("")
	assert.ErrorIs(t, err, domain.ErrMissingToken)

	_, err = uc.Claims("basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	tok, _ := jwt.Generate("s3cret", "u-1", entity.RoleOwner, "t", 5)
	c, err := uc.Claims(tok)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, c.Role)
}
