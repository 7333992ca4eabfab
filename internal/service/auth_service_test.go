package service

import (
	"context"
	"testing"

	"isletmeapp/internal/config"
	"isletmeapp/internal/dto"
	"isletmeapp/internal/model"
	"isletmeapp/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cloned := *u
	r.users[u.Email] = &cloned
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newAuthFixture(t *testing.T) (AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 8}
	return NewAuthService(repo, cfg), repo
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Email: "admin@isletme.local", Name: "Yönetici", Password: "gizli-sifre", Role: model.RoleYonetici,
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@isletme.local", Password: "gizli-sifre"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleYonetici, resp.User.Role)
}

func TestLogin_WrongPasswordAndUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Email: "admin@isletme.local", Name: "Yönetici", Password: "gizli-sifre", Role: model.RoleYonetici,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "admin@isletme.local", Password: "yanlis"})
	assert.Error(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "yok@isletme.local", Password: "gizli-sifre"})
	assert.Error(t, err)
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Email: "eski@isletme.local", Name: "Eski Çalışan", Password: "gizli-sifre", Role: model.RoleIzleyici,
	})
	require.NoError(t, err)
	repo.users["eski@isletme.local"].Active = false

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "eski@isletme.local", Password: "gizli-sifre"})
	assert.Error(t, err)
}

func TestUpdateUserRole(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Email: "s1@isletme.local", Name: "Sorumlu", Password: "gizli-sifre", Role: model.RoleSorumlu1,
	})
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	require.NoError(t, svc.UpdateUserRole(ctx, id, dto.UpdateUserRoleRequest{Role: model.RoleSorumlu2}))
	assert.Equal(t, model.RoleSorumlu2, repo.users["s1@isletme.local"].Role)
}
