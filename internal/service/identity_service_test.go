package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/config"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/events"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	u := *user
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.nextID++
	f.users[u.ID] = &u
	return &u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) UpdatePersonal(ctx context.Context, id int64, firstName, lastName, email, nationality string) (*domain.User, error) {
	u := f.users[id]
	if u == nil {
		return nil, nil
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.Email = email
	u.Nationality = nationality
	return u, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, req *domain.UpdateUserRequest) (*domain.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	if u := f.users[id]; u != nil {
		u.PasswordHash = hash
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeTokenRepo struct {
	tokens map[string]int64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]int64{}}
}

func (f *fakeTokenRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenRepo) Consume(ctx context.Context, token string) (int64, error) {
	id := f.tokens[token]
	delete(f.tokens, token)
	return id, nil
}

func (f *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Auth.JWTSecret = "test-secret"
	return cfg
}

func TestEnsureForDraftCreatesIdentity(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	bus := &recordingBus{}
	svc := NewIdentityService(userRepo, tokenRepo, bus, testConfig())

	user, created, err := svc.EnsureForDraft(context.Background(), testDraft())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RoleClient, user.Role)
	assert.Equal(t, "ana.souza@example.com", user.Email)
	assert.Equal(t, "+5511988887777", user.Phone)
	assert.NotEmpty(t, user.PasswordHash)

	// A setup token was issued and the event carries it out to the mailer
	assert.Len(t, tokenRepo.tokens, 1)
	assert.Contains(t, bus.subjects, events.IdentityCreated)
}

func TestEnsureForDraftReusesProfileByPhone(t *testing.T) {
	userRepo := newFakeUserRepo()
	existing, err := userRepo.Create(context.Background(), &domain.User{
		Role:        domain.RoleClient,
		Email:       "old@example.com",
		FirstName:   "A.",
		LastName:    "S.",
		Phone:       "+5511988887777",
		Nationality: "Brazilian",
	})
	require.NoError(t, err)

	tokenRepo := newFakeTokenRepo()
	bus := &recordingBus{}
	svc := NewIdentityService(userRepo, tokenRepo, bus, testConfig())

	user, created, err := svc.EnsureForDraft(context.Background(), testDraft())
	require.NoError(t, err)

	// Same identity, refreshed personal fields, no new account
	assert.False(t, created)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, "Ana", user.FirstName)
	assert.Equal(t, "ana.souza@example.com", user.Email)
	assert.Len(t, userRepo.users, 1)
	assert.Empty(t, tokenRepo.tokens)
	assert.Empty(t, bus.subjects)
}

func TestSetPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	svc := NewIdentityService(userRepo, tokenRepo, &recordingBus{}, testConfig())

	user, _, err := svc.EnsureForDraft(context.Background(), testDraft())
	require.NoError(t, err)

	var token string
	for tok := range tokenRepo.tokens {
		token = tok
	}
	require.NotEmpty(t, token)

	updated, err := svc.SetPassword(context.Background(), &domain.SetPasswordRequest{Token: token, Password: "escolhida-pela-ana"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, user.ID, updated.ID)

	match, err := argon2id.ComparePasswordAndHash("escolhida-pela-ana", updated.PasswordHash)
	require.NoError(t, err)
	assert.True(t, match)

	// Tokens are single use
	_, err = svc.SetPassword(context.Background(), &domain.SetPasswordRequest{Token: token, Password: "outra-senha-123"})
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	hash, err := argon2id.CreateHash("senha-correta", argon2id.DefaultParams)
	require.NoError(t, err)
	_, err = userRepo.Create(context.Background(), &domain.User{
		Role:         domain.RoleClient,
		Email:        "ana.souza@example.com",
		PasswordHash: hash,
		FirstName:    "Ana",
		LastName:     "Souza",
	})
	require.NoError(t, err)

	svc := NewIdentityService(userRepo, newFakeTokenRepo(), &recordingBus{}, testConfig())

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "Ana.Souza@Example.com", Password: "senha-correta"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "ana.souza@example.com", resp.User.Email)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{Email: "ana.souza@example.com", Password: "senha-errada"})
	require.Error(t, err)

	_, err = svc.Login(context.Background(), &domain.LoginRequest{Email: "ninguem@example.com", Password: "tanto-faz"})
	require.Error(t, err)
}
