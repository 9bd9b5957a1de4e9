package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/pkg/auth"
)

// fakeUserStore keeps users in memory and enforces email/phone
// uniqueness the way the sparse unique indexes do.
type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, bool, error) {
	for _, u := range f.users {
		if u.Email != "" && u.Email == email {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (f *fakeUserStore) FindByPhone(_ context.Context, phone string) (models.User, bool, error) {
	for _, u := range f.users {
		if u.Phone != "" && u.Phone == phone {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (models.User, bool, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, *user)
	return nil
}

func strptr(s string) *string { return &s }

func TestRegisterIssuesToken(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{})

	resp, err := svc.Register(context.Background(), models.RegisterInput{
		Name:     strptr("Ayesha"),
		Email:    strptr("ayesha@example.com"),
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "ayesha@example.com", resp.User.Email)

	subject, ok := auth.ResolveToken(resp.AccessToken)
	require.True(t, ok)
	assert.Equal(t, resp.User.ID, subject)
}

func TestRegisterRequiresEmailOrPhone(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{})

	_, err := svc.Register(context.Background(), models.RegisterInput{Password: "hunter22"})
	assert.ErrorIs(t, err, ErrEmailOrPhoneRequired)
}

func TestRegisterPhoneOnly(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{})

	resp, err := svc.Register(context.Background(), models.RegisterInput{
		Phone:    strptr("+923001234567"),
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "+923001234567", resp.User.Phone)
	assert.Empty(t, resp.User.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewAuthService(store)

	_, err := svc.Register(context.Background(), models.RegisterInput{
		Email:    strptr("dup@example.com"),
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), models.RegisterInput{
		Email:    strptr("dup@example.com"),
		Password: "other-pass",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewAuthService(store)

	_, err := svc.Register(context.Background(), models.RegisterInput{
		Phone:    strptr("+923001234567"),
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), models.RegisterInput{
		Phone:    strptr("+923001234567"),
		Password: "other-pass",
	})
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestLoginByEmail(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewAuthService(store)

	_, err := svc.Register(context.Background(), models.RegisterInput{
		Email:    strptr("login@example.com"),
		Password: "hunter22",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), models.LoginInput{
		Email:    strptr("login@example.com"),
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginUniformFailure(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewAuthService(store)

	_, err := svc.Register(context.Background(), models.RegisterInput{
		Email:    strptr("known@example.com"),
		Password: "hunter22",
	})
	require.NoError(t, err)

	// Unknown identifier and wrong password are indistinguishable.
	_, errUnknown := svc.Login(context.Background(), models.LoginInput{
		Email:    strptr("nobody@example.com"),
		Password: "hunter22",
	})
	_, errWrongPass := svc.Login(context.Background(), models.LoginInput{
		Email:    strptr("known@example.com"),
		Password: "wrong",
	})
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
}

func TestResolveIdentity(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewAuthService(store)

	resp, err := svc.Register(context.Background(), models.RegisterInput{
		Email:    strptr("ident@example.com"),
		Password: "hunter22",
	})
	require.NoError(t, err)

	ident, ok := svc.ResolveIdentity(context.Background(), resp.User.ID)
	require.True(t, ok)
	assert.Equal(t, resp.User.ID, ident.UserID)
	assert.Equal(t, models.RoleUser, ident.Role)

	_, ok = svc.ResolveIdentity(context.Background(), primitive.NewObjectID().Hex())
	assert.False(t, ok)
}
