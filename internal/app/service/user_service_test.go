package service

import (
	"context"
	"errors"
	"testing"

	"github.com/linktrove/linktrove/internal/app/model"
)

func TestUserService_List_AdminOnlySeesUsers(t *testing.T) {
	users := &mockUserRepository{
		listFn: func(ctx context.Context, role string, limit, offset int) ([]model.User, int64, error) {
			if role != model.RoleUser {
				t.Fatalf("admin listing must filter to USER, got %q", role)
			}
			return nil, 0, nil
		},
	}

	svc := NewUserService(users)
	if _, _, err := svc.List(context.Background(), model.RoleAdmin, 20, 0); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
}

func TestUserService_List_SuperadminSeesEveryone(t *testing.T) {
	users := &mockUserRepository{
		listFn: func(ctx context.Context, role string, limit, offset int) ([]model.User, int64, error) {
			if role != "" {
				t.Fatalf("superadmin listing must not filter, got %q", role)
			}
			return nil, 0, nil
		},
	}

	svc := NewUserService(users)
	if _, _, err := svc.List(context.Background(), model.RoleSuperadmin, 20, 0); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
}

func TestUserService_Create_AdminForbidden(t *testing.T) {
	svc := NewUserService(&mockUserRepository{})

	_, err := svc.Create(context.Background(), model.RoleAdmin, CreateUserInput{
		Username: "x", Email: "x@example.com", Password: "longenough",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_UpdateRole_AdminCannotTouchAdmins(t *testing.T) {
	users := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleAdmin}, nil
		},
		updateFn: func(ctx context.Context, user *model.User) error {
			t.Fatal("update must not run when the target outranks USER")
			return nil
		},
	}

	svc := NewUserService(users)
	_, err := svc.UpdateRole(context.Background(), model.RoleAdmin, 5, model.RoleUser)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_UpdateRole_AdminCannotEscalate(t *testing.T) {
	users := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleUser}, nil
		},
		updateFn: func(ctx context.Context, user *model.User) error {
			t.Fatal("update must not run when an admin assigns an elevated role")
			return nil
		},
	}

	svc := NewUserService(users)
	for _, role := range []string{model.RoleAdmin, model.RoleSuperadmin} {
		_, err := svc.UpdateRole(context.Background(), model.RoleAdmin, 5, role)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("admin assigning %s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestUserService_UpdateRole_SuperadminPromotesUser(t *testing.T) {
	users := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleUser}, nil
		},
	}

	svc := NewUserService(users)
	user, err := svc.UpdateRole(context.Background(), model.RoleSuperadmin, 5, model.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRole returned error: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Fatalf("expected ADMIN, got %s", user.Role)
	}
}

func TestAuthService_Register_ForcesUserRole(t *testing.T) {
	var created *model.User
	users := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}

	svc := NewAuthService(users, testTokenManager())
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "shop", Email: "shop@example.com", Password: "longenough",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if created.Role != model.RoleUser {
		t.Fatalf("signup must always produce USER, got %s", created.Role)
	}
	if created.PasswordHash == "longenough" || created.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash := mustHash(t, "correct horse")
	users := &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 1, Username: username, PasswordHash: hash, Role: model.RoleUser}, nil
		},
	}

	svc := NewAuthService(users, testTokenManager())
	_, _, err := svc.Login(context.Background(), "shop", "battery staple")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserSameError(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, testTokenManager())

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_ReloadsUser(t *testing.T) {
	tokens := testTokenManager()
	refresh, err := tokens.IssueRefresh(1, "shop", model.RoleUser)
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}

	users := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.User, error) {
			// The role changed since the refresh token was minted.
			return &model.User{ID: id, Username: "shop", Role: model.RoleAdmin}, nil
		},
	}

	svc := NewAuthService(users, tokens)
	access, err := svc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	claims, err := tokens.Verify(access)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Role != model.RoleAdmin {
		t.Fatalf("fresh access token must carry the current role, got %s", claims.Role)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	tokens := testTokenManager()
	access, err := tokens.IssueAccess(1, "shop", model.RoleUser)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	users := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.User, error) {
			return &model.User{ID: id, Username: "shop", Role: model.RoleUser}, nil
		},
	}

	svc := NewAuthService(users, tokens)
	if _, err := svc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("an access token must not refresh a session, got %v", err)
	}
}
