package models_test

import (
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/models"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
)

func TestLogin(t *testing.T) {
	ctx := setupStore(t, "store-1")

	if _, err := models.CreateUser(ctx, &models.NewUser{
		StoreId: "store-1", Name: "Admin", Email: "admin@example.com", Password: "secret-pass",
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	token, err := models.Login(ctx, "admin@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	parsed, err := utils.JwtValidate(token)
	if err != nil || !parsed.Valid {
		t.Fatalf("JwtValidate: %v", err)
	}
	claims, ok := parsed.Claims.(*utils.JwtCustomClaim)
	if !ok || claims.StoreId != "store-1" {
		t.Fatalf("claims = %+v, want store-1 scope", parsed.Claims)
	}

	if _, err := models.Login(ctx, "admin@example.com", "wrong-pass"); err == nil {
		t.Fatal("login with wrong password succeeded")
	} else if err.Error() != "invalid email or password" {
		t.Fatalf("wrong-password error = %q, want the generic message", err)
	}
	if _, err := models.Login(ctx, "nobody@example.com", "secret-pass"); err == nil {
		t.Fatal("login with unknown email succeeded")
	} else if err.Error() != "invalid email or password" {
		t.Fatalf("unknown-email error = %q, want the generic message", err)
	}
}

func TestLoginRejectsDeactivatedUser(t *testing.T) {
	ctx := setupStore(t, "store-1")

	user, err := models.CreateUser(ctx, &models.NewUser{
		StoreId: "store-1", Name: "Admin", Email: "admin@example.com", Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := config.GetDB().Model(user).Update("is_active", utils.NewFalse()).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	if _, err := models.Login(ctx, "admin@example.com", "secret-pass"); err == nil {
		t.Fatal("login as deactivated user succeeded")
	} else if err.Error() != "user is inactive" {
		t.Fatalf("deactivated-user error = %q, want user is inactive", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	ctx := setupStore(t, "store-1")

	_, err := models.CreateUser(ctx, &models.NewUser{
		StoreId: "store-1", Name: "", Email: "not-an-email", Password: "short",
	})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations) != 3 {
		t.Fatalf("violations = %v, want 3 entries", verr.Violations)
	}

	if _, err := models.CreateUser(ctx, &models.NewUser{
		StoreId: "store-1", Name: "Admin", Email: "admin@example.com", Password: "secret-pass",
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := models.CreateUser(ctx, &models.NewUser{
		StoreId: "store-1", Name: "Clone", Email: "admin@example.com", Password: "secret-pass",
	}); err == nil {
		t.Fatal("duplicate email accepted")
	}
}
