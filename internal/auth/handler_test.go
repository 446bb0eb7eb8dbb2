package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aqua-backend/internal/apperr"
	"aqua-backend/internal/database"
	"aqua-backend/internal/dbtest"
	"aqua-backend/internal/models"
	"aqua-backend/internal/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserErrorMapsDuplicateEmail(t *testing.T) {
	dup := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	status, msg := apperr.Status(createUserError(dup))
	assert.Equal(t, 400, status)
	assert.Equal(t, "email already registered", msg)

	other := errors.New("connection reset")
	assert.Same(t, other, createUserError(other))
}

func TestBootstrapDuplicateEmail(t *testing.T) {
	db := dbtest.Open(t)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	_, err := CreateUser("Staff", "owner@example.com", "password123", models.RoleStaff)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: respond.ErrorHandler})
	app.Post("/api/auth/bootstrap", BootstrapHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/bootstrap",
		strings.NewReader(`{"name":"Owner","email":"Owner@Example.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "email already registered", body["message"])
	assert.EqualValues(t, 1, dbtest.Count(t, db, &models.User{}))
}
