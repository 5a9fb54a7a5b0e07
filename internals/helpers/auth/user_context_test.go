package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserIDFromToken(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name   string
		local  any
		status int
	}{
		{"string", id.String(), fiber.StatusOK},
		{"uuid", id, fiber.StatusOK},
		{"missing", nil, fiber.StatusUnauthorized},
		{"blank", "  ", fiber.StatusUnauthorized},
		{"garbage", "not-a-uuid", fiber.StatusBadRequest},
		{"wrong type", 42, fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				if tc.local != nil {
					c.Locals(LocUserID, tc.local)
				}
				got, err := GetUserIDFromToken(c)
				if err != nil {
					return err
				}
				assert.Equal(t, id, got)
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestGetRawAccessToken(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetRawAccessToken(c)
		return nil
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)
}

func TestGetRole_DefaultsToReader(t *testing.T) {
	app := fiber.New()
	var roles []string
	app.Get("/", func(c *fiber.Ctx) error {
		roles = append(roles, GetRole(c))
		c.Locals(LocRole, " Librarian ")
		roles = append(roles, GetRole(c))
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{RoleReader, RoleLibrarian}, roles)
}
