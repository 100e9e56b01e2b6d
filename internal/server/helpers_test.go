package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func TestParseID(t *testing.T) {
	tests := []struct {
		name       string
		param      string
		wantID     int64
		wantStatus int
	}{
		{name: "valid", param: "1700000000001", wantID: 1700000000001, wantStatus: http.StatusOK},
		{name: "zero", param: "0", wantStatus: http.StatusBadRequest},
		{name: "negative", param: "-4", wantStatus: http.StatusBadRequest},
		{name: "not a number", param: "abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got int64
			app.Get("/items/:id", func(c *fiber.Ctx) error {
				id, err := parseID(c, "id")
				if err != nil {
					return nil
				}
				got = id
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/"+tt.param, nil), -1)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantID, got)
		})
	}
}
