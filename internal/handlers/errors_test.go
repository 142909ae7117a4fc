package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"roomkeeper/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performErrorRequest(t *testing.T, err error) (int, map[string]string) {
	t.Helper()

	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))

	return resp.StatusCode, payload
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "forbidden",
			err:            models.ErrForbidden,
			expectedStatus: fiber.StatusForbidden,
			expectedDetail: "you do not have permission to perform this action",
		},
		{
			name:           "room not found",
			err:            models.ErrRoomNotFound,
			expectedStatus: fiber.StatusNotFound,
			expectedDetail: "room not found",
		},
		{
			name:           "session not found",
			err:            models.ErrSessionNotFound,
			expectedStatus: fiber.StatusNotFound,
			expectedDetail: "cleaning session not found",
		},
		{
			name:           "not owner masquerades as not found",
			err:            models.ErrNotOwner,
			expectedStatus: fiber.StatusNotFound,
			expectedDetail: "cleaning session not found",
		},
		{
			name:           "inactive room",
			err:            models.ErrInactiveRoom,
			expectedStatus: fiber.StatusBadRequest,
			expectedDetail: "inactive room",
		},
		{
			name:           "session already open",
			err:            models.ErrSessionAlreadyOpen,
			expectedStatus: fiber.StatusBadRequest,
			expectedDetail: "room already in cleaning",
		},
		{
			name:           "no open session",
			err:            models.ErrNoOpenSession,
			expectedStatus: fiber.StatusBadRequest,
			expectedDetail: "no open session",
		},
		{
			name:           "session not open",
			err:            models.ErrSessionNotOpen,
			expectedStatus: fiber.StatusBadRequest,
			expectedDetail: "session already completed",
		},
		{
			name:           "photo limit reached",
			err:            models.ErrPhotoLimitReached,
			expectedStatus: fiber.StatusBadRequest,
			expectedDetail: "photo limit reached",
		},
		{
			name:           "photo proof required",
			err:            models.ErrPhotoProofRequired,
			expectedStatus: fiber.StatusBadRequest,
			expectedDetail: "photo proof required",
		},
		{
			name:           "inactive room delete guard",
			err:            models.ErrInactiveRoomDelete,
			expectedStatus: fiber.StatusBadRequest,
			expectedDetail: "inactive rooms cannot be deleted, activate the room first",
		},
		{
			name:           "validation error",
			err:            models.NewValidationError("capacity must be greater than zero"),
			expectedStatus: fiber.StatusBadRequest,
			expectedDetail: "capacity must be greater than zero",
		},
		{
			name:           "unexpected error",
			err:            errors.New("pq: connection refused"),
			expectedStatus: fiber.StatusInternalServerError,
			expectedDetail: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := performErrorRequest(t, tt.err)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedDetail, payload["detail"])
		})
	}
}
