package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accessDomain "github.com/allisson/projecthub/internal/access/domain"
	httpMocks "github.com/allisson/projecthub/internal/access/http/mocks"
	authHTTP "github.com/allisson/projecthub/internal/auth/http"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// setupGrantTestHandler creates a test grant handler with mocked dependencies.
func setupGrantTestHandler(t *testing.T) (*GrantHandler, *httpMocks.MockGrantUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockGrantUseCase := &httpMocks.MockGrantUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewGrantHandler(mockGrantUseCase, logger)

	return handler, mockGrantUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func withAuthenticatedUser(c *gin.Context, user *identityDomain.User) {
	ctx := authHTTP.WithUser(c.Request.Context(), user)
	c.Request = c.Request.WithContext(ctx)
}

func testActor() *identityDomain.User {
	return &identityDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Email:    "manager@example.com",
		Roles:    []identityDomain.Role{identityDomain.RoleUser},
		IsActive: true,
	}
}

func testGrant(userID, projectID uuid.UUID, level accessDomain.Level) *accessDomain.Grant {
	now := time.Now().UTC()
	return &accessDomain.Grant{
		UserID:    userID,
		ProjectID: projectID,
		Level:     level,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestGrantHandler_SetGrantHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		actor := testActor()
		projectID := uuid.Must(uuid.NewV7())
		memberID := uuid.Must(uuid.NewV7())
		grant := testGrant(memberID, projectID, accessDomain.LevelCollaborator)

		mockUseCase.On("SetGrant", mock.Anything, actor, mock.MatchedBy(func(input *accessDomain.SetGrantInput) bool {
			return input.UserID == memberID &&
				input.ProjectID == projectID &&
				input.Level == accessDomain.LevelCollaborator
		})).Return(grant, nil)

		c, w := createTestContext(http.MethodPut, "/v1/projects/"+projectID.String()+"/grants", map[string]interface{}{
			"user_id": memberID.String(),
			"level":   "COLLABORATOR",
		})
		c.Params = gin.Params{{Key: "id", Value: projectID.String()}}
		withAuthenticatedUser(c, actor)

		handler.SetGrantHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "COLLABORATOR", response["level"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("UnknownLevel_Returns422", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		projectID := uuid.Must(uuid.NewV7())
		c, w := createTestContext(http.MethodPut, "/v1/projects/"+projectID.String()+"/grants", map[string]interface{}{
			"user_id": uuid.Must(uuid.NewV7()).String(),
			"level":   "OWNER",
		})
		c.Params = gin.Params{{Key: "id", Value: projectID.String()}}
		withAuthenticatedUser(c, testActor())

		handler.SetGrantHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "SetGrant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AccessDenied_Returns403", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		actor := testActor()
		projectID := uuid.Must(uuid.NewV7())

		mockUseCase.On("SetGrant", mock.Anything, actor, mock.Anything).
			Return(nil, accessDomain.ErrAccessDenied)

		c, w := createTestContext(http.MethodPut, "/v1/projects/"+projectID.String()+"/grants", map[string]interface{}{
			"user_id": uuid.Must(uuid.NewV7()).String(),
			"level":   "VIEWER",
		})
		c.Params = gin.Params{{Key: "id", Value: projectID.String()}}
		withAuthenticatedUser(c, actor)

		handler.SetGrantHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("NoAuthenticatedUser_Returns401", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		projectID := uuid.Must(uuid.NewV7())
		c, w := createTestContext(http.MethodPut, "/v1/projects/"+projectID.String()+"/grants", map[string]interface{}{
			"user_id": uuid.Must(uuid.NewV7()).String(),
			"level":   "VIEWER",
		})
		c.Params = gin.Params{{Key: "id", Value: projectID.String()}}

		handler.SetGrantHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUseCase.AssertNotCalled(t, "SetGrant", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGrantHandler_GetGrantHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		actor := testActor()
		projectID := uuid.Must(uuid.NewV7())
		memberID := uuid.Must(uuid.NewV7())
		grant := testGrant(memberID, projectID, accessDomain.LevelViewer)

		mockUseCase.On("GetGrant", mock.Anything, actor, memberID, projectID).Return(grant, nil)

		c, w := createTestContext(http.MethodGet, "/v1/projects/"+projectID.String()+"/grants/"+memberID.String(), nil)
		c.Params = gin.Params{
			{Key: "id", Value: projectID.String()},
			{Key: "user_id", Value: memberID.String()},
		}
		withAuthenticatedUser(c, actor)

		handler.GetGrantHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "VIEWER")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("NotFound_Returns404", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		actor := testActor()
		projectID := uuid.Must(uuid.NewV7())
		memberID := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetGrant", mock.Anything, actor, memberID, projectID).
			Return(nil, accessDomain.ErrGrantNotFound)

		c, w := createTestContext(http.MethodGet, "/v1/projects/"+projectID.String()+"/grants/"+memberID.String(), nil)
		c.Params = gin.Params{
			{Key: "id", Value: projectID.String()},
			{Key: "user_id", Value: memberID.String()},
		}
		withAuthenticatedUser(c, actor)

		handler.GetGrantHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("InvalidUserID_Returns400", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		projectID := uuid.Must(uuid.NewV7())
		c, w := createTestContext(http.MethodGet, "/v1/projects/"+projectID.String()+"/grants/bogus", nil)
		c.Params = gin.Params{
			{Key: "id", Value: projectID.String()},
			{Key: "user_id", Value: "bogus"},
		}
		withAuthenticatedUser(c, testActor())

		handler.GetGrantHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "GetGrant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGrantHandler_ListGrantsHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		actor := testActor()
		projectID := uuid.Must(uuid.NewV7())
		grants := []*accessDomain.Grant{
			testGrant(uuid.Must(uuid.NewV7()), projectID, accessDomain.LevelManager),
			testGrant(uuid.Must(uuid.NewV7()), projectID, accessDomain.LevelViewer),
		}

		mockUseCase.On("ListProjectGrants", mock.Anything, actor, projectID, 0, 10).Return(grants, nil)

		c, w := createTestContext(http.MethodGet, "/v1/projects/"+projectID.String()+"/grants?offset=0&limit=10", nil)
		c.Params = gin.Params{{Key: "id", Value: projectID.String()}}
		withAuthenticatedUser(c, actor)

		handler.ListGrantsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response["grants"], 2)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("AccessDenied_Returns403", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		actor := testActor()
		projectID := uuid.Must(uuid.NewV7())

		mockUseCase.On("ListProjectGrants", mock.Anything, actor, projectID, 0, 50).
			Return(nil, accessDomain.ErrAccessDenied)

		c, w := createTestContext(http.MethodGet, "/v1/projects/"+projectID.String()+"/grants", nil)
		c.Params = gin.Params{{Key: "id", Value: projectID.String()}}
		withAuthenticatedUser(c, actor)

		handler.ListGrantsHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestGrantHandler_RevokeGrantHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		actor := testActor()
		projectID := uuid.Must(uuid.NewV7())
		memberID := uuid.Must(uuid.NewV7())

		mockUseCase.On("RevokeGrant", mock.Anything, actor, memberID, projectID).Return(nil)

		c, w := createTestContext(http.MethodDelete, "/v1/projects/"+projectID.String()+"/grants/"+memberID.String(), nil)
		c.Params = gin.Params{
			{Key: "id", Value: projectID.String()},
			{Key: "user_id", Value: memberID.String()},
		}
		withAuthenticatedUser(c, actor)

		handler.RevokeGrantHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Grant revoked")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("AccessDenied_Returns403", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		actor := testActor()
		projectID := uuid.Must(uuid.NewV7())
		memberID := uuid.Must(uuid.NewV7())

		mockUseCase.On("RevokeGrant", mock.Anything, actor, memberID, projectID).
			Return(accessDomain.ErrAccessDenied)

		c, w := createTestContext(http.MethodDelete, "/v1/projects/"+projectID.String()+"/grants/"+memberID.String(), nil)
		c.Params = gin.Params{
			{Key: "id", Value: projectID.String()},
			{Key: "user_id", Value: memberID.String()},
		}
		withAuthenticatedUser(c, actor)

		handler.RevokeGrantHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}
