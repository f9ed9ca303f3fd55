package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"social-publisher/domain/model"
	httpHandler "social-publisher/interfaces/http"
	"social-publisher/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) Register(ctx context.Context, req model.ReqRegister) (*usecase.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResult), args.Error(1)
}

func (m *MockUserUsecase) Login(ctx context.Context, req model.ReqLogin) (*usecase.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResult), args.Error(1)
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, email string) (*usecase.AuthResult, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResult), args.Error(1)
}

func (m *MockUserUsecase) GetProfile(ctx context.Context, userID string) (*model.UserView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserView), args.Error(1)
}

func (m *MockUserUsecase) UpdateToken(ctx context.Context, userID string, platform model.Platform, token string) (*model.UserView, error) {
	args := m.Called(ctx, userID, platform, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserView), args.Error(1)
}

// performJSON runs one request through a fresh router with user_id preset,
// mimicking what the auth middleware does. The route may carry params
// (e.g. /api/posts/:id) that the path fills in.
func performJSON(handler gin.HandlerFunc, method, route, path, userID string, payload interface{}) *httptest.ResponseRecorder {
	router := gin.New()
	wrapped := func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		handler(c)
	}
	router.Handle(method, route, wrapped)

	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var res map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestUserHandler_Register_Success(t *testing.T) {
	mockUsecase := new(MockUserUsecase)
	handler := httpHandler.NewUserHandler(mockUsecase)

	userID := bson.NewObjectID()
	mockUsecase.On("Register", mock.Anything, model.ReqRegister{
		Name: "Jamie", Email: "jamie@example.com", Password: "pw",
	}).Return(&usecase.AuthResult{
		User:  model.UserView{ID: userID.Hex(), Name: "Jamie", Email: "jamie@example.com"},
		Token: "issued-token",
	}, nil).Once()

	w := performJSON(handler.Register, http.MethodPost, "/api/user/register", "/api/user/register", "", map[string]string{
		"name": "Jamie", "email": "jamie@example.com", "password": "pw",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, true, res["success"])
	assert.Equal(t, "issued-token", res["token"])
	mockUsecase.AssertExpectations(t)
}

func TestUserHandler_Register_MissingFields(t *testing.T) {
	mockUsecase := new(MockUserUsecase)
	handler := httpHandler.NewUserHandler(mockUsecase)

	w := performJSON(handler.Register, http.MethodPost, "/api/user/register", "/api/user/register", "", map[string]string{
		"email": "jamie@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUsecase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	mockUsecase := new(MockUserUsecase)
	handler := httpHandler.NewUserHandler(mockUsecase)

	mockUsecase.On("Register", mock.Anything, mock.Anything).
		Return(nil, usecase.ErrEmailExists).
		Once()

	w := performJSON(handler.Register, http.MethodPost, "/api/user/register", "/api/user/register", "", map[string]string{
		"name": "Jamie", "email": "taken@example.com", "password": "pw",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, "User already exists with this email", res["message"])
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	mockUsecase := new(MockUserUsecase)
	handler := httpHandler.NewUserHandler(mockUsecase)

	mockUsecase.On("Login", mock.Anything, mock.Anything).
		Return(nil, usecase.ErrInvalidLogin).
		Once()

	w := performJSON(handler.Login, http.MethodPost, "/api/user/login", "/api/user/login", "", map[string]string{
		"email": "user@example.com", "password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, "Invalid email or password", res["message"])
}

func TestUserHandler_Authenticate(t *testing.T) {
	mockUsecase := new(MockUserUsecase)
	handler := httpHandler.NewUserHandler(mockUsecase)

	mockUsecase.On("Authenticate", mock.Anything, "legacy@example.com").
		Return(&usecase.AuthResult{
			User:  model.UserView{Email: "legacy@example.com"},
			Token: "legacy-token",
		}, nil).
		Once()

	w := performJSON(handler.Authenticate, http.MethodPost, "/api/user/authenticate", "/api/user/authenticate", "", map[string]string{
		"email": "legacy@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, "legacy-token", res["token"])
}

func TestUserHandler_UpdateTokens_InvalidPlatform(t *testing.T) {
	mockUsecase := new(MockUserUsecase)
	handler := httpHandler.NewUserHandler(mockUsecase)

	w := performJSON(handler.UpdateTokens, http.MethodPut, "/api/user/tokens", "/api/user/tokens", bson.NewObjectID().Hex(), map[string]string{
		"platform": "facebook", "token": "tok",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUsecase.AssertNotCalled(t, "UpdateToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_GetProfile(t *testing.T) {
	mockUsecase := new(MockUserUsecase)
	handler := httpHandler.NewUserHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("GetProfile", mock.Anything, userID).
		Return(&model.UserView{ID: userID, Email: "user@example.com", HasTwitterToken: true}, nil).
		Once()

	w := performJSON(handler.GetProfile, http.MethodGet, "/api/user/profile", "/api/user/profile", userID, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeBody(t, w)
	user := res["user"].(map[string]interface{})
	assert.Equal(t, "user@example.com", user["email"])
	assert.Equal(t, true, user["hasTwitterToken"])
}
