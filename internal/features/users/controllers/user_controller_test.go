package users_controllers_test

import (
	"fmt"
	"testing"

	users_controllers "taskhive-backend/internal/features/users/controllers"
	users_dto "taskhive-backend/internal/features/users/dto"
	users_middleware "taskhive-backend/internal/features/users/middleware"
	users_services "taskhive-backend/internal/features/users/services"
	users_testing "taskhive-backend/internal/features/users/testing"
	test_utils "taskhive-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	userController.RegisterProtectedRoutes(protected)

	return router
}

func uniqueEmail() string {
	return fmt.Sprintf("signup-%s@example.com", uuid.New().String()[:8])
}

func Test_SignUp_ReturnsToken(t *testing.T) {
	router := createTestRouter()

	var response users_dto.SignInResponseDTO
	email := uniqueEmail()
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/auth/signup",
		"",
		users_dto.SignUpRequestDTO{
			Name:     "New User",
			Email:    email,
			Password: "a-long-password",
		},
		201,
		&response,
	)

	assert.Equal(t, email, response.Email)
	assert.NotEmpty(t, response.Token)
	assert.NotEqual(t, uuid.Nil, response.UserID)
}

func Test_SignUp_DuplicateEmailConflict(t *testing.T) {
	router := createTestRouter()

	request := users_dto.SignUpRequestDTO{
		Name:     "First",
		Email:    uniqueEmail(),
		Password: "a-long-password",
	}

	test_utils.MakePostRequest(t, router, "/api/v1/auth/signup", "", request, 201)

	request.Name = "Second"
	test_utils.MakePostRequest(t, router, "/api/v1/auth/signup", "", request, 409)
}

func Test_SignIn_WrongPasswordUnauthorized(t *testing.T) {
	router := createTestRouter()

	email := uniqueEmail()
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/auth/signup",
		"",
		users_dto.SignUpRequestDTO{
			Name:     "Sign In User",
			Email:    email,
			Password: "correct-password",
		},
		201,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/auth/signin",
		"",
		users_dto.SignInRequestDTO{Email: email, Password: "wrong-password"},
		401,
	)

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/auth/signin",
		"",
		users_dto.SignInRequestDTO{Email: email, Password: "correct-password"},
		200,
		&response,
	)
	assert.NotEmpty(t, response.Token)
}

func Test_GetProfile_RequiresToken(t *testing.T) {
	router := createTestRouter()

	test_utils.MakeGetRequest(t, router, "/api/v1/auth/me", "", 401)

	user := users_testing.CreateTestUser()

	var profile users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/auth/me",
		"Bearer "+user.Token,
		200,
		&profile,
	)

	assert.Equal(t, user.UserID, profile.ID)
	assert.Equal(t, user.Email, profile.Email)
}
