package users_testing

import (
	"fmt"

	users_dto "taskhive-backend/internal/features/users/dto"
	users_services "taskhive-backend/internal/features/users/services"

	"github.com/google/uuid"
)

// CreateTestUser registers a fresh user with a unique email and returns
// the signed-in session (id, email, token).
func CreateTestUser() *users_dto.SignInResponseDTO {
	uniqueID := uuid.New().String()[:8]

	request := &users_dto.SignUpRequestDTO{
		Name:     "Test User " + uniqueID,
		Email:    fmt.Sprintf("test-%s@example.com", uniqueID),
		Password: "test-password-123",
	}

	response, err := users_services.GetUserService().SignUp(request)
	if err != nil {
		panic("Failed to create test user: " + err.Error())
	}

	return response
}
