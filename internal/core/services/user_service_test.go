package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/core/domain"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/core/services"
	"github.com/edusuite/school_finance_api/internal/dto"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) expectActor(userID string, role domain.Role) {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, userID).Return(newActiveUser(userID, role), nil).Once()
}

func registerRequest(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:     email,
		Password:  "s3cret-pass",
		FirstName: "Asha",
		LastName:  "Rao",
	}
}

func (suite *UserServiceTestSuite) TestRegister_FirstUserBecomesSuperAdmin() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "asha@school.edu").Return(nil, nil).Once()
	suite.mockUserRepo.On("FindUsers", ctx, 1, 0).Return([]domain.User{}, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleSuperAdmin && u.IsActive && u.AuthProvider == domain.ProviderLocal
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, registerRequest("asha@school.edu"))

	suite.Require().NoError(err)
	suite.Equal(domain.RoleSuperAdmin, user.Role)
	suite.NotEmpty(user.PasswordHash)
	suite.NotEqual("s3cret-pass", user.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_LaterUsersDefaultToAuditor() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ravi@school.edu").Return(nil, nil).Once()
	suite.mockUserRepo.On("FindUsers", ctx, 1, 0).Return([]domain.User{*newActiveUser(uuid.NewString(), domain.RoleSuperAdmin)}, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleAuditor
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, registerRequest("ravi@school.edu"))

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAuditor, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	existing := newActiveUser(uuid.NewString(), domain.RoleAuditor)

	suite.mockUserRepo.On("FindUserByEmail", ctx, "asha@school.edu").Return(existing, nil).Once()

	user, err := suite.service.Register(ctx, registerRequest("asha@school.edu"))

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticate_InactiveUser() {
	ctx := context.Background()
	user := newActiveUser(uuid.NewString(), domain.RoleFinanceAdmin)
	user.IsActive = false

	suite.mockUserRepo.On("FindUserByEmail", ctx, "asha@school.edu").Return(user, nil).Once()

	result, err := suite.service.Authenticate(ctx, "asha@school.edu", "whatever")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(result)
}

func (suite *UserServiceTestSuite) TestUpdateUserRole_ForbiddenForFinanceAdmin() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.expectActor(actorID, domain.RoleFinanceAdmin)

	result, err := suite.service.UpdateUserRole(ctx, actorID, uuid.NewString(), domain.RoleFinanceAdmin)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUserRole_RejectsUnknownRole() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.expectActor(actorID, domain.RoleSuperAdmin)

	result, err := suite.service.UpdateUserRole(ctx, actorID, uuid.NewString(), domain.Role("PRINCIPAL"))

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

func (suite *UserServiceTestSuite) TestUpdateUserRole_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	targetID := uuid.NewString()
	target := newActiveUser(targetID, domain.RoleAuditor)

	suite.expectActor(actorID, domain.RoleSuperAdmin)
	suite.mockUserRepo.On("FindUserByID", mock.Anything, targetID).Return(target, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == targetID && u.Role == domain.RoleDepartmentHead && u.LastUpdatedBy == actorID
	})).Return(nil).Once()

	result, err := suite.service.UpdateUserRole(ctx, actorID, targetID, domain.RoleDepartmentHead)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleDepartmentHead, result.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeactivateUser_RefusesSelf() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.expectActor(actorID, domain.RoleSuperAdmin)

	err := suite.service.DeactivateUser(ctx, actorID, actorID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeactivateUser_RevokesRefreshToken() {
	ctx := context.Background()
	actorID := uuid.NewString()
	targetID := uuid.NewString()
	target := newActiveUser(targetID, domain.RoleDepartmentHead)

	suite.expectActor(actorID, domain.RoleSuperAdmin)
	suite.mockUserRepo.On("FindUserByID", mock.Anything, targetID).Return(target, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == targetID && !u.IsActive
	})).Return(nil).Once()
	suite.mockUserRepo.On("SetRefreshTokenHash", ctx, targetID, "", mock.Anything).Return(nil).Once()

	err := suite.service.DeactivateUser(ctx, actorID, targetID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
