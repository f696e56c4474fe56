package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ScopeServiceTestSuite struct {
	suite.Suite
	repo    *MockBoutiqueRepository
	service portssvc.ScopeSvc
}

func (suite *ScopeServiceTestSuite) SetupTest() {
	suite.repo = new(MockBoutiqueRepository)
	suite.service = services.NewScopeService(suite.repo)
}

func (suite *ScopeServiceTestSuite) TestEmployeeIsPinnedToSessionBoutique() {
	ctx := context.Background()
	identity := domain.Identity{UserID: "u1", Role: domain.RoleEmployee, BoutiqueID: "B1"}

	scope, err := suite.service.ResolveScope(ctx, identity, domain.ScopeRequest{BoutiqueID: "B2", Global: true})

	suite.Require().NoError(err)
	suite.Equal([]string{"B1"}, scope.BoutiqueIDs)
	suite.Equal("B1", scope.EffectiveBoutiqueID)
	suite.False(scope.IsGlobal)
	suite.repo.AssertNotCalled(suite.T(), "ListActiveMemberships", mock.Anything, mock.Anything)
}

func (suite *ScopeServiceTestSuite) TestAssistantManagerWithoutBoutique() {
	identity := domain.Identity{UserID: "u1", Role: domain.RoleAssistantManager}

	_, err := suite.service.ResolveScope(context.Background(), identity, domain.ScopeRequest{})

	suite.Require().Error(err)
	suite.Equal(apperrors.CodeNoBoutiqueAssignment, apperrors.CodeOf(err))
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ScopeServiceTestSuite) TestMissingIdentity() {
	_, err := suite.service.ResolveScope(context.Background(), domain.Identity{}, domain.ScopeRequest{})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *ScopeServiceTestSuite) TestManagerMembershipsFilteredByAccess() {
	ctx := context.Background()
	identity := domain.Identity{UserID: "m1", Role: domain.RoleManager, BoutiqueID: "B1"}
	suite.repo.On("ListActiveMemberships", ctx, "m1").Return([]domain.BoutiqueMembership{
		{UserID: "m1", BoutiqueID: "B3", Access: domain.AccessRead, IsActive: true},
		{UserID: "m1", BoutiqueID: "B2", Access: domain.AccessWrite, IsActive: true},
		{UserID: "m1", BoutiqueID: "B4", Access: domain.AccessWrite, IsActive: false},
	}, nil)

	read, err := suite.service.ResolveScope(ctx, identity, domain.ScopeRequest{Access: domain.AccessRead})
	suite.Require().NoError(err)
	suite.Equal([]string{"B1", "B2", "B3"}, read.BoutiqueIDs)
	suite.Equal("B1", read.EffectiveBoutiqueID)

	write, err := suite.service.ResolveScope(ctx, identity, domain.ScopeRequest{Access: domain.AccessWrite})
	suite.Require().NoError(err)
	suite.Equal([]string{"B1", "B2"}, write.BoutiqueIDs)
}

func (suite *ScopeServiceTestSuite) TestFilterNarrowsButNeverWidens() {
	ctx := context.Background()
	identity := domain.Identity{UserID: "m1", Role: domain.RoleManager, BoutiqueID: "B1"}
	suite.repo.On("ListActiveMemberships", ctx, "m1").Return([]domain.BoutiqueMembership{
		{UserID: "m1", BoutiqueID: "B2", Access: domain.AccessWrite, IsActive: true},
	}, nil)

	scope, err := suite.service.ResolveScope(ctx, identity, domain.ScopeRequest{BoutiqueID: "B2"})
	suite.Require().NoError(err)
	suite.Equal([]string{"B2"}, scope.BoutiqueIDs)
	suite.Equal("B2", scope.EffectiveBoutiqueID)

	_, err = suite.service.ResolveScope(ctx, identity, domain.ScopeRequest{BoutiqueID: "B9"})
	var crossErr *apperrors.CrossBoutiqueError
	suite.Require().ErrorAs(err, &crossErr)
	suite.Equal("B9", crossErr.BoutiqueID)
}

func (suite *ScopeServiceTestSuite) TestManagerGlobalFlagIsIgnored() {
	ctx := context.Background()
	identity := domain.Identity{UserID: "m1", Role: domain.RoleManager, BoutiqueID: "B1"}
	suite.repo.On("ListActiveMemberships", ctx, "m1").Return([]domain.BoutiqueMembership{}, nil)

	scope, err := suite.service.ResolveScope(ctx, identity, domain.ScopeRequest{Global: true})

	suite.Require().NoError(err)
	suite.False(scope.IsGlobal)
	suite.Equal([]string{"B1"}, scope.BoutiqueIDs)
	suite.repo.AssertNotCalled(suite.T(), "ListActiveBoutiqueIDs", mock.Anything)
}

func (suite *ScopeServiceTestSuite) TestAdminGlobalScopeIsAuditedFirst() {
	ctx := context.Background()
	identity := domain.Identity{UserID: "a1", Role: domain.RoleAdmin, BoutiqueID: "B1"}
	suite.repo.On("ListActiveBoutiqueIDs", ctx).Return([]string{"B1", "B2", "B3"}, nil).Once()
	suite.repo.On("SaveAuditEntry", ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.ActorUserID == "a1" && e.Action == domain.AuditActionGlobalAccess && e.Module == "schedule" && len(e.BoutiqueIDs) == 3
	})).Return(nil).Once()

	scope, err := suite.service.ResolveScope(ctx, identity, domain.ScopeRequest{Global: true, Module: "schedule"})

	suite.Require().NoError(err)
	suite.True(scope.IsGlobal)
	suite.Equal([]string{"B1", "B2", "B3"}, scope.BoutiqueIDs)
	suite.Empty(scope.EffectiveBoutiqueID)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ScopeServiceTestSuite) TestAdminGlobalScopeDeniedWhenAuditFails() {
	ctx := context.Background()
	identity := domain.Identity{UserID: "a1", Role: domain.RoleAdmin, BoutiqueID: "B1"}
	suite.repo.On("ListActiveBoutiqueIDs", ctx).Return([]string{"B1", "B2"}, nil).Once()
	suite.repo.On("SaveAuditEntry", ctx, mock.AnythingOfType("domain.AuditLogEntry")).Return(assert.AnError).Once()

	scope, err := suite.service.ResolveScope(ctx, identity, domain.ScopeRequest{Global: true})

	suite.Require().Error(err)
	suite.Nil(scope)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ScopeServiceTestSuite) TestAssertBoutiqueInScope() {
	ctx := context.Background()
	scope := &domain.Scope{BoutiqueIDs: []string{"B1"}}

	suite.NoError(suite.service.AssertBoutiqueInScope(ctx, scope, "employee", "E1", "B1"))

	err := suite.service.AssertBoutiqueInScope(ctx, scope, "employee", "E2", "B2")
	suite.Equal(apperrors.CodeCrossBoutiqueBlocked, apperrors.CodeOf(err))
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestScopeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScopeServiceTestSuite))
}
