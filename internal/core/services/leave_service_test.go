package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/core/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/platform/cache"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/SscSPs/boutique_ops/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LeaveServiceTestSuite struct {
	suite.Suite
	repos         *mockRepos
	notifier      *recordingNotifier
	coverageCache *cache.CoverageCache
	service       portssvc.LeaveSvcFacade
	manager       domain.Identity
	employee      domain.Identity
	admin         domain.Identity
}

func (suite *LeaveServiceTestSuite) SetupTest() {
	suite.repos = newMockRepos()
	suite.notifier = &recordingNotifier{}
	suite.coverageCache = cache.NewCoverageCache(time.Minute, nil)
	suite.service = services.NewLeaveService(suite.repos.provider(), services.NewScopeService(suite.repos.boutique),
		services.WithLeaveNotifier(suite.notifier),
		services.WithLeaveCoverageCache(suite.coverageCache),
		services.WithLeaveClock(fixedClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))),
	)
	suite.manager = domain.Identity{UserID: "m1", Role: domain.RoleManager, BoutiqueID: "B1", EmpID: "E100"}
	suite.employee = domain.Identity{UserID: "u-E1", Role: domain.RoleEmployee, BoutiqueID: "B1", EmpID: "E1"}
	suite.admin = domain.Identity{UserID: "a1", Role: domain.RoleAdmin, BoutiqueID: "B1"}
	for _, userID := range []string{"m1", "a1"} {
		suite.repos.boutique.On("ListActiveMemberships", mock.Anything, userID).Return([]domain.BoutiqueMembership{}, nil).Maybe()
	}
}

func (suite *LeaveServiceTestSuite) pending(status domain.LeaveStatus) *domain.LeaveRequest {
	return &domain.LeaveRequest{
		LeaveID: "L1", UserID: "u-E1", EmpID: "E1", BoutiqueID: "B1",
		StartDate: mustDate("2026-04-10"), EndDate: mustDate("2026-04-12"),
		Type: domain.LeaveAnnual, Status: status,
	}
}

func (suite *LeaveServiceTestSuite) TestCreateLeave_EmployeeFilesForSelf() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByUserID", ctx, "u-E1").Return(&domain.Employee{EmpID: "E1", BoutiqueID: "B1", UserID: strPtr("u-E1"), IsActive: true}, nil)
	suite.repos.leave.On("HasOverlappingLeave", ctx, "u-E1", mock.Anything, mock.Anything).Return(false, nil)
	suite.repos.leave.On("SaveLeave", ctx, mock.MatchedBy(func(l domain.LeaveRequest) bool {
		return l.Status == domain.LeavePending && l.EmpID == "E1" && l.BoutiqueID == "B1" && l.Type == domain.LeaveAnnual
	})).Return(nil).Once()

	leave, err := suite.service.CreateLeave(ctx, suite.employee, dto.CreateLeaveRequest{StartDate: "2026-04-10", EndDate: "2026-04-12", Type: "ANNUAL"})

	suite.Require().NoError(err)
	suite.Equal(domain.LeavePending, leave.Status)
	suite.Equal("2026-04-12", calendar.DateKey(leave.EndDate))
	suite.repos.leave.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestCreateLeave_EmployeeCannotFileForOthers() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByUserID", ctx, "u-E1").Return(&domain.Employee{EmpID: "E1", BoutiqueID: "B1", UserID: strPtr("u-E1")}, nil)

	_, err := suite.service.CreateLeave(ctx, suite.employee, dto.CreateLeaveRequest{EmpID: "E2", StartDate: "2026-04-10", EndDate: "2026-04-12", Type: "SICK"})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LeaveServiceTestSuite) TestCreateLeave_Overlap() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByUserID", ctx, "u-E1").Return(&domain.Employee{EmpID: "E1", BoutiqueID: "B1", UserID: strPtr("u-E1")}, nil)
	suite.repos.leave.On("HasOverlappingLeave", ctx, "u-E1", mock.Anything, mock.Anything).Return(true, nil)

	_, err := suite.service.CreateLeave(ctx, suite.employee, dto.CreateLeaveRequest{StartDate: "2026-04-10", EndDate: "2026-04-12", Type: "ANNUAL"})

	suite.Equal(apperrors.CodeConflict, apperrors.CodeOf(err))
	suite.repos.leave.AssertNotCalled(suite.T(), "SaveLeave", mock.Anything, mock.Anything)
}

func (suite *LeaveServiceTestSuite) TestCreateLeave_EndBeforeStart() {
	_, err := suite.service.CreateLeave(context.Background(), suite.employee, dto.CreateLeaveRequest{StartDate: "2026-04-12", EndDate: "2026-04-10", Type: "ANNUAL"})

	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal("endDate", appErr.Field)
}

func (suite *LeaveServiceTestSuite) TestCreateLeave_ManagerFilesForEmployeeInOtherBoutique() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByID", ctx, "E9").Return(&domain.Employee{EmpID: "E9", BoutiqueID: "B2", UserID: strPtr("u-E9")}, nil)

	_, err := suite.service.CreateLeave(ctx, suite.manager, dto.CreateLeaveRequest{EmpID: "E9", StartDate: "2026-04-10", EndDate: "2026-04-12", Type: "ANNUAL"})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Equal(apperrors.CodeCrossBoutiqueBlocked, apperrors.CodeOf(err))
}

func (suite *LeaveServiceTestSuite) TestCreateLeave_ManagerFilesForUnknownEmployee() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByID", ctx, "E404").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CreateLeave(ctx, suite.manager, dto.CreateLeaveRequest{EmpID: "E404", StartDate: "2026-04-10", EndDate: "2026-04-12", Type: "ANNUAL"})

	suite.Equal(apperrors.CodeCrossBoutiqueBlocked, apperrors.CodeOf(err))
	suite.repos.leave.AssertNotCalled(suite.T(), "SaveLeave", mock.Anything, mock.Anything)
}

func (suite *LeaveServiceTestSuite) TestDecideLeave_ApproveNotifiesAndClearsCache() {
	ctx := context.Background()
	suite.repos.leave.On("FindLeaveByID", ctx, "L1").Return(suite.pending(domain.LeavePending), nil)
	suite.repos.leave.On("UpdateLeaveStatus", ctx, mock.MatchedBy(func(l domain.LeaveRequest) bool {
		return l.Status == domain.LeaveApproved && l.DecidedBy != nil && *l.DecidedBy == "m1" && l.DecisionNote == "enjoy"
	}), domain.LeavePending).Return(nil).Once()
	suite.coverageCache.Put("2026-04-10", []string{"B1"}, cache.CoverageEntry{})

	leave, err := suite.service.DecideLeave(ctx, suite.manager, "L1", domain.LeaveActionApprove, dto.LeaveDecisionRequest{Note: "enjoy"})

	suite.Require().NoError(err)
	suite.Equal(domain.LeaveApproved, leave.Status)
	_, cached := suite.coverageCache.Get("2026-04-10", []string{"B1"})
	suite.False(cached)
	suite.Require().Len(suite.notifier.notes, 1)
	suite.Equal(domain.NotifyLeaveDecided, suite.notifier.notes[0].Kind)
	suite.Equal("u-E1", suite.notifier.notes[0].RecipientID)
}

func (suite *LeaveServiceTestSuite) TestDecideLeave_AlreadyDecided() {
	ctx := context.Background()
	suite.repos.leave.On("FindLeaveByID", ctx, "L1").Return(suite.pending(domain.LeaveRejected), nil)

	_, err := suite.service.DecideLeave(ctx, suite.manager, "L1", domain.LeaveActionApprove, dto.LeaveDecisionRequest{})

	suite.Equal(apperrors.CodeAlreadyDecided, apperrors.CodeOf(err))
	suite.repos.leave.AssertNotCalled(suite.T(), "UpdateLeaveStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.notifier.notes)
}

func (suite *LeaveServiceTestSuite) TestDecideLeave_EscalatedNeedsAdmin() {
	ctx := context.Background()
	suite.repos.leave.On("FindLeaveByID", ctx, "L1").Return(suite.pending(domain.LeaveEscalated), nil)

	_, err := suite.service.DecideLeave(ctx, suite.manager, "L1", domain.LeaveActionApprove, dto.LeaveDecisionRequest{})
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.repos.leave.On("UpdateLeaveStatus", ctx, mock.Anything, domain.LeaveEscalated).Return(nil).Once()
	leave, err := suite.service.DecideLeave(ctx, suite.admin, "L1", domain.LeaveActionReject, dto.LeaveDecisionRequest{})

	suite.Require().NoError(err)
	suite.Equal(domain.LeaveRejected, leave.Status)
}

func (suite *LeaveServiceTestSuite) TestDecideLeave_EscalateNotifiesAdmins() {
	ctx := context.Background()
	assistant := domain.Identity{UserID: "am1", Role: domain.RoleAssistantManager, BoutiqueID: "B1"}
	suite.repos.leave.On("FindLeaveByID", ctx, "L1").Return(suite.pending(domain.LeavePending), nil)
	suite.repos.leave.On("UpdateLeaveStatus", ctx, mock.MatchedBy(func(l domain.LeaveRequest) bool {
		return l.Status == domain.LeaveEscalated && l.EscalatedBy != nil && *l.EscalatedBy == "am1"
	}), domain.LeavePending).Return(nil).Once()

	_, err := suite.service.DecideLeave(ctx, assistant, "L1", domain.LeaveActionEscalate, dto.LeaveDecisionRequest{})

	suite.Require().NoError(err)
	suite.Require().Len(suite.notifier.notes, 1)
	suite.Equal(domain.NotifyLeaveEscalated, suite.notifier.notes[0].Kind)
	suite.Empty(suite.notifier.notes[0].RecipientID)
}

func (suite *LeaveServiceTestSuite) TestDecideLeave_CannotApproveOwn() {
	ctx := context.Background()
	own := suite.pending(domain.LeavePending)
	own.UserID = "m1"
	suite.repos.leave.On("FindLeaveByID", ctx, "L1").Return(own, nil)

	_, err := suite.service.DecideLeave(ctx, suite.manager, "L1", domain.LeaveActionApprove, dto.LeaveDecisionRequest{})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LeaveServiceTestSuite) TestDecideLeave_EmployeeCancelsOwnWithoutNotification() {
	ctx := context.Background()
	suite.repos.leave.On("FindLeaveByID", ctx, "L1").Return(suite.pending(domain.LeavePending), nil)
	suite.repos.leave.On("UpdateLeaveStatus", ctx, mock.Anything, domain.LeavePending).Return(nil).Once()

	leave, err := suite.service.DecideLeave(ctx, suite.employee, "L1", domain.LeaveActionCancel, dto.LeaveDecisionRequest{})

	suite.Require().NoError(err)
	suite.Equal(domain.LeaveCancelled, leave.Status)
	suite.Empty(suite.notifier.notes)
}

func (suite *LeaveServiceTestSuite) TestListLeaves_PagesWithToken() {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	page := []domain.LeaveRequest{
		{LeaveID: "L1", StartDate: mustDate("2026-04-01"), AuditFields: domain.AuditFields{CreatedAt: created}},
		{LeaveID: "L2", StartDate: mustDate("2026-04-03"), AuditFields: domain.AuditFields{CreatedAt: created}},
		{LeaveID: "L3", StartDate: mustDate("2026-04-05"), AuditFields: domain.AuditFields{CreatedAt: created}},
	}
	suite.repos.leave.On("ListLeaves", ctx, mock.MatchedBy(func(f portsrepo.LeaveFilter) bool {
		return f.Limit == 3 && f.UserID == "u-E1" && f.AfterStartDate == nil
	})).Return(page, nil).Once()

	leaves, next, err := suite.service.ListLeaves(ctx, suite.employee, dto.ListLeavesQuery{Limit: 2})

	suite.Require().NoError(err)
	suite.Len(leaves, 2)
	suite.Require().NotEmpty(next)
	afterStart, afterCreated, err := pagination.DecodeToken(next)
	suite.Require().NoError(err)
	suite.Equal("2026-04-03", calendar.DateKey(afterStart))
	suite.True(afterCreated.Equal(created))
}

func (suite *LeaveServiceTestSuite) TestListLeaves_BadToken() {
	_, _, err := suite.service.ListLeaves(context.Background(), suite.employee, dto.ListLeavesQuery{NextToken: "%%%"})

	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal("nextToken", appErr.Field)
}

func TestLeaveServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeaveServiceTestSuite))
}
