package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/core/scheduling"
	"github.com/SscSPs/boutique_ops/internal/core/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/platform/cache"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func mustDate(key string) time.Time {
	d, err := calendar.ParseDateKey(key)
	if err != nil {
		panic(err)
	}
	return d
}

func testPattern() scheduling.TeamPattern {
	ramadan, err := calendar.NewDateRange("2026-02-18", "2026-03-19")
	if err != nil {
		panic(err)
	}
	return scheduling.TeamPattern{RotationAnchor: mustDate("2026-01-03"), Ramadan: ramadan}
}

type ScheduleServiceTestSuite struct {
	suite.Suite
	repos         *mockRepos
	coverageCache *cache.CoverageCache
	service       portssvc.ScheduleSvcFacade
	manager       domain.Identity
}

func (suite *ScheduleServiceTestSuite) SetupTest() {
	suite.repos = newMockRepos()
	suite.coverageCache = cache.NewCoverageCache(time.Minute, nil)
	suite.service = suite.newService(true)
	suite.manager = domain.Identity{UserID: "m1", Role: domain.RoleManager, BoutiqueID: "B1", EmpID: "E100"}
	suite.repos.boutique.On("ListActiveMemberships", mock.Anything, "m1").Return([]domain.BoutiqueMembership{}, nil).Maybe()
}

func (suite *ScheduleServiceTestSuite) newService(guests bool) portssvc.ScheduleSvcFacade {
	return services.NewScheduleService(suite.repos.provider(), services.NewScopeService(suite.repos.boutique), testPattern(),
		services.WithCoverageCache(suite.coverageCache),
		services.WithGuestCoverage(guests),
		services.WithScheduleClock(fixedClock(time.Date(2026, 1, 4, 8, 0, 0, 0, time.UTC))),
	)
}

func (suite *ScheduleServiceTestSuite) employee(empID, boutiqueID string, team domain.Team) *domain.Employee {
	return &domain.Employee{EmpID: empID, Name: "Emp " + empID, BoutiqueID: boutiqueID, UserID: strPtr("u-" + empID),
		Team: team, Position: domain.PositionSalesAdvisor, IsActive: true}
}

func (suite *ScheduleServiceTestSuite) noLocks(boutiqueID string) {
	suite.repos.schedule.On("ListWeekLocks", mock.Anything, boutiqueID, mock.Anything, mock.Anything).Return([]domain.ScheduleWeekLock{}, nil)
	suite.repos.schedule.On("ListDayLocks", mock.Anything, boutiqueID, mock.Anything, mock.Anything).Return([]domain.ScheduleDayLock{}, nil)
}

func (suite *ScheduleServiceTestSuite) TestSetShiftOverride_Success() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByID", ctx, "E1").Return(suite.employee("E1", "B1", domain.TeamA), nil)
	suite.noLocks("B1")
	suite.repos.schedule.On("UpsertOverride", ctx, mock.MatchedBy(func(o domain.ShiftOverride) bool {
		return o.EmpID == "E1" && o.BoutiqueID == "B1" && o.OverrideShift == domain.OverrideEvening &&
			calendar.DateKey(o.Date) == "2026-01-05" && o.IsActive && o.CreatedBy == "m1"
	})).Return(&domain.ShiftOverride{EmpID: "E1", BoutiqueID: "B1", OverrideShift: domain.OverrideEvening}, nil).Once()

	suite.coverageCache.Put("2026-01-05", []string{"B1"}, cache.CoverageEntry{})

	saved, err := suite.service.SetShiftOverride(ctx, suite.manager, dto.SetShiftOverrideRequest{
		EmpID: "E1", Date: "2026-01-05", OverrideShift: "EVENING",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.OverrideEvening, saved.OverrideShift)
	_, cached := suite.coverageCache.Get("2026-01-05", []string{"B1"})
	suite.False(cached, "schedule writes purge the coverage cache")
	suite.repos.schedule.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestSetShiftOverride_WeekLockWinsOverDayLock() {
	ctx := context.Background()
	lockedAt := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	suite.repos.employee.On("FindEmployeeByID", ctx, "E1").Return(suite.employee("E1", "B1", domain.TeamA), nil)
	suite.repos.schedule.On("ListWeekLocks", ctx, "B1", mock.Anything, mock.Anything).Return([]domain.ScheduleWeekLock{
		{BoutiqueID: "B1", WeekStart: mustDate("2026-01-03"), LockedBy: "m2", LockedAt: lockedAt},
	}, nil)
	suite.repos.schedule.On("ListDayLocks", ctx, "B1", mock.Anything, mock.Anything).Return([]domain.ScheduleDayLock{
		{BoutiqueID: "B1", Date: mustDate("2026-01-05"), LockedBy: "m3", LockedAt: lockedAt},
	}, nil).Maybe()

	_, err := suite.service.SetShiftOverride(ctx, suite.manager, dto.SetShiftOverrideRequest{
		EmpID: "E1", Date: "2026-01-05", OverrideShift: "MORNING",
	})

	var lockErr *apperrors.ScheduleLockedError
	suite.Require().ErrorAs(err, &lockErr)
	suite.Equal(apperrors.CodeWeekLocked, lockErr.Code)
	suite.Equal("2026-01-03", lockErr.WeekStart)
	suite.Equal("m2", lockErr.LockedBy)
	suite.repos.schedule.AssertNotCalled(suite.T(), "UpsertOverride", mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestSetShiftOverride_DayLocked() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByID", ctx, "E1").Return(suite.employee("E1", "B1", domain.TeamA), nil)
	suite.repos.schedule.On("ListWeekLocks", ctx, "B1", mock.Anything, mock.Anything).Return([]domain.ScheduleWeekLock{}, nil)
	suite.repos.schedule.On("ListDayLocks", ctx, "B1", mock.Anything, mock.Anything).Return([]domain.ScheduleDayLock{
		{BoutiqueID: "B1", Date: mustDate("2026-01-05"), LockedBy: "m3"},
	}, nil)

	_, err := suite.service.SetShiftOverride(ctx, suite.manager, dto.SetShiftOverrideRequest{
		EmpID: "E1", Date: "2026-01-05", OverrideShift: "NONE",
	})

	suite.Equal(apperrors.CodeDayLocked, apperrors.CodeOf(err))
	suite.ErrorIs(err, apperrors.ErrLocked)
	suite.repos.schedule.AssertNotCalled(suite.T(), "UpsertOverride", mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestSetShiftOverride_RejectsGuestValues() {
	_, err := suite.service.SetShiftOverride(context.Background(), suite.manager, dto.SetShiftOverrideRequest{
		EmpID: "E1", Date: "2026-01-05", OverrideShift: "COVER_RASHID_AM",
	})
	suite.Equal(apperrors.CodeValidationFailed, apperrors.CodeOf(err))
}

func (suite *ScheduleServiceTestSuite) TestSetShiftOverride_EmployeeForbidden() {
	identity := domain.Identity{UserID: "u1", Role: domain.RoleEmployee, BoutiqueID: "B1"}

	_, err := suite.service.SetShiftOverride(context.Background(), identity, dto.SetShiftOverrideRequest{
		EmpID: "E1", Date: "2026-01-05", OverrideShift: "MORNING",
	})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.repos.employee.AssertNotCalled(suite.T(), "FindEmployeeByID", mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestSetShiftOverride_CrossBoutiqueEmployee() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByID", ctx, "E9").Return(suite.employee("E9", "B2", domain.TeamA), nil)

	_, err := suite.service.SetShiftOverride(ctx, suite.manager, dto.SetShiftOverrideRequest{
		EmpID: "E9", Date: "2026-01-05", OverrideShift: "MORNING",
	})

	suite.Equal(apperrors.CodeCrossBoutiqueBlocked, apperrors.CodeOf(err))
}

func (suite *ScheduleServiceTestSuite) TestSetShiftOverride_UnknownEmployeeLooksLikeOtherBoutique() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByID", ctx, "E404").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.SetShiftOverride(ctx, suite.manager, dto.SetShiftOverrideRequest{
		EmpID: "E404", Date: "2026-01-05", OverrideShift: "MORNING",
	})

	suite.Equal(apperrors.CodeCrossBoutiqueBlocked, apperrors.CodeOf(err))
	suite.repos.schedule.AssertNotCalled(suite.T(), "UpsertOverride", mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestClearShiftOverride_NothingToClear() {
	ctx := context.Background()
	suite.repos.schedule.On("ListActiveOverrides", ctx, []string{"B1"}, mock.Anything, mock.Anything).Return([]domain.ShiftOverride{}, nil)

	err := suite.service.ClearShiftOverride(ctx, suite.manager, dto.ClearShiftOverrideRequest{EmpID: "E1", Date: "2026-01-05"})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.repos.schedule.AssertNotCalled(suite.T(), "DeleteOverride", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) guestRow() domain.ShiftOverride {
	return domain.ShiftOverride{OverrideID: "O1", BoutiqueID: "B2", EmpID: "E1", Date: mustDate("2026-01-05"),
		OverrideShift: domain.OverrideCoverRashidAM, SourceBoutiqueID: strPtr("B1"), IsActive: true}
}

func (suite *ScheduleServiceTestSuite) TestClearShiftOverride_HostClearsGuestCoverage() {
	ctx := context.Background()
	host := domain.Identity{UserID: "m2", Role: domain.RoleManager, BoutiqueID: "B2", EmpID: "E200"}
	suite.repos.boutique.On("ListActiveMemberships", mock.Anything, "m2").Return([]domain.BoutiqueMembership{}, nil).Maybe()
	suite.repos.schedule.On("ListActiveOverrides", ctx, []string{"B2"}, mock.Anything, mock.Anything).Return([]domain.ShiftOverride{suite.guestRow()}, nil)
	suite.noLocks("B2")
	suite.repos.schedule.On("DeleteOverride", ctx, "B2", "E1", mock.Anything).Return(int64(1), nil).Once()

	err := suite.service.ClearShiftOverride(ctx, host, dto.ClearShiftOverrideRequest{EmpID: "E1", Date: "2026-01-05"})

	suite.Require().NoError(err)
	suite.repos.schedule.AssertExpectations(suite.T())
	suite.repos.employee.AssertNotCalled(suite.T(), "FindEmployeeByID", mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestClearShiftOverride_HomeManagerCannotClearHostRow() {
	ctx := context.Background()
	suite.repos.schedule.On("ListActiveOverrides", ctx, []string{"B1"}, mock.Anything, mock.Anything).Return([]domain.ShiftOverride{suite.guestRow()}, nil)

	err := suite.service.ClearShiftOverride(ctx, suite.manager, dto.ClearShiftOverrideRequest{EmpID: "E1", Date: "2026-01-05"})

	suite.Equal(apperrors.CodeCrossBoutiqueBlocked, apperrors.CodeOf(err))
	suite.repos.schedule.AssertNotCalled(suite.T(), "DeleteOverride", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestAddGuestCoverage_Disabled() {
	service := suite.newService(false)

	_, err := service.AddGuestCoverage(context.Background(), suite.manager, dto.AddGuestCoverageRequest{
		HostBoutiqueID: "B1", EmpID: "E9", Date: "2026-01-05", Shift: "AM",
	})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ScheduleServiceTestSuite) TestAddGuestCoverage_HomeBoutiqueLocked() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByID", ctx, "E9").Return(suite.employee("E9", "B2", domain.TeamB), nil)
	suite.noLocks("B1")
	suite.repos.schedule.On("ListWeekLocks", ctx, "B2", mock.Anything, mock.Anything).Return([]domain.ScheduleWeekLock{}, nil)
	suite.repos.schedule.On("ListDayLocks", ctx, "B2", mock.Anything, mock.Anything).Return([]domain.ScheduleDayLock{
		{BoutiqueID: "B2", Date: mustDate("2026-01-05"), LockedBy: "m9"},
	}, nil)

	_, err := suite.service.AddGuestCoverage(ctx, suite.manager, dto.AddGuestCoverageRequest{
		HostBoutiqueID: "B1", EmpID: "E9", Date: "2026-01-05", Shift: "AM",
	})

	suite.Equal(apperrors.CodeDayLocked, apperrors.CodeOf(err))
	suite.repos.schedule.AssertNotCalled(suite.T(), "UpsertOverride", mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestAddGuestCoverage_Success() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByID", ctx, "E9").Return(suite.employee("E9", "B2", domain.TeamB), nil)
	suite.noLocks("B1")
	suite.noLocks("B2")
	suite.repos.schedule.On("UpsertOverride", ctx, mock.MatchedBy(func(o domain.ShiftOverride) bool {
		return o.BoutiqueID == "B1" && o.SourceBoutiqueID != nil && *o.SourceBoutiqueID == "B2" &&
			o.OverrideShift == domain.OverrideCoverRashidPM
	})).Return(&domain.ShiftOverride{EmpID: "E9", BoutiqueID: "B1", OverrideShift: domain.OverrideCoverRashidPM}, nil).Once()

	saved, err := suite.service.AddGuestCoverage(ctx, suite.manager, dto.AddGuestCoverageRequest{
		HostBoutiqueID: "B1", EmpID: "E9", Date: "2026-01-05", Shift: "PM",
	})

	suite.Require().NoError(err)
	suite.Equal("B1", saved.BoutiqueID)
	suite.repos.schedule.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestAddGuestCoverage_RowHeldByHomeBoutique() {
	ctx := context.Background()
	suite.repos.employee.On("FindEmployeeByID", ctx, "E9").Return(suite.employee("E9", "B2", domain.TeamB), nil)
	suite.noLocks("B1")
	suite.noLocks("B2")
	suite.repos.schedule.On("UpsertOverride", ctx, mock.Anything).
		Return(nil, apperrors.NewConflictError(apperrors.CodeConflict, "employee E9 already has an override at another boutique on this date")).Once()
	suite.coverageCache.Put("2026-01-05", []string{"B1"}, cache.CoverageEntry{})

	_, err := suite.service.AddGuestCoverage(ctx, suite.manager, dto.AddGuestCoverageRequest{
		HostBoutiqueID: "B1", EmpID: "E9", Date: "2026-01-05", Shift: "AM",
	})

	suite.Equal(apperrors.CodeConflict, apperrors.CodeOf(err))
	_, cached := suite.coverageCache.Get("2026-01-05", []string{"B1"})
	suite.True(cached, "a rejected write leaves the coverage cache alone")
}

func (suite *ScheduleServiceTestSuite) TestGetDaySchedule_BuildsRosterAndLocks() {
	ctx := context.Background()
	suite.repos.schedule.On("ListCoverageRules", ctx).Return([]domain.CoverageRule{
		{DayOfWeek: time.Monday, MinAM: 1, MinPM: 1, Enabled: true},
	}, nil)
	suite.repos.employee.On("ListEmployeesByBoutiques", ctx, []string{"B1"}).Return([]domain.Employee{
		*suite.employee("E1", "B1", domain.TeamA),
		*suite.employee("E2", "B1", domain.TeamB),
	}, nil)
	suite.repos.schedule.On("ListActiveOverrides", ctx, []string{"B1"}, mock.Anything, mock.Anything).Return([]domain.ShiftOverride{}, nil)
	suite.repos.employee.On("ListTeamAssignments", ctx, mock.Anything).Return([]domain.TeamAssignment{}, nil)
	suite.repos.leave.On("ListLeaves", ctx, mock.Anything).Return([]domain.LeaveRequest{}, nil)
	suite.repos.schedule.On("ListWeekLocks", ctx, "B1", mock.Anything, mock.Anything).Return([]domain.ScheduleWeekLock{}, nil)
	suite.repos.schedule.On("ListDayLocks", ctx, "B1", mock.Anything, mock.Anything).Return([]domain.ScheduleDayLock{
		{BoutiqueID: "B1", Date: mustDate("2026-01-05"), LockedBy: "m1"},
	}, nil)

	day, err := suite.service.GetDaySchedule(ctx, suite.manager, dto.DayScheduleQuery{Date: "2026-01-05"})

	suite.Require().NoError(err)
	suite.Equal("2026-01-05", day.Date)
	suite.Require().Len(day.Roster.AM, 1)
	suite.Require().Len(day.Roster.PM, 1)
	suite.Equal("E1", day.Roster.AM[0].EmpID)
	suite.Equal("E2", day.Roster.PM[0].EmpID)
	suite.Empty(day.Validations)
	suite.NotNil(day.DayLock)
	suite.Nil(day.WeekLock)
	suite.False(day.IsRamadan)
}

func (suite *ScheduleServiceTestSuite) TestUnlockDay_Missing() {
	ctx := context.Background()
	suite.repos.schedule.On("UnlockDay", ctx, "B1", mock.Anything).Return(false, nil)

	err := suite.service.UnlockDay(ctx, suite.manager, dto.DayLockRequest{Date: "2026-01-05"})

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ScheduleServiceTestSuite) TestLockWeek_NormalisesToSaturday() {
	ctx := context.Background()
	suite.repos.schedule.On("LockWeek", ctx, mock.MatchedBy(func(l domain.ScheduleWeekLock) bool {
		return calendar.DateKey(l.WeekStart) == "2026-01-03" && l.BoutiqueID == "B1"
	})).Return(&domain.ScheduleWeekLock{BoutiqueID: "B1", WeekStart: mustDate("2026-01-03")}, nil).Once()

	lock, err := suite.service.LockWeek(ctx, suite.manager, dto.WeekLockRequest{WeekStart: "2026-01-07"})

	suite.Require().NoError(err)
	suite.Equal("2026-01-03", calendar.DateKey(lock.WeekStart))
}

func (suite *ScheduleServiceTestSuite) TestLockDay_AssistantManagerForbidden() {
	identity := domain.Identity{UserID: "am1", Role: domain.RoleAssistantManager, BoutiqueID: "B1"}

	_, err := suite.service.LockDay(context.Background(), identity, dto.DayLockRequest{Date: "2026-01-05"})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ScheduleServiceTestSuite) TestUpsertCoverageRule_AdminOnlyAndClearsCache() {
	ctx := context.Background()
	enabled := true

	_, err := suite.service.UpsertCoverageRule(ctx, suite.manager, time.Monday, dto.UpsertCoverageRuleRequest{MinAM: 2, MinPM: 2, Enabled: &enabled})
	suite.ErrorIs(err, apperrors.ErrForbidden)

	admin := domain.Identity{UserID: "a1", Role: domain.RoleAdmin, BoutiqueID: "B1"}
	suite.repos.schedule.On("UpsertCoverageRule", ctx, mock.MatchedBy(func(r domain.CoverageRule) bool {
		return r.DayOfWeek == time.Monday && r.MinAM == 2 && r.Enabled && r.UpdatedBy == "a1"
	})).Return(&domain.CoverageRule{DayOfWeek: time.Monday, MinAM: 2, MinPM: 2, Enabled: true}, nil).Once()
	suite.coverageCache.Put("2026-01-05", []string{"B1"}, cache.CoverageEntry{})

	rule, err := suite.service.UpsertCoverageRule(ctx, admin, time.Monday, dto.UpsertCoverageRuleRequest{MinAM: 2, MinPM: 2, Enabled: &enabled})

	suite.Require().NoError(err)
	suite.Equal(2, rule.MinAM)
	_, cached := suite.coverageCache.Get("2026-01-05", []string{"B1"})
	suite.False(cached)
}

func TestScheduleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}
