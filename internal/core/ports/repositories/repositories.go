package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	BoutiqueRepo BoutiqueRepositoryFacade
	EmployeeRepo EmployeeRepositoryFacade
	ScheduleRepo ScheduleRepositoryFacade
	LeaveRepo    LeaveRepositoryFacade
	TargetRepo   TargetRepositoryFacade
	SalesRepo    SalesRepositoryFacade
	TaskRepo     TaskRepositoryFacade
	ZoneRepo     ZoneRepositoryFacade
	TxManager    TransactionManager
}
