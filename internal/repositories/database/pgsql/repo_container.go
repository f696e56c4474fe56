package pgsql

import (
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BoutiqueRepo: newPgxBoutiqueRepository(dbPool),
		EmployeeRepo: newPgxEmployeeRepository(dbPool),
		ScheduleRepo: newPgxScheduleRepository(dbPool),
		LeaveRepo:    newPgxLeaveRepository(dbPool),
		TargetRepo:   newPgxTargetRepository(dbPool),
		SalesRepo:    newPgxSalesRepository(dbPool),
		TaskRepo:     newPgxTaskRepository(dbPool),
		ZoneRepo:     newPgxZoneRepository(dbPool),
		TxManager:    newPgxTransactionManager(dbPool),
	}
}
