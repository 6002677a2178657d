package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/bootstrap"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/deduction"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/employee"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/messaging/kafka"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payment"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payrun"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payslip"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/reconciliation"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/salary"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	auditLogger := bootstrap.NewStdoutAuditLogger()

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	deductionRepo := deduction.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	paymentRepo := payment.NewRepository(gormDB)
	payrunRepo := payrun.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	reconciliationRepo := reconciliation.NewRepository(gormDB)

	// --- Services ---
	deductionService := deduction.NewService(deductionRepo)
	employeeService := employee.NewService(employeeRepo)
	generator := payrun.NewGenerator(employeeRepo, salary.NewResolver(), deductionService, payslipRepo)
	payrunService := payrun.NewService(db, payrunRepo, generator, employeeRepo, counterRepo, outboxRepo)
	payslipService := payslip.NewService(payslipRepo)
	paymentService := payment.NewService(db, paymentRepo, payslipRepo, outboxRepo)
	reconciliationService := reconciliation.NewService(reconciliationRepo, rdb)

	// --- Handlers ---
	deductionHandler := deduction.NewHandler(deductionService)
	employeeHandler := employee.NewHandler(employeeService)
	paymentHandler := payment.NewHandlerWithRedis(paymentService, rdb, auditLogger)
	payrunHandler := payrun.NewHandlerWithAudit(payrunService, auditLogger)
	payslipHandler := payslip.NewHandler(payslipService)
	reconciliationHandler := reconciliation.NewHandler(reconciliationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		deduction.RegisterRoutes(api, deductionHandler)
		employee.RegisterRoutes(api, employeeHandler)
		payment.RegisterRoutes(api, paymentHandler, rdb)
		payrun.RegisterRoutes(api, payrunHandler)
		payslip.RegisterRoutes(api, payslipHandler)
		reconciliation.RegisterRoutes(api, reconciliationHandler)
	}

	return nil
}
