package payment_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/messaging/kafka"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payment"
	paymenterrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payment/errors"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payslip"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
)

type fakePaymentRepository struct {
	withTxFn                func(tx *sql.Tx) payment.Repository
	createFn                func(ctx context.Context, p *payment.Payment) error
	findByIDAndCompanyFn    func(ctx context.Context, companyID string, id string) (*payment.Payment, error)
	findAllByPayslipFn      func(ctx context.Context, companyID string, payslipID string) ([]payment.Payment, error)
	sumEffectiveByPayslipFn func(ctx context.Context, payslipID string) (int64, error)
	markReversedFn          func(ctx context.Context, id string, reason string, reversedBy string) (bool, error)
}

func (f *fakePaymentRepository) WithTx(tx *sql.Tx) payment.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePaymentRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*payment.Payment, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakePaymentRepository) FindAllByPayslip(ctx context.Context, companyID string, payslipID string) ([]payment.Payment, error) {
	if f.findAllByPayslipFn != nil {
		return f.findAllByPayslipFn(ctx, companyID, payslipID)
	}
	return nil, nil
}

func (f *fakePaymentRepository) SumEffectiveByPayslip(ctx context.Context, payslipID string) (int64, error) {
	if f.sumEffectiveByPayslipFn != nil {
		return f.sumEffectiveByPayslipFn(ctx, payslipID)
	}
	return 0, nil
}

func (f *fakePaymentRepository) MarkReversed(ctx context.Context, id string, reason string, reversedBy string) (bool, error) {
	if f.markReversedFn != nil {
		return f.markReversedFn(ctx, id, reason, reversedBy)
	}
	return true, nil
}

type fakePayslipRepository struct {
	withTxFn            func(tx *sql.Tx) payslip.Repository
	findByIDFn          func(ctx context.Context, companyID string, id string) (*payslip.Payslip, error)
	findByIDForUpdateFn func(ctx context.Context, companyID string, id string) (*payslip.Payslip, error)
	updateSettlementFn  func(ctx context.Context, id string, amountPaid int64, status string) error
}

func (f *fakePayslipRepository) WithTx(tx *sql.Tx) payslip.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayslipRepository) CreateBatch(ctx context.Context, payslips []payslip.Payslip) error {
	return nil
}

func (f *fakePayslipRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*payslip.Payslip, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakePayslipRepository) FindByIDForUpdate(ctx context.Context, companyID string, id string) (*payslip.Payslip, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, companyID, id)
	}
	return nil, sql.ErrNoRows
}

func (f *fakePayslipRepository) FindAll(ctx context.Context, companyID string, filter payslip.GetPayslipsFilterRequest) ([]payslip.Payslip, error) {
	return nil, nil
}

func (f *fakePayslipRepository) UpdateSettlement(ctx context.Context, id string, amountPaid int64, status string) error {
	if f.updateSettlementFn != nil {
		return f.updateSettlementFn(ctx, id, amountPaid, status)
	}
	return nil
}

func (f *fakePayslipRepository) CountByPayRun(ctx context.Context, companyID string, payRunID string) (int64, error) {
	return 0, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type paymentServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  payment.Service
	repo     *fakePaymentRepository
	payslips *fakePayslipRepository
	outbox   *fakeOutboxRepository
}

func setupPaymentServiceTest(t *testing.T) *paymentServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePaymentRepository{}
	payslips := &fakePayslipRepository{}
	outbox := &fakeOutboxRepository{}

	svc := payment.NewService(db, repo, payslips, outbox)

	return &paymentServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		payslips: payslips,
		outbox:   outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func testPayslip(companyID uuid.UUID, net, paid int64) *payslip.Payslip {
	return &payslip.Payslip{
		ID:         uuid.New(),
		CompanyID:  companyID,
		PayRunID:   uuid.New(),
		EmployeeID: uuid.New(),
		NetAmount:  net,
		AmountPaid: paid,
		Status:     payslip.DeriveStatus(paid, net),
	}
}

func TestPaymentService_Apply_PartialThenFull(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	t.Run("partial payment", func(t *testing.T) {
		deps := setupPaymentServiceTest(t)
		defer deps.db.Close()

		ps := testPayslip(companyID, 100000, 0)

		expectTx(t, deps.sqlMock, true)
		deps.payslips.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*payslip.Payslip, error) {
			return ps, nil
		}
		deps.repo.sumEffectiveByPayslipFn = func(ctx context.Context, payslipID string) (int64, error) {
			return 0, nil
		}

		var settledAmount int64
		var settledStatus string
		deps.payslips.updateSettlementFn = func(ctx context.Context, id string, amountPaid int64, status string) error {
			settledAmount = amountPaid
			settledStatus = status
			return nil
		}

		resp, err := deps.service.Apply(ctx, companyID.String(), actorID, ps.ID.String(), payment.ApplyPaymentRequest{
			Amount: 60000,
			Method: payment.MethodBankTransfer,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(60000), resp.Amount)
		assert.Equal(t, payslip.StatusPartiallyPaid, resp.PayslipStatus)
		assert.Equal(t, int64(40000), resp.Remaining)
		assert.Equal(t, int64(60000), settledAmount)
		assert.Equal(t, payslip.StatusPartiallyPaid, settledStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("second payment settles the payslip", func(t *testing.T) {
		deps := setupPaymentServiceTest(t)
		defer deps.db.Close()

		ps := testPayslip(companyID, 100000, 60000)

		expectTx(t, deps.sqlMock, true)
		deps.payslips.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*payslip.Payslip, error) {
			return ps, nil
		}
		deps.repo.sumEffectiveByPayslipFn = func(ctx context.Context, payslipID string) (int64, error) {
			return 60000, nil
		}

		var settledStatus string
		deps.payslips.updateSettlementFn = func(ctx context.Context, id string, amountPaid int64, status string) error {
			settledStatus = status
			return nil
		}

		resp, err := deps.service.Apply(ctx, companyID.String(), actorID, ps.ID.String(), payment.ApplyPaymentRequest{
			Amount: 40000,
			Method: payment.MethodCash,
		})

		assert.NoError(t, err)
		assert.Equal(t, payslip.StatusPaid, resp.PayslipStatus)
		assert.Equal(t, int64(0), resp.Remaining)
		assert.Equal(t, payslip.StatusPaid, settledStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("fully paid payslip rejects any further payment", func(t *testing.T) {
		deps := setupPaymentServiceTest(t)
		defer deps.db.Close()

		ps := testPayslip(companyID, 100000, 100000)

		expectTx(t, deps.sqlMock, false)
		deps.payslips.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*payslip.Payslip, error) {
			return ps, nil
		}
		deps.repo.sumEffectiveByPayslipFn = func(ctx context.Context, payslipID string) (int64, error) {
			return 100000, nil
		}

		_, err := deps.service.Apply(ctx, companyID.String(), actorID, ps.ID.String(), payment.ApplyPaymentRequest{
			Amount: 1,
			Method: payment.MethodCash,
		})

		assert.ErrorIs(t, err, paymenterrors.ErrAlreadyFullyPaid)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPaymentService_Apply_ExceedsRemaining(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	deps := setupPaymentServiceTest(t)
	defer deps.db.Close()

	ps := testPayslip(companyID, 100000, 55000)

	expectTx(t, deps.sqlMock, false)
	deps.payslips.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*payslip.Payslip, error) {
		return ps, nil
	}
	deps.repo.sumEffectiveByPayslipFn = func(ctx context.Context, payslipID string) (int64, error) {
		return 55000, nil
	}

	createCalled := false
	deps.repo.createFn = func(ctx context.Context, p *payment.Payment) error {
		createCalled = true
		return nil
	}

	_, err := deps.service.Apply(ctx, companyID.String(), actorID, ps.ID.String(), payment.ApplyPaymentRequest{
		Amount: 50000,
		Method: payment.MethodCash,
	})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	details, ok := appErr.Details.(map[string]any)
	assert.True(t, ok)
	// Error membawa sisa tagihan supaya client bisa koreksi sendiri.
	assert.Equal(t, int64(45000), details["remaining"])
	assert.False(t, createCalled)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPaymentService_Apply_Validation(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	payslipID := uuid.New().String()

	deps := setupPaymentServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Apply(ctx, companyID, actorID, payslipID, payment.ApplyPaymentRequest{
		Amount: 0,
		Method: payment.MethodCash,
	})
	assert.ErrorIs(t, err, paymenterrors.ErrInvalidAmount)

	_, err = deps.service.Apply(ctx, companyID, actorID, payslipID, payment.ApplyPaymentRequest{
		Amount: 1000,
		Method: "BARTER",
	})
	assert.ErrorIs(t, err, paymenterrors.ErrInvalidMethod)
}

func TestPaymentService_Apply_LedgerIntegrity(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	deps := setupPaymentServiceTest(t)
	defer deps.db.Close()

	ps := testPayslip(companyID, 100000, 100000)

	expectTx(t, deps.sqlMock, false)
	deps.payslips.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*payslip.Payslip, error) {
		return ps, nil
	}
	// Ledger menjumlah lebih dari net: bug, bukan kondisi bisnis.
	deps.repo.sumEffectiveByPayslipFn = func(ctx context.Context, payslipID string) (int64, error) {
		return 120000, nil
	}

	_, err := deps.service.Apply(ctx, companyID.String(), actorID, ps.ID.String(), payment.ApplyPaymentRequest{
		Amount: 1000,
		Method: payment.MethodCash,
	})

	assert.ErrorIs(t, err, paymenterrors.ErrLedgerIntegrity)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPaymentService_Reverse(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	t.Run("reversal restores balance and status", func(t *testing.T) {
		deps := setupPaymentServiceTest(t)
		defer deps.db.Close()

		ps := testPayslip(companyID, 100000, 100000)
		original := &payment.Payment{
			ID:        uuid.New(),
			CompanyID: companyID,
			PayslipID: ps.ID,
			Amount:    40000,
			Method:    payment.MethodCash,
			PaidAt:    time.Now().UTC(),
			CreatedBy: uuid.MustParse(actorID),
		}

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payment.Payment, error) {
			return original, nil
		}

		expectTx(t, deps.sqlMock, true)
		deps.payslips.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*payslip.Payslip, error) {
			return ps, nil
		}
		deps.repo.markReversedFn = func(ctx context.Context, id, reason, reversedBy string) (bool, error) {
			assert.Equal(t, original.ID.String(), id)
			assert.Equal(t, "salah nominal", reason)
			return true, nil
		}
		deps.repo.sumEffectiveByPayslipFn = func(ctx context.Context, payslipID string) (int64, error) {
			return 60000, nil
		}

		var settledAmount int64
		var settledStatus string
		deps.payslips.updateSettlementFn = func(ctx context.Context, id string, amountPaid int64, status string) error {
			settledAmount = amountPaid
			settledStatus = status
			return nil
		}

		var outboxEvent *kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			outboxEvent = &event
			return nil
		}

		resp, err := deps.service.Reverse(ctx, companyID.String(), actorID, original.ID.String(), payment.ReversePaymentRequest{
			Reason: "salah nominal",
		})

		assert.NoError(t, err)
		assert.True(t, resp.Reversed)
		assert.Equal(t, payslip.StatusPartiallyPaid, resp.PayslipStatus)
		assert.Equal(t, int64(40000), resp.Remaining)
		assert.Equal(t, int64(60000), settledAmount)
		assert.Equal(t, payslip.StatusPartiallyPaid, settledStatus)
		assert.NotNil(t, outboxEvent)
		assert.Equal(t, "payment.reversed", outboxEvent.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("double reverse rejected", func(t *testing.T) {
		deps := setupPaymentServiceTest(t)
		defer deps.db.Close()

		ps := testPayslip(companyID, 100000, 60000)
		original := &payment.Payment{
			ID:        uuid.New(),
			CompanyID: companyID,
			PayslipID: ps.ID,
			Amount:    40000,
			Method:    payment.MethodCash,
		}

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payment.Payment, error) {
			return original, nil
		}

		expectTx(t, deps.sqlMock, false)
		deps.payslips.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*payslip.Payslip, error) {
			return ps, nil
		}
		deps.repo.markReversedFn = func(ctx context.Context, id, reason, reversedBy string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Reverse(ctx, companyID.String(), actorID, original.ID.String(), payment.ReversePaymentRequest{
			Reason: "dobel",
		})

		assert.ErrorIs(t, err, paymenterrors.ErrAlreadyReversed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPaymentService_GetRemaining(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	deps := setupPaymentServiceTest(t)
	defer deps.db.Close()

	ps := testPayslip(companyID, 100000, 60000)

	deps.payslips.findByIDFn = func(ctx context.Context, cid, id string) (*payslip.Payslip, error) {
		return ps, nil
	}
	deps.repo.sumEffectiveByPayslipFn = func(ctx context.Context, payslipID string) (int64, error) {
		return 60000, nil
	}

	resp, err := deps.service.GetRemaining(ctx, companyID.String(), ps.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, int64(100000), resp.NetAmount)
	assert.Equal(t, int64(60000), resp.AmountPaid)
	assert.Equal(t, int64(40000), resp.Remaining)
	assert.Equal(t, payslip.StatusPartiallyPaid, resp.Status)
}

func TestPaymentService_ListByPayslip_EmptyLedger(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	payslipID := uuid.New().String()

	deps := setupPaymentServiceTest(t)
	defer deps.db.Close()

	resp, err := deps.service.ListByPayslip(ctx, companyID, payslipID)

	assert.NoError(t, err)
	assert.Empty(t, resp)
	assert.NotNil(t, resp)
}
