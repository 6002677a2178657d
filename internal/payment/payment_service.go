package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/events"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/messaging/kafka"
	paymenterrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payment/errors"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payslip"
	paysliperrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payslip/errors"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/contextutil"
)

//go:generate mockgen -source=payment_service.go -destination=mock/payment_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, companyID, actorID, payslipID string, req ApplyPaymentRequest) (PaymentResponse, error)
	Reverse(ctx context.Context, companyID, actorID, paymentID string, req ReversePaymentRequest) (PaymentResponse, error)
	ListByPayslip(ctx context.Context, companyID, payslipID string) ([]PaymentResponse, error)
	GetRemaining(ctx context.Context, companyID, payslipID string) (RemainingResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	payslips payslip.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	payslipRepo payslip.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payment.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		payslips: payslipRepo,
		outbox:   outboxRepo,
		logger:   l,
	}
}

// Apply memvalidasi saldo dan menulis payment sebagai SATU unit atomik:
// baris payslip di-lock FOR UPDATE, sisa tagihan dihitung ulang dari ledger
// di server (angka "remaining" dari client cuma hint), lalu payment + status
// turunan ditulis dalam transaksi yang sama. Dua submit konkuren akan antre
// di lock; yang tidak muat saldo ditolak, tidak pernah overshoot.
func (s *service) Apply(
	ctx context.Context,
	companyID, actorID, payslipID string,
	req ApplyPaymentRequest,
) (PaymentResponse, error) {
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return PaymentResponse{}, paymenterrors.ErrPaymentNotFound
	}

	if req.Amount <= 0 {
		return PaymentResponse{}, paymenterrors.ErrInvalidAmount
	}
	if !ValidMethod(req.Method) {
		return PaymentResponse{}, paymenterrors.ErrInvalidMethod
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil && *req.PaidAt != "" {
		t, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return PaymentResponse{}, apperror.InvalidField("paid_at")
		}
		paidAt = t
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	ps, err := s.payslips.WithTx(tx).FindByIDForUpdate(ctx, companyID, payslipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PaymentResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PaymentResponse{}, err
	}

	paid, err := s.repo.WithTx(tx).SumEffectiveByPayslip(ctx, payslipID)
	if err != nil {
		return PaymentResponse{}, err
	}

	if paid > ps.NetAmount {
		// Invariant ledger rusak: bukan kondisi yang bisa dikoreksi diam-diam.
		s.logger.Error("ledger integrity violation: paid sum exceeds net amount",
			zap.String("payslip_id", payslipID),
			zap.Int64("paid", paid),
			zap.Int64("net_amount", ps.NetAmount),
		)
		return PaymentResponse{}, paymenterrors.ErrLedgerIntegrity
	}

	if payslip.DeriveStatus(paid, ps.NetAmount) == payslip.StatusPaid {
		return PaymentResponse{}, paymenterrors.ErrAlreadyFullyPaid
	}

	remaining := ps.NetAmount - paid
	if req.Amount > remaining {
		return PaymentResponse{}, paymenterrors.AmountExceedsRemaining(remaining)
	}

	p := &Payment{
		ID:        uuid.New(),
		CompanyID: ps.CompanyID,
		PayslipID: ps.ID,
		Amount:    req.Amount,
		Method:    req.Method,
		PaidAt:    paidAt,
		Notes:     req.Notes,
		CreatedBy: createdBy,
	}

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		return PaymentResponse{}, err
	}

	newPaid := paid + req.Amount
	newStatus := payslip.DeriveStatus(newPaid, ps.NetAmount)

	if err := s.payslips.WithTx(tx).UpdateSettlement(ctx, payslipID, newPaid, newStatus); err != nil {
		return PaymentResponse{}, err
	}

	if err := s.enqueueRecordedEvent(ctx, tx, p, newStatus, false); err != nil {
		return PaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PaymentResponse{}, err
	}

	s.logger.Info("payment applied",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payment_id", p.ID.String()),
		zap.String("payslip_id", payslipID),
		zap.Int64("amount", req.Amount),
		zap.String("new_status", newStatus),
	)

	resp := mapToResponse(*p)
	resp.PayslipStatus = newStatus
	resp.Remaining = ps.NetAmount - newPaid
	return resp, nil
}

// Reverse adalah compensating entry: payment asli tetap di ledger, ditandai
// reversed, dan settlement payslip dihitung turun dalam transaksi yang sama.
func (s *service) Reverse(
	ctx context.Context,
	companyID, actorID, paymentID string,
	req ReversePaymentRequest,
) (PaymentResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PaymentResponse{}, paymenterrors.ErrPaymentNotFound
	}

	existing, err := s.repo.FindByIDAndCompany(ctx, companyID, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, paymenterrors.ErrPaymentNotFound
		}
		return PaymentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	// Lock payslip dulu: semua mutasi ledger satu payslip serial lewat
	// lock yang sama dengan Apply.
	ps, err := s.payslips.WithTx(tx).FindByIDForUpdate(ctx, companyID, existing.PayslipID.String())
	if err != nil {
		return PaymentResponse{}, err
	}

	reversed, err := s.repo.WithTx(tx).MarkReversed(ctx, paymentID, req.Reason, actorID)
	if err != nil {
		return PaymentResponse{}, err
	}
	if !reversed {
		return PaymentResponse{}, paymenterrors.ErrAlreadyReversed
	}

	newPaid, err := s.repo.WithTx(tx).SumEffectiveByPayslip(ctx, ps.ID.String())
	if err != nil {
		return PaymentResponse{}, err
	}
	newStatus := payslip.DeriveStatus(newPaid, ps.NetAmount)

	if err := s.payslips.WithTx(tx).UpdateSettlement(ctx, ps.ID.String(), newPaid, newStatus); err != nil {
		return PaymentResponse{}, err
	}

	if err := s.enqueueRecordedEvent(ctx, tx, existing, newStatus, true); err != nil {
		return PaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PaymentResponse{}, err
	}

	s.logger.Info("payment reversed",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payment_id", paymentID),
		zap.String("payslip_id", ps.ID.String()),
		zap.String("reason", req.Reason),
	)

	now := time.Now().UTC()
	existing.ReversedAt = &now
	existing.ReversalReason = &req.Reason

	resp := mapToResponse(*existing)
	resp.PayslipStatus = newStatus
	resp.Remaining = ps.NetAmount - newPaid
	return resp, nil
}

func (s *service) ListByPayslip(
	ctx context.Context,
	companyID, payslipID string,
) ([]PaymentResponse, error) {
	payments, err := s.repo.FindAllByPayslip(ctx, companyID, payslipID)
	if err != nil {
		return nil, err
	}

	resp := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

// GetRemaining membaca sisa tagihan otoritatif dari ledger, bukan dari
// field denormalisasi, dan berteriak di log bila keduanya tidak sinkron.
func (s *service) GetRemaining(
	ctx context.Context,
	companyID, payslipID string,
) (RemainingResponse, error) {
	ps, err := s.payslips.FindByIDAndCompany(ctx, companyID, payslipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RemainingResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return RemainingResponse{}, err
	}

	paid, err := s.repo.SumEffectiveByPayslip(ctx, payslipID)
	if err != nil {
		return RemainingResponse{}, err
	}

	if paid != ps.AmountPaid {
		s.logger.Error("payslip settlement out of sync with ledger",
			zap.String("payslip_id", payslipID),
			zap.Int64("ledger_sum", paid),
			zap.Int64("stored_amount_paid", ps.AmountPaid),
		)
	}
	if paid > ps.NetAmount {
		return RemainingResponse{}, paymenterrors.ErrLedgerIntegrity
	}

	remaining := ps.NetAmount - paid
	if remaining < 0 {
		remaining = 0
	}

	return RemainingResponse{
		PayslipID:  payslipID,
		NetAmount:  ps.NetAmount,
		AmountPaid: paid,
		Remaining:  remaining,
		Status:     payslip.DeriveStatus(paid, ps.NetAmount),
	}, nil
}

func (s *service) enqueueRecordedEvent(
	ctx context.Context,
	tx *sql.Tx,
	p *Payment,
	payslipStatus string,
	reversal bool,
) error {
	eventType := "payment.recorded"
	if reversal {
		eventType = "payment.reversed"
	}

	event := events.PaymentRecordedEvent{
		EventType:     eventType,
		PaymentID:     p.ID.String(),
		PayslipID:     p.PayslipID.String(),
		CompanyID:     p.CompanyID.String(),
		Amount:        p.Amount,
		Method:        p.Method,
		PayslipStatus: payslipStatus,
		Reversal:      reversal,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payment",
		AggregateID:   p.ID.String(),
		EventType:     eventType,
		Topic:         events.PaymentRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:        p.ID.String(),
		CompanyID: p.CompanyID.String(),
		PayslipID: p.PayslipID.String(),
		Amount:    p.Amount,
		Method:    p.Method,
		PaidAt:    p.PaidAt.Format(time.RFC3339),
		Notes:     p.Notes,
		Reversed:  p.Reversed(),
	}

	if p.ReversedAt != nil {
		v := p.ReversedAt.Format(time.RFC3339)
		resp.ReversedAt = &v
	}
	resp.ReversalReason = p.ReversalReason

	return resp
}
