package payrun

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/employee"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/events"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/messaging/kafka"
	payrunerrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payrun/errors"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/contextutil"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/counter"
)

//go:generate mockgen -source=payrun_service.go -destination=mock/payrun_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreatePayRunRequest) (PayRunResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetPayRunsFilterRequest) ([]PayRunResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayRunResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdatePayRunRequest) (PayRunResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (PayRunResponse, error)
	Close(ctx context.Context, companyID, actorID, id string) (PayRunResponse, error)
	Archive(ctx context.Context, companyID, actorID, id string) (PayRunResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	generator *Generator
	employees employee.Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	generator *Generator,
	employees employee.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payrun.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrun.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		generator: generator,
		employees: employees,
		counter:   counterRepo,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreatePayRunRequest,
) (PayRunResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidCompanyID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidActorID
	}

	periodStart, periodEnd, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return PayRunResponse{}, err
	}

	memberIDs, err := validateEmployeeSelection(req.EmployeeIDs)
	if err != nil {
		return PayRunResponse{}, err
	}

	active, err := s.employees.FindActiveByIDs(ctx, companyID, req.EmployeeIDs)
	if err != nil {
		return PayRunResponse{}, err
	}
	if len(active) != len(memberIDs) {
		return PayRunResponse{}, payrunerrors.ErrEmployeeNotInCompany
	}

	seq, err := s.counter.GetNextValue(ctx, companyID, counter.TypePayRunNumber)
	if err != nil {
		return PayRunResponse{}, err
	}

	run := &PayRun{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		RunNumber:   counter.FormatRunNumber(seq),
		Title:       req.Title,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      StatusDraft,
		CreatedBy:   createdByUUID,
	}
	run.Employees = buildMembers(run.ID, memberIDs)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayRunResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, run); err != nil {
		return PayRunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayRunResponse{}, err
	}

	s.logger.Info("pay run created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("pay_run_id", run.ID.String()),
		zap.String("run_number", run.RunNumber),
		zap.Int("employee_count", len(memberIDs)),
	)

	return mapToResponse(*run), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetPayRunsFilterRequest,
) ([]PayRunResponse, error) {
	runs, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]PayRunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapToResponse(run)
	}
	return resp, nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PayRunResponse, error) {
	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayRunResponse{}, payrunerrors.ErrPayRunNotFound
		}
		return PayRunResponse{}, err
	}

	return mapToResponse(*run), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, actorID, id string,
	req UpdatePayRunRequest,
) (PayRunResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidActorID
	}

	periodStart, periodEnd, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return PayRunResponse{}, err
	}

	memberIDs, err := validateEmployeeSelection(req.EmployeeIDs)
	if err != nil {
		return PayRunResponse{}, err
	}

	active, err := s.employees.FindActiveByIDs(ctx, companyID, req.EmployeeIDs)
	if err != nil {
		return PayRunResponse{}, err
	}
	if len(active) != len(memberIDs) {
		return PayRunResponse{}, payrunerrors.ErrEmployeeNotInCompany
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PayRunResponse{}, payrunerrors.ErrPayRunNotFound
		}
		return PayRunResponse{}, err
	}

	if run.Status != StatusDraft {
		return PayRunResponse{}, payrunerrors.ErrImmutableAfterApproval
	}

	run.Title = req.Title
	run.PeriodStart = periodStart
	run.PeriodEnd = periodEnd
	run.Employees = buildMembers(run.ID, memberIDs)

	if err := qtx.UpdateDraftFields(ctx, run); err != nil {
		return PayRunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayRunResponse{}, err
	}

	return mapToResponse(*run), nil
}

// Approve menjalankan seluruh unit approval dalam satu transaksi:
// lock baris run, generate semua payslip, flip status, tulis outbox event.
// Gagal di tengah berarti rollback utuh; run tidak pernah APPROVED dengan
// payslip yang bolong.
func (s *service) Approve(
	ctx context.Context,
	companyID, actorID, id string,
) (PayRunResponse, error) {
	approvedBy, err := uuid.Parse(actorID)
	if err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PayRunResponse{}, payrunerrors.ErrPayRunNotFound
		}
		return PayRunResponse{}, err
	}

	switch run.Status {
	case StatusApproved:
		return PayRunResponse{}, payrunerrors.ErrAlreadyGenerated
	case StatusClosed:
		return PayRunResponse{}, payrunerrors.ErrInvalidTransition
	}

	payslips, err := s.generator.Generate(ctx, tx, run)
	if err != nil {
		return PayRunResponse{}, err
	}

	flipped, err := qtx.MarkApproved(ctx, id, actorID)
	if err != nil {
		return PayRunResponse{}, err
	}
	if !flipped {
		// Guard status di repo gagal padahal baris sudah kita lock: race
		// yang seharusnya mustahil.
		return PayRunResponse{}, payrunerrors.ErrAlreadyGenerated
	}

	if err := s.enqueueApprovedEvent(ctx, tx, run, actorID, len(payslips)); err != nil {
		return PayRunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayRunResponse{}, err
	}

	now := time.Now().UTC()
	run.Status = StatusApproved
	run.ApprovedBy = &approvedBy
	run.ApprovedAt = &now

	s.logger.Info("pay run approved",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("pay_run_id", id),
		zap.String("run_number", run.RunNumber),
		zap.Int("payslip_count", len(payslips)),
	)

	return mapToResponse(*run), nil
}

func (s *service) Close(
	ctx context.Context,
	companyID, actorID, id string,
) (PayRunResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PayRunResponse{}, payrunerrors.ErrPayRunNotFound
		}
		return PayRunResponse{}, err
	}

	if run.Status != StatusApproved {
		return PayRunResponse{}, payrunerrors.ErrInvalidTransition
	}

	closed, err := qtx.MarkClosed(ctx, id)
	if err != nil {
		return PayRunResponse{}, err
	}
	if !closed {
		return PayRunResponse{}, payrunerrors.ErrInvalidTransition
	}

	if err := tx.Commit(); err != nil {
		return PayRunResponse{}, err
	}

	now := time.Now().UTC()
	run.Status = StatusClosed
	run.ClosedAt = &now

	s.logger.Info("pay run closed",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("pay_run_id", id),
	)

	return mapToResponse(*run), nil
}

// Archive adalah jalur resmi menyingkirkan run historis: run APPROVED/CLOSED
// tidak pernah dihapus demi integritas riwayat pembayaran.
func (s *service) Archive(
	ctx context.Context,
	companyID, actorID, id string,
) (PayRunResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PayRunResponse{}, payrunerrors.ErrPayRunNotFound
		}
		return PayRunResponse{}, err
	}

	if run.Status != StatusClosed || run.ArchivedAt != nil {
		return PayRunResponse{}, payrunerrors.ErrArchiveOnlyClosed
	}

	archived, err := qtx.MarkArchived(ctx, id)
	if err != nil {
		return PayRunResponse{}, err
	}
	if !archived {
		return PayRunResponse{}, payrunerrors.ErrArchiveOnlyClosed
	}

	if err := tx.Commit(); err != nil {
		return PayRunResponse{}, err
	}

	now := time.Now().UTC()
	run.ArchivedAt = &now

	return mapToResponse(*run), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payrunerrors.ErrPayRunNotFound
		}
		return err
	}

	if run.Status != StatusDraft {
		return payrunerrors.ErrDeleteOnlyDraft
	}

	deleted, err := qtx.DeleteDraft(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return payrunerrors.ErrDeleteOnlyDraft
	}

	return tx.Commit()
}

func (s *service) enqueueApprovedEvent(
	ctx context.Context,
	tx *sql.Tx,
	run *PayRun,
	actorID string,
	payslipCount int,
) error {
	event := events.PayRunApprovedEvent{
		EventType:    "payrun.approved",
		PayRunID:     run.ID.String(),
		CompanyID:    run.CompanyID.String(),
		ApprovedBy:   actorID,
		PayslipCount: payslipCount,
		OccurredAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "pay_run",
		AggregateID:   run.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayRunApprovedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	periodStart, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	periodEnd, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	// Periode kosong (start == end) juga ditolak.
	if !periodStart.Before(periodEnd) {
		return time.Time{}, time.Time{}, payrunerrors.ErrInvalidPeriod
	}

	return periodStart, periodEnd, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrunerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func validateEmployeeSelection(ids []string) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, payrunerrors.ErrEmptySelection
	}

	seen := make(map[string]struct{}, len(ids))
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, payrunerrors.ErrEmployeeNotInCompany
		}
		if _, dup := seen[raw]; dup {
			return nil, payrunerrors.ErrDuplicateEmployee
		}
		seen[raw] = struct{}{}
		parsed = append(parsed, id)
	}

	return parsed, nil
}

func buildMembers(runID uuid.UUID, memberIDs []uuid.UUID) []PayRunEmployee {
	members := make([]PayRunEmployee, len(memberIDs))
	for i, employeeID := range memberIDs {
		members[i] = PayRunEmployee{
			ID:         uuid.New(),
			PayRunID:   runID,
			EmployeeID: employeeID,
			Position:   i,
		}
	}
	return members
}

func mapToResponse(run PayRun) PayRunResponse {
	resp := PayRunResponse{
		ID:          run.ID.String(),
		CompanyID:   run.CompanyID.String(),
		RunNumber:   run.RunNumber,
		Title:       run.Title,
		PeriodStart: run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   run.PeriodEnd.Format("2006-01-02"),
		Status:      run.Status,
		EmployeeIDs: run.EmployeeIDs(),
		CreatedBy:   run.CreatedBy.String(),
	}

	if run.ApprovedBy != nil {
		v := run.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if run.ApprovedAt != nil {
		v := run.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if run.ClosedAt != nil {
		v := run.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &v
	}
	if run.ArchivedAt != nil {
		v := run.ArchivedAt.Format(time.RFC3339)
		resp.ArchivedAt = &v
	}

	return resp
}
