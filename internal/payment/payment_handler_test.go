package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payment"
	paymenterrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payment/errors"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payslip"
)

type apiError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePaymentService struct {
	applyFn         func(ctx context.Context, companyID, actorID, payslipID string, req payment.ApplyPaymentRequest) (payment.PaymentResponse, error)
	reverseFn       func(ctx context.Context, companyID, actorID, paymentID string, req payment.ReversePaymentRequest) (payment.PaymentResponse, error)
	listByPayslipFn func(ctx context.Context, companyID, payslipID string) ([]payment.PaymentResponse, error)
	getRemainingFn  func(ctx context.Context, companyID, payslipID string) (payment.RemainingResponse, error)
}

func (f *fakePaymentService) Apply(ctx context.Context, companyID, actorID, payslipID string, req payment.ApplyPaymentRequest) (payment.PaymentResponse, error) {
	return f.applyFn(ctx, companyID, actorID, payslipID, req)
}

func (f *fakePaymentService) Reverse(ctx context.Context, companyID, actorID, paymentID string, req payment.ReversePaymentRequest) (payment.PaymentResponse, error) {
	return f.reverseFn(ctx, companyID, actorID, paymentID, req)
}

func (f *fakePaymentService) ListByPayslip(ctx context.Context, companyID, payslipID string) ([]payment.PaymentResponse, error) {
	return f.listByPayslipFn(ctx, companyID, payslipID)
}

func (f *fakePaymentService) GetRemaining(ctx context.Context, companyID, payslipID string) (payment.RemainingResponse, error) {
	return f.getRemainingFn(ctx, companyID, payslipID)
}

func TestPaymentHandler_Apply(t *testing.T) {
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	payslipID := uuid.New().String()

	svc := &fakePaymentService{
		applyFn: func(ctx context.Context, cid, aid, pid string, req payment.ApplyPaymentRequest) (payment.PaymentResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, payslipID, pid)
			assert.Equal(t, int64(60000), req.Amount)
			return payment.PaymentResponse{
				ID:            uuid.New().String(),
				PayslipID:     pid,
				Amount:        req.Amount,
				Method:        req.Method,
				PayslipStatus: payslip.StatusPartiallyPaid,
				Remaining:     40000,
			}, nil
		},
	}

	h := payment.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"amount":60000,"method":"BANK_TRANSFER"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payslips/"+payslipID+"/payments", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: payslipID}}
	c.Set("company_id", companyID)
	c.Set("user_id", actorID)

	h.Apply(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var resp payment.PaymentResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, payslip.StatusPartiallyPaid, resp.PayslipStatus)
	assert.Equal(t, int64(40000), resp.Remaining)
}

func TestPaymentHandler_Apply_ExceedsRemaining(t *testing.T) {
	payslipID := uuid.New().String()

	svc := &fakePaymentService{
		applyFn: func(ctx context.Context, cid, aid, pid string, req payment.ApplyPaymentRequest) (payment.PaymentResponse, error) {
			return payment.PaymentResponse{}, paymenterrors.AmountExceedsRemaining(45000)
		},
	}

	h := payment.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"amount":50000,"method":"CASH"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payslips/"+payslipID+"/payments", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: payslipID}}
	c.Set("company_id", uuid.New().String())
	c.Set("user_id", uuid.New().String())

	h.Apply(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.NotNil(t, env.Error)

	// Detail error membawa sisa tagihan untuk panduan UI.
	var details struct {
		Remaining int64 `json:"remaining"`
	}
	assert.NoError(t, json.Unmarshal(env.Error.Details, &details))
	assert.Equal(t, int64(45000), details.Remaining)
}

func TestPaymentHandler_Apply_InvalidBody(t *testing.T) {
	svc := &fakePaymentService{
		applyFn: func(ctx context.Context, cid, aid, pid string, req payment.ApplyPaymentRequest) (payment.PaymentResponse, error) {
			t.Fatal("service must not be called on invalid body")
			return payment.PaymentResponse{}, nil
		},
	}

	h := payment.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"amount":-5,"method":"CASH"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payslips/x/payments", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Set("company_id", uuid.New().String())
	c.Set("user_id", uuid.New().String())

	h.Apply(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}

func TestPaymentHandler_ListByPayslip(t *testing.T) {
	companyID := uuid.New().String()
	payslipID := uuid.New().String()

	svc := &fakePaymentService{
		listByPayslipFn: func(ctx context.Context, cid, pid string) ([]payment.PaymentResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, payslipID, pid)
			return []payment.PaymentResponse{
				{ID: uuid.New().String(), Amount: 60000},
				{ID: uuid.New().String(), Amount: 40000},
			}, nil
		},
	}

	h := payment.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/payslips/"+payslipID+"/payments", nil)
	c.Params = gin.Params{{Key: "id", Value: payslipID}}
	c.Set("company_id", companyID)

	h.ListByPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var resp []payment.PaymentResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Len(t, resp, 2)
}

func TestPaymentHandler_Reverse_AlreadyReversed(t *testing.T) {
	paymentID := uuid.New().String()

	svc := &fakePaymentService{
		reverseFn: func(ctx context.Context, cid, aid, pid string, req payment.ReversePaymentRequest) (payment.PaymentResponse, error) {
			return payment.PaymentResponse{}, paymenterrors.ErrAlreadyReversed
		},
	}

	h := payment.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"reason":"salah input"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payments/"+paymentID+"/reverse", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: paymentID}}
	c.Set("company_id", uuid.New().String())
	c.Set("user_id", uuid.New().String())

	h.Reverse(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}
