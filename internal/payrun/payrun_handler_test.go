package payrun_test

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

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payrun"
	payrunerrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payrun/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
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

type fakePayRunService struct {
	createFn  func(ctx context.Context, companyID, actorID string, req payrun.CreatePayRunRequest) (payrun.PayRunResponse, error)
	getAllFn  func(ctx context.Context, companyID string, filter payrun.GetPayRunsFilterRequest) ([]payrun.PayRunResponse, error)
	getByIDFn func(ctx context.Context, companyID, id string) (payrun.PayRunResponse, error)
	updateFn  func(ctx context.Context, companyID, actorID, id string, req payrun.UpdatePayRunRequest) (payrun.PayRunResponse, error)
	approveFn func(ctx context.Context, companyID, actorID, id string) (payrun.PayRunResponse, error)
	closeFn   func(ctx context.Context, companyID, actorID, id string) (payrun.PayRunResponse, error)
	archiveFn func(ctx context.Context, companyID, actorID, id string) (payrun.PayRunResponse, error)
	deleteFn  func(ctx context.Context, companyID, id string) error
}

func (f *fakePayRunService) Create(ctx context.Context, companyID, actorID string, req payrun.CreatePayRunRequest) (payrun.PayRunResponse, error) {
	return f.createFn(ctx, companyID, actorID, req)
}

func (f *fakePayRunService) GetAll(ctx context.Context, companyID string, filter payrun.GetPayRunsFilterRequest) ([]payrun.PayRunResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}

func (f *fakePayRunService) GetByID(ctx context.Context, companyID, id string) (payrun.PayRunResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}

func (f *fakePayRunService) Update(ctx context.Context, companyID, actorID, id string, req payrun.UpdatePayRunRequest) (payrun.PayRunResponse, error) {
	return f.updateFn(ctx, companyID, actorID, id, req)
}

func (f *fakePayRunService) Approve(ctx context.Context, companyID, actorID, id string) (payrun.PayRunResponse, error) {
	return f.approveFn(ctx, companyID, actorID, id)
}

func (f *fakePayRunService) Close(ctx context.Context, companyID, actorID, id string) (payrun.PayRunResponse, error) {
	return f.closeFn(ctx, companyID, actorID, id)
}

func (f *fakePayRunService) Archive(ctx context.Context, companyID, actorID, id string) (payrun.PayRunResponse, error) {
	return f.archiveFn(ctx, companyID, actorID, id)
}

func (f *fakePayRunService) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func TestPayRunHandler_Create(t *testing.T) {
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	emp1 := uuid.New().String()

	svc := &fakePayRunService{
		createFn: func(ctx context.Context, cid, aid string, req payrun.CreatePayRunRequest) (payrun.PayRunResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, []string{emp1}, req.EmployeeIDs)
			return payrun.PayRunResponse{
				ID:        uuid.New().String(),
				RunNumber: "PR-0001",
				Status:    payrun.StatusDraft,
			}, nil
		},
	}

	h := payrun.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"title":"Februari 2026","period_start":"2026-02-01","period_end":"2026-02-28","employee_ids":["` + emp1 + `"]}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payruns", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", companyID)
	c.Set("user_id", actorID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var resp payrun.PayRunResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, payrun.StatusDraft, resp.Status)
}

func TestPayRunHandler_Approve_AlreadyGenerated(t *testing.T) {
	runID := uuid.New().String()

	svc := &fakePayRunService{
		approveFn: func(ctx context.Context, cid, aid, id string) (payrun.PayRunResponse, error) {
			return payrun.PayRunResponse{}, payrunerrors.ErrAlreadyGenerated
		},
	}

	h := payrun.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPatch, "/payruns/"+runID+"/approve", nil)
	c.Params = gin.Params{{Key: "id", Value: runID}}
	c.Set("company_id", uuid.New().String())
	c.Set("user_id", uuid.New().String())

	h.Approve(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}

func TestPayRunHandler_Close_InvalidTransition(t *testing.T) {
	runID := uuid.New().String()

	svc := &fakePayRunService{
		closeFn: func(ctx context.Context, cid, aid, id string) (payrun.PayRunResponse, error) {
			return payrun.PayRunResponse{}, payrunerrors.ErrInvalidTransition
		},
	}

	h := payrun.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPatch, "/payruns/"+runID+"/close", nil)
	c.Params = gin.Params{{Key: "id", Value: runID}}
	c.Set("company_id", uuid.New().String())
	c.Set("user_id", uuid.New().String())

	h.Close(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}

func TestPayRunHandler_GetById_NotFound(t *testing.T) {
	runID := uuid.New().String()

	svc := &fakePayRunService{
		getByIDFn: func(ctx context.Context, cid, id string) (payrun.PayRunResponse, error) {
			return payrun.PayRunResponse{}, payrunerrors.ErrPayRunNotFound
		},
	}

	h := payrun.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/payruns/"+runID, nil)
	c.Params = gin.Params{{Key: "id", Value: runID}}
	c.Set("company_id", uuid.New().String())

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
