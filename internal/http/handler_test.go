package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurpe/wasteops-rental/internal/http/middleware"
	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
	"github.com/nurpe/wasteops-rental/internal/service"
)

type stubParser struct {
	principal model.Principal
}

func (s *stubParser) Parse(token string) (model.Principal, error) {
	if token != "valid-token" {
		return model.Principal{}, errors.New("bad token")
	}
	return s.principal, nil
}

type memJobStore struct {
	jobs map[uuid.UUID]model.Job
}

func (m *memJobStore) List(_ context.Context, tenantID uuid.UUID, filter repository.JobFilter) ([]model.Job, error) {
	out := []model.Job{}
	for _, j := range m.jobs {
		if j.TenantID != tenantID {
			continue
		}
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *memJobStore) GetByID(_ context.Context, tenantID, id uuid.UUID) (*model.Job, error) {
	j, ok := m.jobs[id]
	if !ok || j.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return &j, nil
}

func (m *memJobStore) Create(_ context.Context, tenantID uuid.UUID, job model.Job) (*model.Job, error) {
	job.ID = uuid.New()
	job.TenantID = tenantID
	m.jobs[job.ID] = job
	return &job, nil
}

func (m *memJobStore) Update(_ context.Context, tenantID, id uuid.UUID, patch repository.JobPatch) (*model.Job, error) {
	j, ok := m.jobs[id]
	if !ok || j.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	if patch.CarID != nil {
		j.CarID = *patch.CarID
	}
	if patch.Status != nil {
		j.Status = *patch.Status
	}
	if patch.Comment != nil {
		j.Comment = *patch.Comment
	}
	m.jobs[id] = j
	return &j, nil
}

func (m *memJobStore) UpdateAssignment(_ context.Context, tenantID, id uuid.UUID, carID *uuid.UUID, status model.JobStatus) (*model.Job, error) {
	j, ok := m.jobs[id]
	if !ok || j.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	j.CarID = carID
	j.Status = status
	m.jobs[id] = j
	return &j, nil
}

func (m *memJobStore) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	j, ok := m.jobs[id]
	if !ok || j.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	delete(m.jobs, id)
	return nil
}

type memCarStore struct {
	cars map[uuid.UUID]model.Car
}

func (m *memCarStore) List(_ context.Context, tenantID uuid.UUID) ([]model.Car, error) {
	out := []model.Car{}
	for _, c := range m.cars {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCarStore) ListAvailable(ctx context.Context, tenantID uuid.UUID) ([]model.Car, error) {
	return m.List(ctx, tenantID)
}

func (m *memCarStore) GetByID(_ context.Context, tenantID, id uuid.UUID) (*model.Car, error) {
	c, ok := m.cars[id]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (m *memCarStore) Create(_ context.Context, tenantID uuid.UUID, car model.Car) (*model.Car, error) {
	car.ID = uuid.New()
	car.TenantID = tenantID
	m.cars[car.ID] = car
	return &car, nil
}

func (m *memCarStore) Update(_ context.Context, tenantID, id uuid.UUID, _ repository.CarPatch) (*model.Car, error) {
	c, ok := m.cars[id]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (m *memCarStore) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	c, ok := m.cars[id]
	if !ok || c.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	delete(m.cars, id)
	return nil
}

type memEmployeeStore struct {
	employees map[uuid.UUID]model.Employee
}

func (m *memEmployeeStore) List(_ context.Context, tenantID uuid.UUID) ([]model.Employee, error) {
	out := []model.Employee{}
	for _, e := range m.employees {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEmployeeStore) GetByID(_ context.Context, tenantID, id uuid.UUID) (*model.Employee, error) {
	e, ok := m.employees[id]
	if !ok || e.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (m *memEmployeeStore) Create(_ context.Context, tenantID uuid.UUID, employee model.Employee) (*model.Employee, error) {
	employee.ID = uuid.New()
	employee.TenantID = tenantID
	m.employees[employee.ID] = employee
	return &employee, nil
}

func (m *memEmployeeStore) Update(_ context.Context, tenantID, id uuid.UUID, _ repository.EmployeePatch) (*model.Employee, error) {
	e, ok := m.employees[id]
	if !ok || e.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (m *memEmployeeStore) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	e, ok := m.employees[id]
	if !ok || e.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	delete(m.employees, id)
	return nil
}

type testEnv struct {
	router   *gin.Engine
	tenantID uuid.UUID
	jobs     *memJobStore
	cars     *memCarStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tenantID := uuid.New()
	jobs := &memJobStore{jobs: map[uuid.UUID]model.Job{}}
	cars := &memCarStore{cars: map[uuid.UUID]model.Car{}}
	employees := &memEmployeeStore{employees: map[uuid.UUID]model.Employee{}}

	jobService := service.NewJobService(jobs, cars, nil)
	fleetService := service.NewFleetService(cars, employees)

	handler := NewHandler(nil, fleetService, nil, nil, jobService, zerolog.Nop())
	parser := &stubParser{principal: model.Principal{
		UserID:   uuid.New(),
		TenantID: tenantID,
		Email:    "dispatcher@example.com",
	}}

	router := gin.New()
	handler.Register(router, middleware.Auth(parser))

	return &testEnv{router: router, tenantID: tenantID, jobs: jobs, cars: cars}
}

func (e *testEnv) addCar(regnr string) model.Car {
	car := model.Car{ID: uuid.New(), TenantID: e.tenantID, Regnr: regnr, Status: model.CarAvailable}
	e.cars.cars[car.ID] = car
	return car
}

func (e *testEnv) addJob(carID *uuid.UUID, status model.JobStatus) model.Job {
	job := model.Job{
		ID:          uuid.New(),
		TenantID:    e.tenantID,
		AgreementID: uuid.New(),
		CarID:       carID,
		Type:        model.WasteHousehold,
		Status:      status,
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	e.jobs.jobs[job.ID] = job
	return job
}

func (e *testEnv) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer valid-token")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) tenantPath(suffix string) string {
	return "/tenants/" + e.tenantID.String() + suffix
}

func TestHandler_RequiresBearerToken(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.tenantPath("/jobs"), nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_RejectsInvalidToken(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.tenantPath("/jobs"), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_TenantMismatchIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/tenants/"+uuid.NewString()+"/jobs", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ListJobs(t *testing.T) {
	env := newTestEnv(t)
	env.addJob(nil, model.JobUnassigned)
	env.addJob(nil, model.JobCompleted)

	rec := env.request(t, http.MethodGet, env.tenantPath("/jobs"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var jobs []model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 2)
}

func TestHandler_ListJobsRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, env.tenantPath("/jobs?status=parked"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_AssignJob(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")
	job := env.addJob(nil, model.JobUnassigned)

	rec := env.request(t, http.MethodPost,
		env.tenantPath("/jobs/"+job.ID.String()+"/assign"),
		`{"car_id":"`+car.ID.String()+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.NotNil(t, updated.CarID)
	assert.Equal(t, car.ID, *updated.CarID)
	assert.Equal(t, model.JobAssigned, updated.Status)
}

func TestHandler_AssignCompletedJobConflicts(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")
	job := env.addJob(nil, model.JobCompleted)

	rec := env.request(t, http.MethodPost,
		env.tenantPath("/jobs/"+job.ID.String()+"/assign"),
		`{"car_id":"`+car.ID.String()+`"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_AssignUnknownJob(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")

	rec := env.request(t, http.MethodPost,
		env.tenantPath("/jobs/"+uuid.NewString()+"/assign"),
		`{"car_id":"`+car.ID.String()+`"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_AssignInvalidCarID(t *testing.T) {
	env := newTestEnv(t)
	job := env.addJob(nil, model.JobUnassigned)

	rec := env.request(t, http.MethodPost,
		env.tenantPath("/jobs/"+job.ID.String()+"/assign"),
		`{"car_id":"not-a-uuid"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UnassignJob(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")
	job := env.addJob(&car.ID, model.JobAssigned)

	rec := env.request(t, http.MethodPost,
		env.tenantPath("/jobs/"+job.ID.String()+"/unassign"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Nil(t, updated.CarID)
	assert.Equal(t, model.JobUnassigned, updated.Status)
}

func TestHandler_UpdateJobClearsCarWithNull(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")
	job := env.addJob(&car.ID, model.JobAssigned)

	rec := env.request(t, http.MethodPatch,
		env.tenantPath("/jobs/"+job.ID.String()),
		`{"car_id":null}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Nil(t, updated.CarID)
	assert.Equal(t, model.JobUnassigned, updated.Status)
}

func TestHandler_UpdateJobZeroStringClearsCar(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")
	job := env.addJob(&car.ID, model.JobAssigned)

	rec := env.request(t, http.MethodPatch,
		env.tenantPath("/jobs/"+job.ID.String()),
		`{"car_id":"0"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Nil(t, updated.CarID)
}

func TestHandler_DeleteJob(t *testing.T) {
	env := newTestEnv(t)
	job := env.addJob(nil, model.JobUnassigned)

	rec := env.request(t, http.MethodDelete, env.tenantPath("/jobs/"+job.ID.String()), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, job.ID.String(), body["deleted"])

	rec = env.request(t, http.MethodDelete, env.tenantPath("/jobs/"+job.ID.String()), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DispatchBoard(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")
	assigned := env.addJob(&car.ID, model.JobAssigned)
	unassigned := env.addJob(nil, model.JobUnassigned)

	rec := env.request(t, http.MethodGet, env.tenantPath("/dispatch/board"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var columns []boardColumnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &columns))
	require.Len(t, columns, 2)

	assert.Equal(t, uuid.Nil, columns[0].ID)
	require.Len(t, columns[0].Cards, 1)
	assert.Equal(t, unassigned.ID, columns[0].Cards[0].ID)

	assert.Equal(t, car.ID, columns[1].ID)
	require.Len(t, columns[1].Cards, 1)
	assert.Equal(t, assigned.ID, columns[1].Cards[0].ID)
}

func TestHandler_DispatchMoveAssigns(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")
	job := env.addJob(nil, model.JobUnassigned)

	rec := env.request(t, http.MethodPost, env.tenantPath("/dispatch/move"),
		`{"job_id":"`+job.ID.String()+`","car_id":"`+car.ID.String()+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	stored := env.jobs.jobs[job.ID]
	require.NotNil(t, stored.CarID)
	assert.Equal(t, car.ID, *stored.CarID)
	assert.Equal(t, model.JobAssigned, stored.Status)

	var columns []boardColumnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &columns))
	require.Len(t, columns, 2)
	require.Len(t, columns[1].Cards, 1)
	assert.Equal(t, job.ID, columns[1].Cards[0].ID)
}

func TestHandler_DispatchMoveToUnassigned(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")
	job := env.addJob(&car.ID, model.JobAssigned)

	rec := env.request(t, http.MethodPost, env.tenantPath("/dispatch/move"),
		`{"job_id":"`+job.ID.String()+`","car_id":null}`)
	require.Equal(t, http.StatusOK, rec.Code)

	stored := env.jobs.jobs[job.ID]
	assert.Nil(t, stored.CarID)
	assert.Equal(t, model.JobUnassigned, stored.Status)
}

func TestHandler_DispatchMoveUnknownColumn(t *testing.T) {
	env := newTestEnv(t)
	job := env.addJob(nil, model.JobUnassigned)

	rec := env.request(t, http.MethodPost, env.tenantPath("/dispatch/move"),
		`{"job_id":"`+job.ID.String()+`","car_id":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DispatchMoveCompletedJobConflicts(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")
	job := env.addJob(nil, model.JobCompleted)

	rec := env.request(t, http.MethodPost, env.tenantPath("/dispatch/move"),
		`{"job_id":"`+job.ID.String()+`","car_id":"`+car.ID.String()+`"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The store still shows the job without a car.
	stored := env.jobs.jobs[job.ID]
	assert.Nil(t, stored.CarID)
}

func TestHandler_CreateJob(t *testing.T) {
	env := newTestEnv(t)
	car := env.addCar("AB 11111")

	rec := env.request(t, http.MethodPost, env.tenantPath("/jobs"),
		`{"agreement_id":"`+uuid.NewString()+`","car_id":"`+car.ID.String()+`","type":"construction","date":"2026-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, model.JobAssigned, created.Status)
	assert.Equal(t, model.WasteConstruction, created.Type)
}

func TestHandler_CreateJobMissingAgreement(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, env.tenantPath("/jobs"),
		`{"date":"2026-03-10"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
