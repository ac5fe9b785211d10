package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurpe/wasteops-rental/internal/model"
	"github.com/nurpe/wasteops-rental/internal/repository"
)

type fakeFleetCarStore struct {
	*fakeCarStore
	available []model.Car
}

func (f *fakeFleetCarStore) List(_ context.Context, tenantID uuid.UUID) ([]model.Car, error) {
	var out []model.Car
	for _, c := range f.cars {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeFleetCarStore) ListAvailable(_ context.Context, _ uuid.UUID) ([]model.Car, error) {
	return f.available, nil
}

func (f *fakeFleetCarStore) Create(_ context.Context, tenantID uuid.UUID, car model.Car) (*model.Car, error) {
	car.ID = uuid.New()
	car.TenantID = tenantID
	f.cars[car.ID] = car
	return &car, nil
}

func (f *fakeFleetCarStore) Update(_ context.Context, tenantID, id uuid.UUID, patch repository.CarPatch) (*model.Car, error) {
	c, ok := f.cars[id]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	if patch.Regnr != nil {
		c.Regnr = *patch.Regnr
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	f.cars[id] = c
	return &c, nil
}

func (f *fakeFleetCarStore) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	c, ok := f.cars[id]
	if !ok || c.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	delete(f.cars, id)
	return nil
}

type fakeEmployeeStore struct {
	employees map[uuid.UUID]model.Employee
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{employees: map[uuid.UUID]model.Employee{}}
}

func (f *fakeEmployeeStore) List(_ context.Context, tenantID uuid.UUID) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range f.employees {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeStore) GetByID(_ context.Context, tenantID, id uuid.UUID) (*model.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (f *fakeEmployeeStore) Create(_ context.Context, tenantID uuid.UUID, employee model.Employee) (*model.Employee, error) {
	employee.ID = uuid.New()
	employee.TenantID = tenantID
	f.employees[employee.ID] = employee
	return &employee, nil
}

func (f *fakeEmployeeStore) Update(_ context.Context, tenantID, id uuid.UUID, patch repository.EmployeePatch) (*model.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.CarID != nil {
		e.CarID = *patch.CarID
	}
	f.employees[id] = e
	return &e, nil
}

func (f *fakeEmployeeStore) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	e, ok := f.employees[id]
	if !ok || e.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	delete(f.employees, id)
	return nil
}

func newFleetFixture(cars ...model.Car) (*FleetService, *fakeFleetCarStore, *fakeEmployeeStore) {
	carStore := &fakeFleetCarStore{fakeCarStore: newFakeCarStore(cars...)}
	employeeStore := newFakeEmployeeStore()
	return NewFleetService(carStore, employeeStore), carStore, employeeStore
}

func TestFleetService_CreateCarDefaultsStatus(t *testing.T) {
	tenantID := uuid.New()
	svc, _, _ := newFleetFixture()

	created, err := svc.CreateCar(context.Background(), tenantID, model.Car{Regnr: "AB 11111"})
	require.NoError(t, err)
	assert.Equal(t, model.CarAvailable, created.Status)
}

func TestFleetService_CreateCarRequiresRegnr(t *testing.T) {
	svc, _, _ := newFleetFixture()

	_, err := svc.CreateCar(context.Background(), uuid.New(), model.Car{Regnr: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFleetService_CreateEmployeeVerifiesCarLink(t *testing.T) {
	tenantID := uuid.New()
	car := model.Car{ID: uuid.New(), TenantID: tenantID, Regnr: "AB 11111"}
	svc, _, _ := newFleetFixture(car)

	created, err := svc.CreateEmployee(context.Background(), tenantID, model.Employee{
		Name:  "Kari Olsen",
		CarID: &car.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.CarID)
	assert.Equal(t, car.ID, *created.CarID)
	assert.Equal(t, model.EmployeeAvailable, created.Status)
}

func TestFleetService_CreateEmployeeUnknownCar(t *testing.T) {
	svc, _, _ := newFleetFixture()

	carID := uuid.New()
	_, err := svc.CreateEmployee(context.Background(), uuid.New(), model.Employee{
		Name:  "Kari Olsen",
		CarID: &carID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFleetService_CreateEmployeeCarFromOtherTenant(t *testing.T) {
	foreignCar := model.Car{ID: uuid.New(), TenantID: uuid.New(), Regnr: "ZZ 99999"}
	svc, _, _ := newFleetFixture(foreignCar)

	_, err := svc.CreateEmployee(context.Background(), uuid.New(), model.Employee{
		Name:  "Kari Olsen",
		CarID: &foreignCar.ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFleetService_UpdateEmployeeClearsCarLink(t *testing.T) {
	tenantID := uuid.New()
	car := model.Car{ID: uuid.New(), TenantID: tenantID, Regnr: "AB 11111"}
	svc, _, employees := newFleetFixture(car)

	created, err := svc.CreateEmployee(context.Background(), tenantID, model.Employee{
		Name:  "Kari Olsen",
		CarID: &car.ID,
	})
	require.NoError(t, err)

	var cleared *uuid.UUID
	updated, err := svc.UpdateEmployee(context.Background(), tenantID, created.ID, repository.EmployeePatch{
		CarID: &cleared,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.CarID)
	assert.Nil(t, employees.employees[created.ID].CarID)
}

func TestFleetService_ListAvailableCars(t *testing.T) {
	tenantID := uuid.New()
	free := model.Car{ID: uuid.New(), TenantID: tenantID, Regnr: "AB 11111"}
	svc, carStore, _ := newFleetFixture(free)
	carStore.available = []model.Car{free}

	cars, err := svc.ListAvailableCars(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, free.ID, cars[0].ID)
}
