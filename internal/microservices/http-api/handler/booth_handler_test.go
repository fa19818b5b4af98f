package handler

import (
	"context"
	"net/http"
	"testing"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
	"festivalhub/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBoothService struct {
	mock.Mock
}

func (m *MockBoothService) List(ctx context.Context, festivalID string) ([]models.Booth, error) {
	args := m.Called(ctx, festivalID)
	return args.Get(0).([]models.Booth), args.Error(1)
}

func (m *MockBoothService) Get(ctx context.Context, id string) (*models.Booth, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booth), args.Error(1)
}

func (m *MockBoothService) Create(ctx context.Context, req dto.BoothRequest) (*models.Booth, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booth), args.Error(1)
}

func (m *MockBoothService) Update(ctx context.Context, id string, req dto.BoothRequest) (*models.Booth, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booth), args.Error(1)
}

func (m *MockBoothService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoothService) ListAssignments(ctx context.Context) ([]models.BoothAssignment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BoothAssignment), args.Error(1)
}

func (m *MockBoothService) Assign(ctx context.Context, req dto.AssignmentRequest) (*models.BoothAssignment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BoothAssignment), args.Error(1)
}

func (m *MockBoothService) Unassign(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const (
	vendorUUID = "2f9c3b1e-7a4d-4c2b-9e1f-5a6b7c8d9e0f"
	boothUUID  = "8e7d6c5b-4a39-4281-b7f6-e5d4c3b2a190"
)

func TestBoothHandler_AssignNeedsAdmin(t *testing.T) {
	svc := new(MockBoothService)
	router := setupRouter()
	NewBoothHandler(svc).RegisterRoutes(router.Group("/api/booths"), new(MockAuthService))

	req := dto.AssignmentRequest{VendorID: vendorUUID, BoothID: boothUUID}
	svc.On("Assign", mock.Anything, req).Return(&models.BoothAssignment{VendorID: vendorUUID, BoothID: boothUUID}, nil)

	assert.Equal(t, http.StatusUnauthorized, doJSON(router, http.MethodPost, "/api/booths/assignments", "", req).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(router, http.MethodPost, "/api/booths/assignments", "vendor-token", req).Code)
	assert.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/booths/assignments", "admin-token", req).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/api/booths/assignments", "admin-token",
		dto.AssignmentRequest{VendorID: "V1", BoothID: boothUUID}).Code)
	svc.AssertNumberOfCalls(t, "Assign", 1)
}

func TestBoothHandler_ErrorsMapToStatus(t *testing.T) {
	svc := new(MockBoothService)
	router := setupRouter()
	NewBoothHandler(svc).RegisterRoutes(router.Group("/api/booths"), new(MockAuthService))

	svc.On("Get", mock.Anything, "not-a-uuid").Return(nil, service.ErrNotFound)
	svc.On("Assign", mock.Anything, mock.Anything).Return(nil, service.ErrConflict)
	svc.On("List", mock.Anything, "F1").Return([]models.Booth{}, nil)

	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, "/api/booths/not-a-uuid", "", nil).Code)
	assert.Equal(t, http.StatusConflict, doJSON(router, http.MethodPost, "/api/booths/assignments", "admin-token",
		dto.AssignmentRequest{VendorID: vendorUUID, BoothID: boothUUID}).Code)
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, "/api/booths?festival_id=F1", "", nil).Code)
}

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) List(ctx context.Context, caller service.Caller, filter repository.EventFilter) ([]models.Event, error) {
	args := m.Called(ctx, caller, filter)
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventService) Get(ctx context.Context, caller service.Caller, id string) (*models.Event, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, req dto.EventRequest) (*models.Event, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, id string, req dto.EventRequest) (*models.Event, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) UpdateStatus(ctx context.Context, id string, status models.EventStatus) (*models.Event, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestEventHandler_ListPassesOptionalCaller(t *testing.T) {
	svc := new(MockEventService)
	router := setupRouter()
	NewEventHandler(svc).RegisterRoutes(router.Group("/api/events"), new(MockAuthService))

	filter := repository.EventFilter{FestivalID: "F1"}
	svc.On("List", mock.Anything, service.Caller{}, filter).Return([]models.Event{}, nil).Once()
	svc.On("List", mock.Anything, service.Caller{UserID: "A1", Role: models.RoleAdmin}, filter).Return([]models.Event{}, nil).Once()

	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, "/api/events?festival_id=F1", "", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, "/api/events?festival_id=F1", "admin-token", nil).Code)
	svc.AssertExpectations(t)
}

func TestEventHandler_StatusChangeNeedsAdmin(t *testing.T) {
	svc := new(MockEventService)
	router := setupRouter()
	NewEventHandler(svc).RegisterRoutes(router.Group("/api/events"), new(MockAuthService))

	body := dto.EventStatusRequest{Status: models.EventPublished}
	svc.On("UpdateStatus", mock.Anything, "E1", models.EventPublished).
		Return(&models.Event{Base: models.Base{ID: "E1"}, Status: models.EventPublished}, nil)

	assert.Equal(t, http.StatusForbidden, doJSON(router, http.MethodPatch, "/api/events/E1/status", "user-token", body).Code)
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodPatch, "/api/events/E1/status", "admin-token", body).Code)
	svc.AssertNumberOfCalls(t, "UpdateStatus", 1)
}
