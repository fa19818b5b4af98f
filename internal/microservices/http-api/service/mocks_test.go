package service

import (
	"context"
	"sync"

	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// recordingNotifier keeps every dispatched event in order.
type recordingNotifier struct {
	mu     sync.Mutex
	events []fanout.Event
}

func (n *recordingNotifier) Dispatch(ev fanout.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) notifications() []fanout.TargetedNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []fanout.TargetedNotification
	for _, ev := range n.events {
		if tn, ok := ev.(fanout.TargetedNotification); ok {
			out = append(out, tn)
		}
	}
	return out
}

func (n *recordingNotifier) types() []models.NotificationType {
	var out []models.NotificationType
	for _, tn := range n.notifications() {
		out = append(out, tn.Type)
	}
	return out
}

func (n *recordingNotifier) refreshed() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, ev := range n.events {
		switch ev := ev.(type) {
		case fanout.ListRefresh:
			out = append(out, ev.Collection)
		case fanout.StatusCounts:
			out = append(out, ev.Name+"StatusCounts")
		}
	}
	return out
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if user.ID == "" {
		user.ID = "new-user-id"
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockNotificationRepository mocks the NotificationRepository interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) List(ctx context.Context, scope models.NotificationScope, limit, skip int) ([]models.Notification, error) {
	args := m.Called(ctx, scope, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListUnread(ctx context.Context, scope models.NotificationScope) ([]models.Notification, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, scope models.NotificationScope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id string, scope models.NotificationScope) (*models.Notification, error) {
	args := m.Called(ctx, id, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, scope models.NotificationScope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

// MockVendorRepository mocks the VendorRepository interface
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	if vendor.ID == "" {
		vendor.ID = "new-vendor-id"
	}
	return args.Error(0)
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id string) (*models.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vendor), args.Error(1)
}

func (m *MockVendorRepository) List(ctx context.Context, filter repository.VendorFilter) ([]models.Vendor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVendorRepository) StatusCounts(ctx context.Context) (*repository.VendorStatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.VendorStatusCounts), args.Error(1)
}

// MockTicketRepository mocks the TicketRepository interface
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	args := m.Called(ctx, ticket)
	if ticket.ID == "" {
		ticket.ID = "new-ticket-id"
	}
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) List(ctx context.Context, filter repository.TicketFilter) ([]models.Ticket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Update(ctx context.Context, ticket *models.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) HasActiveTicket(ctx context.Context, userID, festivalID string) (bool, error) {
	args := m.Called(ctx, userID, festivalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketRepository) StatusCounts(ctx context.Context) (repository.StatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.StatusCounts), args.Error(1)
}

// MockFestivalRepository mocks the FestivalRepository interface
type MockFestivalRepository struct {
	mock.Mock
}

func (m *MockFestivalRepository) Create(ctx context.Context, festival *models.Festival) error {
	args := m.Called(ctx, festival)
	return args.Error(0)
}

func (m *MockFestivalRepository) GetByID(ctx context.Context, id string) (*models.Festival, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Festival), args.Error(1)
}

func (m *MockFestivalRepository) List(ctx context.Context) ([]models.Festival, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Festival), args.Error(1)
}

func (m *MockFestivalRepository) Update(ctx context.Context, festival *models.Festival) error {
	args := m.Called(ctx, festival)
	return args.Error(0)
}

func (m *MockFestivalRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFestivalRepository) CreateReview(ctx context.Context, review *models.FestivalReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockFestivalRepository) ListReviews(ctx context.Context, festivalID string) ([]models.FestivalReview, error) {
	args := m.Called(ctx, festivalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FestivalReview), args.Error(1)
}

// MockSaleRepository mocks the SaleRepository interface
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) ListByVendor(ctx context.Context, vendorID string) ([]models.Sale, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sale), args.Error(1)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

// MockBoothRepository mocks the BoothRepository interface
type MockBoothRepository struct {
	mock.Mock
}

func (m *MockBoothRepository) Create(ctx context.Context, booth *models.Booth) error {
	args := m.Called(ctx, booth)
	return args.Error(0)
}

func (m *MockBoothRepository) GetByID(ctx context.Context, id string) (*models.Booth, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booth), args.Error(1)
}

func (m *MockBoothRepository) List(ctx context.Context, festivalID string) ([]models.Booth, error) {
	args := m.Called(ctx, festivalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booth), args.Error(1)
}

func (m *MockBoothRepository) Update(ctx context.Context, booth *models.Booth) error {
	args := m.Called(ctx, booth)
	return args.Error(0)
}

func (m *MockBoothRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoothRepository) CreateAssignment(ctx context.Context, assignment *models.BoothAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockBoothRepository) ListAssignments(ctx context.Context) ([]models.BoothAssignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BoothAssignment), args.Error(1)
}

func (m *MockBoothRepository) DeleteAssignment(ctx context.Context, id string) (*models.BoothAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BoothAssignment), args.Error(1)
}

// MockEventRepository mocks the EventRepository interface
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, filter repository.EventFilter) ([]models.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMenuItemRepository mocks the MenuItemRepository interface
type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) ListByVendor(ctx context.Context, vendorID string) ([]models.MenuItem, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
