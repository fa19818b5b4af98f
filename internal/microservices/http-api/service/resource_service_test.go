package service

import (
	"context"
	"testing"
	"time"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestVendorService_RegisterLinksVendorAccount(t *testing.T) {
	repo := new(MockVendorRepository)
	notifier := &recordingNotifier{}
	svc := NewVendorService(repo, notifier)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Vendor")).Return(nil)

	vendor, err := svc.Register(context.Background(), Caller{UserID: "U7", Role: models.RoleVendor},
		dto.VendorRequest{Name: "Taco Stand", Email: "taco@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "U7", vendor.OwnerUserID)
	assert.Equal(t, models.StatusPending, vendor.RegistrationStatus)
	assert.Equal(t, []models.NotificationType{models.TypeNewVendor}, notifier.types())
	assert.Equal(t, []string{"vendors", "vendorStatusCounts"}, notifier.refreshed())
}

func TestVendorService_StatusUpdateNotifiesOwner(t *testing.T) {
	repo := new(MockVendorRepository)
	notifier := &recordingNotifier{}
	svc := NewVendorService(repo, notifier)

	repo.On("GetByID", mock.Anything, "V1").Return(&models.Vendor{Base: models.Base{ID: "V1"}, Name: "Taco Stand", OwnerUserID: "U7"}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Vendor")).Return(nil)

	vendor, err := svc.UpdateRegistrationStatus(context.Background(), "V1", models.StatusApproved)

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, vendor.RegistrationStatus)
	n := notifier.notifications()
	require.Len(t, n, 1)
	assert.Equal(t, models.TypeStatusUpdate, n[0].Type)
	assert.Equal(t, "U7", n[0].TargetUserID)
	assert.Empty(t, n[0].TargetRoles)
	assert.Equal(t, models.StatusApproved, n[0].Metadata.Status)
}

func TestVendorService_StatusUpdateRejectsUnknownStatus(t *testing.T) {
	repo := new(MockVendorRepository)
	svc := NewVendorService(repo, &recordingNotifier{})

	_, err := svc.UpdatePaymentStatus(context.Background(), "V1", "Maybe")

	assert.ErrorIs(t, err, ErrBadRequest)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestVendorService_AttachPaymentOwnership(t *testing.T) {
	owned := func() *models.Vendor {
		return &models.Vendor{Base: models.Base{ID: "V1"}, OwnerUserID: "U7", PaymentStatus: models.StatusRejected}
	}

	t.Run("other account", func(t *testing.T) {
		repo := new(MockVendorRepository)
		notifier := &recordingNotifier{}
		svc := NewVendorService(repo, notifier)
		repo.On("GetByID", mock.Anything, "V1").Return(owned(), nil)

		_, err := svc.AttachPayment(context.Background(), "V1", Caller{UserID: "U8", Role: models.RoleVendor}, "https://files/p.pdf")

		assert.ErrorIs(t, err, ErrForbidden)
		assert.Empty(t, notifier.events)
	})

	t.Run("owner", func(t *testing.T) {
		repo := new(MockVendorRepository)
		notifier := &recordingNotifier{}
		svc := NewVendorService(repo, notifier)
		repo.On("GetByID", mock.Anything, "V1").Return(owned(), nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Vendor")).Return(nil)

		vendor, err := svc.AttachPayment(context.Background(), "V1", Caller{UserID: "U7", Role: models.RoleVendor}, "https://files/p.pdf")

		require.NoError(t, err)
		assert.Equal(t, "https://files/p.pdf", vendor.PaymentAttachment)
		assert.Equal(t, models.StatusPending, vendor.PaymentStatus)
		assert.Equal(t, []models.NotificationType{models.TypePaymentAttachment}, notifier.types())
	})
}

func TestVendorService_DeleteMissing(t *testing.T) {
	repo := new(MockVendorRepository)
	notifier := &recordingNotifier{}
	svc := NewVendorService(repo, notifier)
	repo.On("Delete", mock.Anything, "V9").Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "V9")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, notifier.events)
}

func TestTicketService_Purchase(t *testing.T) {
	festival := &models.Festival{Base: models.Base{ID: "F1"}, Name: "Summer Fest"}
	caller := Caller{UserID: "U1", Role: models.RoleUser}
	req := dto.TicketRequest{FestivalID: "F1", Name: "Ana", Email: "ana@example.com", Amount: 40}

	t.Run("first ticket announces a new attendee", func(t *testing.T) {
		tickets, festivals := new(MockTicketRepository), new(MockFestivalRepository)
		notifier := &recordingNotifier{}
		svc := NewTicketService(tickets, festivals, notifier)

		festivals.On("GetByID", mock.Anything, "F1").Return(festival, nil)
		tickets.On("HasActiveTicket", mock.Anything, "U1", "F1").Return(false, nil)
		tickets.On("List", mock.Anything, repository.TicketFilter{UserID: "U1", FestivalID: "F1"}).Return([]models.Ticket{}, nil)
		tickets.On("Create", mock.Anything, mock.AnythingOfType("*models.Ticket")).Return(nil)

		ticket, err := svc.Purchase(context.Background(), caller, req)

		require.NoError(t, err)
		assert.Equal(t, "U1", ticket.UserID)
		assert.Equal(t, models.StatusPending, ticket.PaymentStatus)
		assert.Equal(t, []models.NotificationType{models.TypeNewTicket, models.TypeNewAttendee}, notifier.types())
		assert.Equal(t, []string{"tickets", "ticketStatusCounts"}, notifier.refreshed())
	})

	t.Run("repurchase after rejection is not a new attendee", func(t *testing.T) {
		tickets, festivals := new(MockTicketRepository), new(MockFestivalRepository)
		notifier := &recordingNotifier{}
		svc := NewTicketService(tickets, festivals, notifier)

		festivals.On("GetByID", mock.Anything, "F1").Return(festival, nil)
		tickets.On("HasActiveTicket", mock.Anything, "U1", "F1").Return(false, nil)
		tickets.On("List", mock.Anything, repository.TicketFilter{UserID: "U1", FestivalID: "F1"}).
			Return([]models.Ticket{{PaymentStatus: models.StatusRejected}}, nil)
		tickets.On("Create", mock.Anything, mock.AnythingOfType("*models.Ticket")).Return(nil)

		_, err := svc.Purchase(context.Background(), caller, req)

		require.NoError(t, err)
		assert.Equal(t, []models.NotificationType{models.TypeNewTicket}, notifier.types())
	})

	t.Run("active ticket conflicts", func(t *testing.T) {
		tickets, festivals := new(MockTicketRepository), new(MockFestivalRepository)
		notifier := &recordingNotifier{}
		svc := NewTicketService(tickets, festivals, notifier)

		festivals.On("GetByID", mock.Anything, "F1").Return(festival, nil)
		tickets.On("HasActiveTicket", mock.Anything, "U1", "F1").Return(true, nil)

		_, err := svc.Purchase(context.Background(), caller, req)

		assert.ErrorIs(t, err, ErrConflict)
		assert.Empty(t, notifier.events)
		tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("losing a concurrent purchase conflicts", func(t *testing.T) {
		tickets, festivals := new(MockTicketRepository), new(MockFestivalRepository)
		notifier := &recordingNotifier{}
		svc := NewTicketService(tickets, festivals, notifier)

		festivals.On("GetByID", mock.Anything, "F1").Return(festival, nil)
		tickets.On("HasActiveTicket", mock.Anything, "U1", "F1").Return(false, nil)
		tickets.On("List", mock.Anything, repository.TicketFilter{UserID: "U1", FestivalID: "F1"}).Return([]models.Ticket{}, nil)
		tickets.On("Create", mock.Anything, mock.AnythingOfType("*models.Ticket")).Return(gorm.ErrDuplicatedKey)

		_, err := svc.Purchase(context.Background(), caller, req)

		assert.ErrorIs(t, err, ErrConflict)
		assert.Empty(t, notifier.events)
	})

	t.Run("unknown festival", func(t *testing.T) {
		tickets, festivals := new(MockTicketRepository), new(MockFestivalRepository)
		svc := NewTicketService(tickets, festivals, &recordingNotifier{})
		festivals.On("GetByID", mock.Anything, "F1").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Purchase(context.Background(), caller, req)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTicketService_ListScopesNonAdmins(t *testing.T) {
	tickets := new(MockTicketRepository)
	svc := NewTicketService(tickets, new(MockFestivalRepository), &recordingNotifier{})

	tickets.On("List", mock.Anything, repository.TicketFilter{UserID: "U1"}).Return([]models.Ticket{}, nil).Once()
	tickets.On("List", mock.Anything, repository.TicketFilter{UserID: "U2"}).Return([]models.Ticket{}, nil).Once()

	_, err := svc.List(context.Background(), Caller{UserID: "U1", Role: models.RoleUser}, repository.TicketFilter{UserID: "U2"})
	require.NoError(t, err)
	_, err = svc.List(context.Background(), Caller{UserID: "A1", Role: models.RoleAdmin}, repository.TicketFilter{UserID: "U2"})
	require.NoError(t, err)
	tickets.AssertExpectations(t)
}

func TestTicketService_UpdatePaymentStatusNotifiesBuyer(t *testing.T) {
	tickets := new(MockTicketRepository)
	notifier := &recordingNotifier{}
	svc := NewTicketService(tickets, new(MockFestivalRepository), notifier)

	tickets.On("GetByID", mock.Anything, "T1").Return(&models.Ticket{Base: models.Base{ID: "T1"}, UserID: "U1"}, nil)
	tickets.On("Update", mock.Anything, mock.AnythingOfType("*models.Ticket")).Return(nil)

	_, err := svc.UpdatePaymentStatus(context.Background(), "T1", models.StatusApproved)

	require.NoError(t, err)
	n := notifier.notifications()
	require.Len(t, n, 1)
	assert.Equal(t, models.TypeTicketStatusUpdate, n[0].Type)
	assert.Equal(t, "U1", n[0].TargetUserID)
}

func TestSaleService_Record(t *testing.T) {
	vendor := &models.Vendor{Base: models.Base{ID: "V1"}, OwnerUserID: "U7"}

	t.Run("owner records a sale", func(t *testing.T) {
		sales, vendors := new(MockSaleRepository), new(MockVendorRepository)
		notifier := &recordingNotifier{}
		svc := NewSaleService(sales, vendors, notifier)
		vendors.On("GetByID", mock.Anything, "V1").Return(vendor, nil)
		sales.On("Create", mock.Anything, mock.AnythingOfType("*models.Sale")).Return(nil)

		sale, err := svc.Record(context.Background(), Caller{UserID: "U7", Role: models.RoleVendor},
			dto.SaleRequest{VendorID: "V1", Item: "Taco", Quantity: 2, Amount: 9})

		require.NoError(t, err)
		assert.Equal(t, "V1", sale.VendorID)
		n := notifier.notifications()
		require.Len(t, n, 1)
		assert.Equal(t, models.TypeNewSale, n[0].Type)
		assert.Equal(t, "U7", n[0].TargetUserID)
		assert.Equal(t, []string{"sales"}, notifier.refreshed())
	})

	t.Run("someone else", func(t *testing.T) {
		sales, vendors := new(MockSaleRepository), new(MockVendorRepository)
		svc := NewSaleService(sales, vendors, &recordingNotifier{})
		vendors.On("GetByID", mock.Anything, "V1").Return(vendor, nil)

		_, err := svc.Record(context.Background(), Caller{UserID: "U8", Role: models.RoleVendor},
			dto.SaleRequest{VendorID: "V1", Item: "Taco", Quantity: 1, Amount: 4})

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestSalesRefreshCarriesVendor(t *testing.T) {
	sales := new(MockSaleRepository)
	sales.On("ListByVendor", mock.Anything, "V1").Return([]models.Sale{{Item: "Taco"}}, nil)

	got, err := salesRefresh(sales, "V1").Fetch(context.Background())

	require.NoError(t, err)
	update := got.(dto.SalesUpdate)
	assert.Equal(t, "V1", update.VendorID)
	assert.Len(t, update.Sales, 1)
}

func TestReviewService_PostClassifiesAndNotifiesOwner(t *testing.T) {
	reviews, vendors := new(MockReviewRepository), new(MockVendorRepository)
	notifier := &recordingNotifier{}
	svc := NewReviewService(reviews, vendors, NewLexiconClassifier(), notifier)

	vendors.On("GetByID", mock.Anything, "V1").Return(&models.Vendor{Base: models.Base{ID: "V1"}, Name: "Taco Stand"}, nil)
	reviews.On("Create", mock.Anything, mock.AnythingOfType("*models.Review")).Return(nil)

	review, err := svc.Post(context.Background(), Caller{}, dto.ReviewRequest{VendorID: "V1", Name: "guest", Rating: 5, Comment: "Delicious and friendly"})

	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, review.Sentiment)
	n := notifier.notifications()
	require.Len(t, n, 1)
	assert.Equal(t, models.TypeNewReview, n[0].Type)
	assert.Equal(t, "V1", n[0].TargetUserID, "vendor without an owner account is addressed by its own id")
	assert.Equal(t, []string{"reviews"}, notifier.refreshed())
}

func TestReviewService_ListRejectsUnknownSentiment(t *testing.T) {
	svc := NewReviewService(new(MockReviewRepository), new(MockVendorRepository), NewLexiconClassifier(), &recordingNotifier{})

	_, err := svc.List(context.Background(), repository.ReviewFilter{Sentiment: "Angry"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestFestivalService(t *testing.T) {
	start := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	t.Run("create refreshes the list", func(t *testing.T) {
		repo := new(MockFestivalRepository)
		notifier := &recordingNotifier{}
		svc := NewFestivalService(repo, NewLexiconClassifier(), notifier)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Festival")).Return(nil)

		_, err := svc.Create(context.Background(), dto.FestivalRequest{Name: "Summer", Location: "Park", StartsAt: start, EndsAt: start.Add(48 * time.Hour)})

		require.NoError(t, err)
		assert.Equal(t, []string{"festivals"}, notifier.refreshed())
		assert.Empty(t, notifier.notifications())
	})

	t.Run("ends before start", func(t *testing.T) {
		svc := NewFestivalService(new(MockFestivalRepository), NewLexiconClassifier(), &recordingNotifier{})
		_, err := svc.Create(context.Background(), dto.FestivalRequest{Name: "x", Location: "y", StartsAt: start, EndsAt: start.Add(-time.Hour)})
		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("review goes to admins", func(t *testing.T) {
		repo := new(MockFestivalRepository)
		notifier := &recordingNotifier{}
		svc := NewFestivalService(repo, NewLexiconClassifier(), notifier)
		repo.On("GetByID", mock.Anything, "F1").Return(&models.Festival{Base: models.Base{ID: "F1"}, Name: "Summer"}, nil)
		repo.On("CreateReview", mock.Anything, mock.AnythingOfType("*models.FestivalReview")).Return(nil)

		review, err := svc.AddReview(context.Background(), "F1", Caller{UserID: "U1", Role: models.RoleUser},
			dto.FestivalReviewRequest{Rating: 2, Comment: "Terrible sound and rude staff"})

		require.NoError(t, err)
		assert.Equal(t, models.SentimentNegative, review.Sentiment)
		n := notifier.notifications()
		require.Len(t, n, 1)
		assert.Equal(t, models.TypeFestivalReview, n[0].Type)
		assert.Equal(t, []models.Role{models.RoleAdmin}, n[0].TargetRoles)
		assert.Equal(t, "Summer", n[0].Metadata.Festival)
		assert.Equal(t, []string{"festivalReviews"}, notifier.refreshed())
	})
}
