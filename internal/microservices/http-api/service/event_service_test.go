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

func TestEventService_CreateStartsAsDraft(t *testing.T) {
	events, festivals := new(MockEventRepository), new(MockFestivalRepository)
	notifier := &recordingNotifier{}
	svc := NewEventService(events, festivals, notifier)

	start := time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC)
	festivals.On("GetByID", mock.Anything, "F1").Return(&models.Festival{Base: models.Base{ID: "F1"}}, nil)
	events.On("Create", mock.Anything, mock.AnythingOfType("*models.Event")).Return(nil)

	event, err := svc.Create(context.Background(), dto.EventRequest{
		FestivalID: "F1", Title: "Headliner", EventType: "concert",
		StartsAt: start, EndsAt: start.Add(2 * time.Hour), Location: "Main stage",
	})

	require.NoError(t, err)
	assert.Equal(t, models.EventDraft, event.Status)
	assert.Equal(t, "Main stage", event.Location)
	assert.Equal(t, []string{"events"}, notifier.refreshed())
	assert.Empty(t, notifier.notifications())
}

func TestEventService_CreateRejectsBackwardsTimes(t *testing.T) {
	events, festivals := new(MockEventRepository), new(MockFestivalRepository)
	svc := NewEventService(events, festivals, &recordingNotifier{})
	start := time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), dto.EventRequest{FestivalID: "F1", StartsAt: start, EndsAt: start.Add(-time.Hour)})

	assert.ErrorIs(t, err, ErrBadRequest)
	festivals.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestEventService_VisibilityByRole(t *testing.T) {
	events := new(MockEventRepository)
	svc := NewEventService(events, new(MockFestivalRepository), &recordingNotifier{})

	events.On("List", mock.Anything, repository.EventFilter{FestivalID: "F1", Status: models.EventPublished}).Return([]models.Event{}, nil).Once()
	events.On("List", mock.Anything, repository.EventFilter{FestivalID: "F1"}).Return([]models.Event{}, nil).Once()
	events.On("GetByID", mock.Anything, "E1").Return(&models.Event{Base: models.Base{ID: "E1"}, Status: models.EventDraft}, nil)

	_, err := svc.List(context.Background(), Caller{}, repository.EventFilter{FestivalID: "F1"})
	require.NoError(t, err)
	_, err = svc.List(context.Background(), Caller{UserID: "A1", Role: models.RoleAdmin}, repository.EventFilter{FestivalID: "F1"})
	require.NoError(t, err)
	events.AssertExpectations(t)

	_, err = svc.Get(context.Background(), Caller{UserID: "U1", Role: models.RoleUser}, "E1")
	assert.ErrorIs(t, err, ErrNotFound)
	draft, err := svc.Get(context.Background(), Caller{UserID: "A1", Role: models.RoleAdmin}, "E1")
	require.NoError(t, err)
	assert.Equal(t, "E1", draft.ID)
}

func TestEventService_UpdateStatus(t *testing.T) {
	t.Run("publishes", func(t *testing.T) {
		events := new(MockEventRepository)
		notifier := &recordingNotifier{}
		svc := NewEventService(events, new(MockFestivalRepository), notifier)
		events.On("GetByID", mock.Anything, "E1").Return(&models.Event{Base: models.Base{ID: "E1"}, Status: models.EventDraft}, nil)
		events.On("Update", mock.Anything, mock.AnythingOfType("*models.Event")).Return(nil)

		event, err := svc.UpdateStatus(context.Background(), "E1", models.EventPublished)

		require.NoError(t, err)
		assert.Equal(t, models.EventPublished, event.Status)
		assert.Equal(t, []string{"events"}, notifier.refreshed())
	})

	t.Run("unknown status", func(t *testing.T) {
		events := new(MockEventRepository)
		svc := NewEventService(events, new(MockFestivalRepository), &recordingNotifier{})

		_, err := svc.UpdateStatus(context.Background(), "E1", "postponed")

		assert.ErrorIs(t, err, ErrBadRequest)
		events.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("missing event", func(t *testing.T) {
		events := new(MockEventRepository)
		notifier := &recordingNotifier{}
		svc := NewEventService(events, new(MockFestivalRepository), notifier)
		events.On("Delete", mock.Anything, "E9").Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete(context.Background(), "E9"), ErrNotFound)
		assert.Empty(t, notifier.events)
	})
}
