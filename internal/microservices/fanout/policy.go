package fanout

import "festivalhub/internal/microservices/http-api/models"

// Policy is the per-type delivery rule applied on top of a notification's own targets.
type Policy struct {
	// AdminObserver adds an adminNotification push to role:admin when admin is not
	// already one of the record's target roles. It never changes the persisted targets.
	AdminObserver bool
}

// DefaultPolicies covers every notification type. Admins observe everything except
// greetings addressed to a single account.
var DefaultPolicies = map[models.NotificationType]Policy{
	models.TypeNewVendor:              {AdminObserver: true},
	models.TypeNewAttendee:            {AdminObserver: true},
	models.TypePaymentAttachment:      {AdminObserver: true},
	models.TypeStatusUpdate:           {AdminObserver: true},
	models.TypeNewUser:                {AdminObserver: true},
	models.TypeFestivalReview:         {AdminObserver: true},
	models.TypeNewTicket:              {AdminObserver: true},
	models.TypeTicketStatusUpdate:     {AdminObserver: true},
	models.TypeUserVerified:           {AdminObserver: true},
	models.TypeBoothAssigned:          {AdminObserver: true},
	models.TypeNewSale:                {AdminObserver: true},
	models.TypeNewReview:              {AdminObserver: true},
	models.TypeUserLogin:              {AdminObserver: true},
	models.TypeLoginError:             {AdminObserver: true},
	models.TypeLoginAttemptUnverified: {AdminObserver: true},
	models.TypeWelcome:                {AdminObserver: false},
	models.TypeLoginAttemptInactive:   {AdminObserver: true},
}
