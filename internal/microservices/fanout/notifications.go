package fanout

import (
	"fmt"
	"strings"

	"festivalhub/internal/microservices/http-api/models"
)

// Constructors for every notification the API emits. Each fills only the metadata its
// type renders. Notifications about one account target that account's user id alone,
// so a role group never sees another member's personal records.

func NewVendorRegistered(v *models.Vendor) TargetedNotification {
	return TargetedNotification{
		Type:        models.TypeNewVendor,
		Message:     fmt.Sprintf("New vendor registered: %s", v.Name),
		EntityID:    v.ID,
		TargetRoles: []models.Role{models.RoleAdmin},
		Metadata:    models.Metadata{Name: v.Name, Email: v.Email},
	}
}

// NewVendorStatusUpdate reports a registration or payment decision to the vendor.
func NewVendorStatusUpdate(v *models.Vendor, field string, status models.Status) TargetedNotification {
	return TargetedNotification{
		Type:         models.TypeStatusUpdate,
		Message:      fmt.Sprintf("Your %s status has been updated to %s", field, status),
		EntityID:     v.ID,
		TargetUserID: v.RecipientID(),
		Metadata:     models.Metadata{Name: v.Name, Status: status},
	}
}

func NewPaymentAttachment(v *models.Vendor) TargetedNotification {
	return TargetedNotification{
		Type:        models.TypePaymentAttachment,
		Message:     fmt.Sprintf("%s uploaded a payment attachment", v.Name),
		EntityID:    v.ID,
		TargetRoles: []models.Role{models.RoleAdmin},
		Metadata:    models.Metadata{Name: v.Name, DocumentType: "payment_attachment"},
	}
}

func NewUserRegistered(u *models.User) TargetedNotification {
	return TargetedNotification{
		Type:        models.TypeNewUser,
		Message:     fmt.Sprintf("New %s account registered: %s", u.Role, u.Name),
		EntityID:    u.ID,
		TargetRoles: []models.Role{models.RoleAdmin},
		Metadata:    models.Metadata{Name: u.Name, Email: u.Email},
	}
}

// NewAttendee announces a user's first ticket for a festival.
func NewAttendee(t *models.Ticket, festival string) TargetedNotification {
	return TargetedNotification{
		Type:        models.TypeNewAttendee,
		Message:     fmt.Sprintf("%s will attend %s", t.Name, festival),
		EntityID:    t.UserID,
		TargetRoles: []models.Role{models.RoleAdmin},
		Metadata:    models.Metadata{Name: t.Name, Email: t.Email, Festival: festival},
	}
}

func NewFestivalReview(r *models.FestivalReview, festival string) TargetedNotification {
	return TargetedNotification{
		Type:        models.TypeFestivalReview,
		Message:     fmt.Sprintf("New %s review for %s", strings.ToLower(string(r.Sentiment)), festival),
		EntityID:    r.ID,
		TargetRoles: []models.Role{models.RoleAdmin},
		Metadata:    models.Metadata{Festival: festival, Rating: r.Rating, Sentiment: r.Sentiment},
	}
}

func NewTicketPurchased(t *models.Ticket, festival string) TargetedNotification {
	return TargetedNotification{
		Type:        models.TypeNewTicket,
		Message:     fmt.Sprintf("New ticket purchased by %s for %s", t.Name, festival),
		EntityID:    t.ID,
		TargetRoles: []models.Role{models.RoleAdmin},
		Metadata:    models.Metadata{Name: t.Name, Email: t.Email, Amount: t.Amount, Festival: festival},
	}
}

func NewTicketStatusUpdate(t *models.Ticket) TargetedNotification {
	return TargetedNotification{
		Type:         models.TypeTicketStatusUpdate,
		Message:      fmt.Sprintf("Your ticket payment has been %s", strings.ToLower(string(t.PaymentStatus))),
		EntityID:     t.ID,
		TargetUserID: t.UserID,
		Metadata:     models.Metadata{Name: t.Name, Amount: t.Amount, Status: t.PaymentStatus},
	}
}

// NewUserVerified is kept by admins and by the verified account itself.
func NewUserVerified(u *models.User) TargetedNotification {
	return TargetedNotification{
		Type:         models.TypeUserVerified,
		Message:      fmt.Sprintf("%s has been verified", u.Name),
		EntityID:     u.ID,
		TargetRoles:  []models.Role{models.RoleAdmin},
		TargetUserID: u.ID,
		Metadata:     models.Metadata{Name: u.Name, Email: u.Email},
	}
}

func NewWelcome(u *models.User) TargetedNotification {
	return TargetedNotification{
		Type:         models.TypeWelcome,
		Message:      fmt.Sprintf("Welcome, %s! Your account is ready.", u.Name),
		EntityID:     u.ID,
		TargetUserID: u.ID,
		Metadata:     models.Metadata{Name: u.Name},
	}
}

func NewUserLogin(u *models.User) TargetedNotification {
	return TargetedNotification{
		Type:         models.TypeUserLogin,
		Message:      fmt.Sprintf("%s logged in", u.Name),
		EntityID:     u.ID,
		TargetRoles:  []models.Role{models.RoleAdmin},
		TargetUserID: u.ID,
		Metadata:     models.Metadata{Name: u.Name, Email: u.Email},
	}
}

// NewLoginError records a failed login. There is no account to address, only admins.
func NewLoginError(email string, cause error) TargetedNotification {
	return TargetedNotification{
		Type:        models.TypeLoginError,
		Message:     fmt.Sprintf("Failed login attempt for %s", email),
		TargetRoles: []models.Role{models.RoleAdmin},
		Metadata:    models.Metadata{Email: email, Error: cause.Error()},
	}
}

func NewLoginAttemptUnverified(u *models.User) TargetedNotification {
	return TargetedNotification{
		Type:         models.TypeLoginAttemptUnverified,
		Message:      fmt.Sprintf("Unverified account %s tried to log in", u.Email),
		EntityID:     u.ID,
		TargetRoles:  []models.Role{models.RoleAdmin},
		TargetUserID: u.ID,
		Metadata:     models.Metadata{Name: u.Name, Email: u.Email},
	}
}

func NewLoginAttemptInactive(u *models.User) TargetedNotification {
	return TargetedNotification{
		Type:         models.TypeLoginAttemptInactive,
		Message:      fmt.Sprintf("Inactive account %s tried to log in", u.Email),
		EntityID:     u.ID,
		TargetRoles:  []models.Role{models.RoleAdmin},
		TargetUserID: u.ID,
		Metadata:     models.Metadata{Name: u.Name, Email: u.Email},
	}
}

func NewSaleRecorded(s *models.Sale, v *models.Vendor) TargetedNotification {
	return TargetedNotification{
		Type:         models.TypeNewSale,
		Message:      fmt.Sprintf("New sale: %d x %s", s.Quantity, s.Item),
		EntityID:     s.ID,
		TargetUserID: v.RecipientID(),
		Metadata:     models.Metadata{Name: s.Item, Amount: s.Amount},
	}
}

func NewReviewPosted(r *models.Review, v *models.Vendor) TargetedNotification {
	return TargetedNotification{
		Type:         models.TypeNewReview,
		Message:      fmt.Sprintf("New %d-star review for %s", r.Rating, v.Name),
		EntityID:     r.ID,
		TargetUserID: v.RecipientID(),
		Metadata:     models.Metadata{Name: r.Name, Rating: r.Rating, Sentiment: r.Sentiment},
	}
}

// NewBoothAssigned tells the vendor which booth it has at which festival.
func NewBoothAssigned(a *models.BoothAssignment, v *models.Vendor, b *models.Booth, festival string) TargetedNotification {
	return TargetedNotification{
		Type:         models.TypeBoothAssigned,
		Message:      fmt.Sprintf("You have been assigned booth %s at %s", b.BoothNumber, festival),
		EntityID:     a.ID,
		TargetUserID: v.RecipientID(),
		Metadata:     models.Metadata{Name: v.Name, Booth: b.BoothNumber, Festival: festival, Amount: b.Amount},
	}
}
