package models

// Sentiment is the label the classifier assigns to free-text feedback.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

type Review struct {
	Base
	VendorID  string    `gorm:"type:uuid;not null;index" json:"vendor_id"`
	UserID    string    `gorm:"type:varchar(64);index" json:"user_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	Sentiment Sentiment `gorm:"type:varchar(16);not null;index" json:"sentiment"`

	// Associations
	Vendor Vendor `json:"-" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
