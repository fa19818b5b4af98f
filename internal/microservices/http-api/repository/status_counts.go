package repository

import (
	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// StatusCounts maps every status to the number of rows holding it. Missing statuses are zero.
type StatusCounts map[models.Status]int64

// VendorStatusCounts is the vendorStatusCounts snapshot.
type VendorStatusCounts struct {
	Registration   StatusCounts `json:"registration"`
	Payment        StatusCounts `json:"payment"`
	PaymentVendors int64        `json:"paymentVendors"`
}

type statusRow struct {
	Status models.Status
	Count  int64
}

// countByStatus groups the model's rows by the given status column.
func countByStatus(db *gorm.DB, model any, column string) (StatusCounts, error) {
	var rows []statusRow
	err := db.Model(model).
		Select(column + " AS status, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(StatusCounts, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
