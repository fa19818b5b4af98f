package service

import (
	"context"

	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/repository"
)

// Snapshot events re-sent after writes. Each Fetch runs on a fan-out worker.

func festivalsRefresh(repo repository.FestivalRepository) fanout.ListRefresh {
	return fanout.ListRefresh{Collection: "festivals", Fetch: func(ctx context.Context) (any, error) {
		festivals, err := repo.List(ctx)
		return festivals, err
	}}
}

func festivalReviewsRefresh(repo repository.FestivalRepository) fanout.ListRefresh {
	return fanout.ListRefresh{Collection: "festivalReviews", Fetch: func(ctx context.Context) (any, error) {
		reviews, err := repo.ListReviews(ctx, "")
		return reviews, err
	}}
}

func vendorsRefresh(repo repository.VendorRepository) fanout.ListRefresh {
	return fanout.ListRefresh{Collection: "vendors", Fetch: func(ctx context.Context) (any, error) {
		vendors, err := repo.List(ctx, repository.VendorFilter{})
		return vendors, err
	}}
}

func vendorStatusCounts(repo repository.VendorRepository) fanout.StatusCounts {
	return fanout.StatusCounts{Name: "vendor", Fetch: func(ctx context.Context) (any, error) {
		counts, err := repo.StatusCounts(ctx)
		return counts, err
	}}
}

func ticketsRefresh(repo repository.TicketRepository) fanout.ListRefresh {
	return fanout.ListRefresh{Collection: "tickets", Fetch: func(ctx context.Context) (any, error) {
		tickets, err := repo.List(ctx, repository.TicketFilter{})
		return tickets, err
	}}
}

func ticketStatusCounts(repo repository.TicketRepository) fanout.StatusCounts {
	return fanout.StatusCounts{Name: "ticket", Fetch: func(ctx context.Context) (any, error) {
		counts, err := repo.StatusCounts(ctx)
		return counts, err
	}}
}

// salesRefresh carries one vendor's sales only.
func salesRefresh(repo repository.SaleRepository, vendorID string) fanout.ListRefresh {
	return fanout.ListRefresh{Collection: "sales", Fetch: func(ctx context.Context) (any, error) {
		sales, err := repo.ListByVendor(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		return dto.SalesUpdate{VendorID: vendorID, Sales: sales}, nil
	}}
}

func reviewsRefresh(repo repository.ReviewRepository) fanout.ListRefresh {
	return fanout.ListRefresh{Collection: "reviews", Fetch: func(ctx context.Context) (any, error) {
		reviews, err := repo.List(ctx, repository.ReviewFilter{})
		return reviews, err
	}}
}

func boothsRefresh(repo repository.BoothRepository) fanout.ListRefresh {
	return fanout.ListRefresh{Collection: "booths", Fetch: func(ctx context.Context) (any, error) {
		booths, err := repo.List(ctx, "")
		return booths, err
	}}
}

func assignmentsRefresh(repo repository.BoothRepository) fanout.ListRefresh {
	return fanout.ListRefresh{Collection: "assignments", Fetch: func(ctx context.Context) (any, error) {
		assignments, err := repo.ListAssignments(ctx)
		return assignments, err
	}}
}

func eventsRefresh(repo repository.EventRepository) fanout.ListRefresh {
	return fanout.ListRefresh{Collection: "events", Fetch: func(ctx context.Context) (any, error) {
		events, err := repo.List(ctx, repository.EventFilter{})
		return events, err
	}}
}

// menuItemsRefresh carries one vendor's menu only.
func menuItemsRefresh(repo repository.MenuItemRepository, vendorID string) fanout.ListRefresh {
	return fanout.ListRefresh{Collection: "menuItems", Fetch: func(ctx context.Context) (any, error) {
		items, err := repo.ListByVendor(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		return dto.MenuItemsUpdate{VendorID: vendorID, MenuItems: items}, nil
	}}
}
