// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package review

import "context"

// Repository defines the data access contract for reviews.
type Repository interface {
	ListReviews(ctx context.Context, f Filter, limit, offset int) ([]*Review, int, error)
	GetReview(ctx context.Context, id int) (*Review, error)
	CreateReview(ctx context.Context, r *Review) error
	UpdateReview(ctx context.Context, r *Review) error
	DeleteReview(ctx context.Context, id int) error
}
