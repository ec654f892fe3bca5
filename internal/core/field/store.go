// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package field

import "context"

// Repository defines the data access contract for the field taxonomy.
type Repository interface {
	ListFields(ctx context.Context, f Filter, limit, offset int) ([]*Field, int, error)
	GetField(ctx context.Context, id int) (*Field, error)
	CreateField(ctx context.Context, f *Field) error
	UpdateField(ctx context.Context, f *Field) error
	SoftDeleteField(ctx context.Context, id int) error
}
