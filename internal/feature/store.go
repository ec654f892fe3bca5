// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package feature

import "context"

// Repository is the persistence surface for flags. Get returns
// dberr.ErrNotFound for an unknown name; the service maps that to the
// virtual uncreated status.
type Repository interface {
	List(ctx context.Context) ([]*Feature, error)
	Get(ctx context.Context, name string) (*Feature, error)
	Create(ctx context.Context, f *Feature) error
	UpdateStatus(ctx context.Context, name string, from, to Status) (*Feature, error)
}
