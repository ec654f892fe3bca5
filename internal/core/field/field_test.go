// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package field

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerreview/journalhub/pkg/pointer"
)

type fakeRepository struct {
	created []*Field
}

func (fake *fakeRepository) ListFields(_ context.Context, _ Filter, _, _ int) ([]*Field, int, error) {
	return nil, 0, nil
}
func (fake *fakeRepository) GetField(_ context.Context, _ int) (*Field, error) { return nil, nil }
func (fake *fakeRepository) CreateField(_ context.Context, f *Field) error {
	fake.created = append(fake.created, f)
	return nil
}
func (fake *fakeRepository) UpdateField(_ context.Context, _ *Field) error  { return nil }
func (fake *fakeRepository) SoftDeleteField(_ context.Context, _ int) error { return nil }

func newTestService(fake *fakeRepository) *Service {
	return NewService(fake, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_CreateField_TreeShape verifies the taxonomy shape rules: a
subfield needs a parent, a discipline must not have one.
*/
func TestService_CreateField_TreeShape(t *testing.T) {
	cases := []struct {
		name    string
		field   Field
		wantErr bool
	}{
		{"discipline root", Field{Name: "Physics", Type: TypeDiscipline}, false},
		{"subfield with parent", Field{Name: "Optics", Type: TypeSubfield, ParentID: pointer.To(1)}, false},
		{"subfield without parent", Field{Name: "Optics", Type: TypeSubfield}, true},
		{"discipline with parent", Field{Name: "Physics", Type: TypeDiscipline, ParentID: pointer.To(1)}, true},
		{"unknown type", Field{Name: "Physics", Type: "area"}, true},
		{"missing name", Field{Type: TypeDiscipline}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeRepository{}
			err := newTestService(fake).CreateField(context.Background(), &tc.field)
			if tc.wantErr {
				require.Error(t, err)
				assert.Empty(t, fake.created)
			} else {
				require.NoError(t, err)
				assert.Len(t, fake.created, 1)
			}
		})
	}
}
