package service_test

import (
	"context"
	"sort"
	"testing"

	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/model"
	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory CategoryRepository ─────────────────────────────────────────────

type fakeCategoryRepo struct {
	cats map[uuid.UUID]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{cats: make(map[uuid.UUID]*model.Category)}
}

func (r *fakeCategoryRepo) siblings(mainID *uuid.UUID) []*model.Category {
	var out []*model.Category
	for _, c := range r.cats {
		switch {
		case mainID == nil && c.MainCategoryID == nil:
			out = append(out, c)
		case mainID != nil && c.MainCategoryID != nil && *c.MainCategoryID == *mainID:
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cats[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.cats {
		cat := *c
		cat.Subcategories = nil
		for _, sub := range r.siblings(&c.ID) {
			cat.Subcategories = append(cat.Subcategories, *sub)
		}
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cat := *c
	cat.Subcategories = nil
	for _, sub := range r.siblings(&id) {
		cat.Subcategories = append(cat.Subcategories, *sub)
	}
	return &cat, nil
}

func (r *fakeCategoryRepo) CountSiblings(_ context.Context, mainID *uuid.UUID) (int64, error) {
	return int64(len(r.siblings(mainID))), nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *model.Category) error {
	stored := *c
	stored.Subcategories = nil
	r.cats[c.ID] = &stored
	return nil
}

// UpdateWithOrder mirrors the SQL renumbering: pull the group together without
// the moving row, clamp the target slot, reinsert and renumber 1..n.
func (r *fakeCategoryRepo) UpdateWithOrder(_ context.Context, c *model.Category, newOrder int) error {
	var rest []*model.Category
	for _, sib := range r.siblings(c.MainCategoryID) {
		if sib.ID != c.ID {
			rest = append(rest, sib)
		}
	}
	if newOrder > len(rest)+1 {
		newOrder = len(rest) + 1
	}

	stored := *c
	stored.Subcategories = nil
	r.cats[c.ID] = &stored

	pos := 1
	for _, sib := range rest {
		if pos == newOrder {
			pos++
		}
		sib.Order = pos
		pos++
	}
	stored.Order = newOrder
	c.Order = newOrder
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	c, ok := r.cats[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.cats, id)
	for _, sib := range r.siblings(c.MainCategoryID) {
		if sib.Order > c.Order {
			sib.Order--
		}
	}
	return nil
}

// ── BlobStore spy ────────────────────────────────────────────────────────────

type spyBlobStore struct{ destroyed []string }

func (s *spyBlobStore) Destroy(_ context.Context, publicID string) error {
	s.destroyed = append(s.destroyed, publicID)
	return nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

func newCategoryFixture(t *testing.T) (service.CategoryService, *fakeCategoryRepo, *spyBlobStore) {
	t.Helper()
	repo := newFakeCategoryRepo()
	blobs := &spyBlobStore{}
	return service.NewCategoryService(repo, blobs), repo, blobs
}

func TestCreateAppendsAtTail(t *testing.T) {
	svc, _, _ := newCategoryFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, nil, dto.StoreCategoryRequest{Name: "Anillos"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, nil, dto.StoreCategoryRequest{Name: "Collares"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Order)
	assert.Equal(t, 2, second.Order)
	assert.Equal(t, 0, first.Level)
}

func TestCreateSubcategoryLevels(t *testing.T) {
	svc, _, _ := newCategoryFixture(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, nil, dto.StoreCategoryRequest{Name: "Anillos"})
	require.NoError(t, err)

	rootID := mustParseUUID(t, root.ID)
	sub, err := svc.Create(ctx, &rootID, dto.StoreCategoryRequest{Name: "Anillos de oro"})
	require.NoError(t, err)

	assert.Equal(t, 1, sub.Level)
	assert.Equal(t, 1, sub.Order, "first in its own sibling group")
	require.NotNil(t, sub.MainCategory)
	assert.Equal(t, root.ID, *sub.MainCategory)
}

func TestUpdateReordersSiblings(t *testing.T) {
	svc, repo, _ := newCategoryFixture(t)
	ctx := context.Background()

	names := []string{"Anillos", "Collares", "Pulseras", "Aretes"}
	ids := make([]uuid.UUID, len(names))
	for i, n := range names {
		resp, err := svc.Create(ctx, nil, dto.StoreCategoryRequest{Name: n})
		require.NoError(t, err)
		ids[i] = mustParseUUID(t, resp.ID)
	}

	// Move "Aretes" (order 4) to the front.
	newOrder := 1
	_, err := svc.Update(ctx, ids[3], dto.UpdateCategoryRequest{Name: "Aretes", Order: &newOrder})
	require.NoError(t, err)

	orders := make(map[string]int)
	for _, c := range repo.cats {
		orders[c.Name] = c.Order
	}
	assert.Equal(t, 1, orders["Aretes"])
	assert.Equal(t, 2, orders["Anillos"])
	assert.Equal(t, 3, orders["Collares"])
	assert.Equal(t, 4, orders["Pulseras"])
}

func TestUpdateOrderClampsToGroupSize(t *testing.T) {
	svc, repo, _ := newCategoryFixture(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, nil, dto.StoreCategoryRequest{Name: "Anillos"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, nil, dto.StoreCategoryRequest{Name: "Collares"})
	require.NoError(t, err)

	tooFar := 99
	_, err = svc.Update(ctx, mustParseUUID(t, a.ID), dto.UpdateCategoryRequest{Name: "Anillos", Order: &tooFar})
	require.NoError(t, err)

	orders := make(map[string]int)
	for _, c := range repo.cats {
		orders[c.Name] = c.Order
	}
	assert.Equal(t, 2, orders["Anillos"])
	assert.Equal(t, 1, orders["Collares"])
}

func TestDeleteKeepsOrderContiguous(t *testing.T) {
	svc, repo, _ := newCategoryFixture(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, n := range []string{"Anillos", "Collares", "Pulseras"} {
		resp, err := svc.Create(ctx, nil, dto.StoreCategoryRequest{Name: n})
		require.NoError(t, err)
		ids = append(ids, mustParseUUID(t, resp.ID))
	}

	require.NoError(t, svc.Delete(ctx, ids[1]))

	orders := make(map[string]int)
	for _, c := range repo.cats {
		orders[c.Name] = c.Order
	}
	assert.Equal(t, 1, orders["Anillos"])
	assert.Equal(t, 2, orders["Pulseras"])
}

func TestDeleteWithSubcategoriesRejected(t *testing.T) {
	svc, _, _ := newCategoryFixture(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, nil, dto.StoreCategoryRequest{Name: "Anillos"})
	require.NoError(t, err)
	rootID := mustParseUUID(t, root.ID)
	_, err = svc.Create(ctx, &rootID, dto.StoreCategoryRequest{Name: "Anillos de oro"})
	require.NoError(t, err)

	err = svc.Delete(ctx, rootID)
	var invalidState *service.InvalidStateError
	assert.ErrorAs(t, err, &invalidState)
}

func TestReplacedImageIsDestroyed(t *testing.T) {
	svc, _, blobs := newCategoryFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, dto.StoreCategoryRequest{
		Name:  "Anillos",
		Image: &dto.ImagePayload{PublicID: "img-old"},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, mustParseUUID(t, created.ID), dto.UpdateCategoryRequest{
		Name:  "Anillos",
		Image: &dto.ImagePayload{PublicID: "img-new"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"img-old"}, blobs.destroyed)
}

func TestDeletedCategoryImageIsDestroyed(t *testing.T) {
	svc, _, blobs := newCategoryFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, dto.StoreCategoryRequest{
		Name:  "Anillos",
		Image: &dto.ImagePayload{PublicID: "img-1"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, mustParseUUID(t, created.ID)))
	assert.Equal(t, []string{"img-1"}, blobs.destroyed)
}
