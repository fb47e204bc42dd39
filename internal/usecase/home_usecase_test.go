package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func products(ids ...int64) []model.Product {
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Product{ID: id, Name: "p", Price: 100, IsActive: true})
	}
	return out
}

func idsOf(ps []model.Product) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestPickUnused(t *testing.T) {
	pool := products(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	used := make(map[int64]struct{})

	first := pickUnused(pool, used, 4)
	assert.Equal(t, []int64{1, 2, 3, 4}, idsOf(first))

	// 2回目は残りから、順序は維持
	second := pickUnused(pool, used, 4)
	assert.Equal(t, []int64{5, 6, 7, 8}, idsOf(second))

	// 足りなければあるだけ
	third := pickUnused(pool, used, 4)
	assert.Equal(t, []int64{9, 10}, idsOf(third))

	// 枯れたら空
	fourth := pickUnused(pool, used, 4)
	assert.Empty(t, fourth)
}

func TestPickUnused_SkipsAlreadyUsed(t *testing.T) {
	used := map[int64]struct{}{2: {}, 4: {}}

	picked := pickUnused(products(1, 2, 3, 4, 5), used, 10)
	assert.Equal(t, []int64{1, 3, 5}, idsOf(picked))
}

func TestBuildHome_NoProductAppearsTwice(t *testing.T) {
	productRepo := &productRepoMock{}
	categoryRepo := &categoryRepoMock{}

	// おすすめと新着、カテゴリのプールが重なるケース
	productRepo.On("ListFeatured", mock.Anything, homeSectionLimit*2).
		Return(products(1, 2, 3), nil)
	productRepo.On("ListLatest", mock.Anything, homeSectionLimit*3).
		Return(products(3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15), nil)
	categoryRepo.On("List", mock.Anything).
		Return([]model.Category{{ID: 1, Name: "Bonnets", Slug: "bonnets"}}, nil)
	productRepo.On("ListByCategory", mock.Anything, int64(1), homeSectionLimit*2).
		Return(products(1, 5, 20, 21), nil)

	uc := NewHomeUsecase(productRepo, categoryRepo)
	out, err := uc.BuildHome(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Sections, 3)
	assert.Equal(t, "featured", out.Sections[0].Slug)
	assert.Equal(t, "new", out.Sections[1].Slug)
	assert.Equal(t, "bonnets", out.Sections[2].Slug)

	// おすすめが3件しかないので新着プールから埋まる
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8}, idsOf(out.Sections[0].Products))
	// 新着は未使用分のみ
	assert.Equal(t, []int64{9, 10, 11, 12, 13, 14, 15}, idsOf(out.Sections[1].Products))
	// カテゴリは1と5が使用済みなので残り
	assert.Equal(t, []int64{20, 21}, idsOf(out.Sections[2].Products))

	// 全セクション横断で重複なし
	seen := make(map[int64]struct{})
	for _, s := range out.Sections {
		for _, p := range s.Products {
			_, dup := seen[p.ID]
			assert.False(t, dup, "product %d appears twice", p.ID)
			seen[p.ID] = struct{}{}
		}
	}
}

func TestBuildHome_EmptySectionsOmitted(t *testing.T) {
	productRepo := &productRepoMock{}
	categoryRepo := &categoryRepoMock{}

	productRepo.On("ListFeatured", mock.Anything, homeSectionLimit*2).
		Return(products(1, 2), nil)
	productRepo.On("ListLatest", mock.Anything, homeSectionLimit*3).
		Return(products(1, 2), nil)
	categoryRepo.On("List", mock.Anything).
		Return([]model.Category{{ID: 1, Name: "Bonnets", Slug: "bonnets"}}, nil)
	// カテゴリの商品が全部使用済み
	productRepo.On("ListByCategory", mock.Anything, int64(1), homeSectionLimit*2).
		Return(products(1, 2), nil)

	uc := NewHomeUsecase(productRepo, categoryRepo)
	out, err := uc.BuildHome(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Sections, 1)
	assert.Equal(t, "featured", out.Sections[0].Slug)
	assert.Equal(t, []int64{1, 2}, idsOf(out.Sections[0].Products))
}

func TestBuildHome_CategorySectionsCapped(t *testing.T) {
	productRepo := &productRepoMock{}
	categoryRepo := &categoryRepoMock{}

	productRepo.On("ListFeatured", mock.Anything, homeSectionLimit*2).
		Return([]model.Product(nil), nil)
	productRepo.On("ListLatest", mock.Anything, homeSectionLimit*3).
		Return([]model.Product(nil), nil)

	cats := make([]model.Category, 0, 6)
	for i := int64(1); i <= 6; i++ {
		cats = append(cats, model.Category{ID: i, Name: "c", Slug: "c"})
		productRepo.On("ListByCategory", mock.Anything, i, homeSectionLimit*2).
			Return(products(100+i), nil)
	}
	categoryRepo.On("List", mock.Anything).Return(cats, nil)

	uc := NewHomeUsecase(productRepo, categoryRepo)
	out, err := uc.BuildHome(context.Background())
	require.NoError(t, err)

	// 上限を超えるカテゴリは出さない
	assert.Len(t, out.Sections, homeCategorySections)
	productRepo.AssertNotCalled(t, "ListByCategory", mock.Anything, int64(5), homeSectionLimit*2)
}
