package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// HomeUsecase はトップページのセクション（おすすめ・新着・カテゴリ別）を組み立てる。
// 同じ商品を複数セクションに出さない。
type HomeUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

func NewHomeUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *HomeUsecase {
	return &HomeUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

type HomeSection struct {
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	Products []model.Product `json:"products"`
}

type HomeOutput struct {
	Sections []HomeSection `json:"sections"`
}

// セクションあたりの商品数と、カテゴリセクションの上限
const (
	homeSectionLimit     = 8
	homeCategorySections = 4
)

func (u *HomeUsecase) BuildHome(ctx context.Context) (HomeOutput, error) {
	used := make(map[int64]struct{})
	var sections []HomeSection

	// おすすめ。足りなければ新着から埋める。
	featuredPool, err := u.productRepo.ListFeatured(ctx, homeSectionLimit*2)
	if err != nil {
		return HomeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	latestPool, err := u.productRepo.ListLatest(ctx, homeSectionLimit*3)
	if err != nil {
		return HomeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	featured := pickUnused(featuredPool, used, homeSectionLimit)
	if len(featured) < homeSectionLimit {
		featured = append(featured, pickUnused(latestPool, used, homeSectionLimit-len(featured))...)
	}
	if len(featured) > 0 {
		sections = append(sections, HomeSection{Title: "Featured", Slug: "featured", Products: featured})
	}

	// 新着
	latest := pickUnused(latestPool, used, homeSectionLimit)
	if len(latest) > 0 {
		sections = append(sections, HomeSection{Title: "New arrivals", Slug: "new", Products: latest})
	}

	// カテゴリ別
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return HomeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	for i, c := range categories {
		if i >= homeCategorySections {
			break
		}
		pool, err := u.productRepo.ListByCategory(ctx, c.ID, homeSectionLimit*2)
		if err != nil {
			return HomeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		picked := pickUnused(pool, used, homeSectionLimit)
		if len(picked) == 0 {
			continue
		}
		sections = append(sections, HomeSection{Title: c.Name, Slug: c.Slug, Products: picked})
	}

	return HomeOutput{Sections: sections}, nil
}

// pickUnused はpoolの先頭から、まだ使っていない商品を最大limit件返す。
// 返した商品はusedに記録する。足りない場合はあるだけ返す。
func pickUnused(pool []model.Product, used map[int64]struct{}, limit int) []model.Product {
	out := make([]model.Product, 0, limit)
	for _, p := range pool {
		if len(out) == limit {
			break
		}
		if _, ok := used[p.ID]; ok {
			continue
		}
		used[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
