package service

import (
	"context"
	"testing"
	"time"

	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
	"github.com/linktrove/linktrove/internal/http/util"
)

func testTokenManager() *util.TokenManager {
	return util.NewTokenManager("test-secret", 1, 1)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := util.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return hash
}

// Function-field mocks shared across the service tests. Unset fields fall
// back to benign defaults.

type mockLinktreeRepository struct {
	createFn       func(ctx context.Context, tree *model.Linktree) error
	getByUserIDFn  func(ctx context.Context, userID uint) (*model.Linktree, error)
	getBySlugFn    func(ctx context.Context, slug string) (*model.Linktree, error)
	updateFn       func(ctx context.Context, tree *model.Linktree) error
	slugExistsFn   func(ctx context.Context, slug string, excludeID uint) (bool, error)
	allSlugsFn     func(ctx context.Context) ([]string, error)
	allPhotoURLsFn func(ctx context.Context) ([]string, error)
}

func (m *mockLinktreeRepository) Create(ctx context.Context, tree *model.Linktree) error {
	if m.createFn != nil {
		return m.createFn(ctx, tree)
	}
	return nil
}

func (m *mockLinktreeRepository) GetByUserID(ctx context.Context, userID uint) (*model.Linktree, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID)
	}
	return nil, repository.ErrLinktreeNotFound
}

func (m *mockLinktreeRepository) GetBySlug(ctx context.Context, slug string) (*model.Linktree, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, repository.ErrLinktreeNotFound
}

func (m *mockLinktreeRepository) Update(ctx context.Context, tree *model.Linktree) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, tree)
	}
	return nil
}

func (m *mockLinktreeRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	if m.slugExistsFn != nil {
		return m.slugExistsFn(ctx, slug, excludeID)
	}
	return false, nil
}

func (m *mockLinktreeRepository) AllSlugs(ctx context.Context) ([]string, error) {
	if m.allSlugsFn != nil {
		return m.allSlugsFn(ctx)
	}
	return nil, nil
}

func (m *mockLinktreeRepository) AllPhotoURLs(ctx context.Context) ([]string, error) {
	if m.allPhotoURLsFn != nil {
		return m.allPhotoURLsFn(ctx)
	}
	return nil, nil
}

type mockLinkRepository struct {
	createFn          func(ctx context.Context, link *model.DetailLink) error
	getByIDFn         func(ctx context.Context, id uint) (*model.DetailLink, error)
	listByLinktreeFn  func(ctx context.Context, linktreeID uint, visibleOnly bool) ([]model.DetailLink, error)
	idsByLinktreeFn   func(ctx context.Context, linktreeID uint) ([]uint, error)
	updateFn          func(ctx context.Context, link *model.DetailLink) error
	deleteFn          func(ctx context.Context, id uint) error
	reorderFn         func(ctx context.Context, updates []repository.SortUpdate) error
	countByCategoryFn func(ctx context.Context, categoryID uint) (int64, error)
}

func (m *mockLinkRepository) Create(ctx context.Context, link *model.DetailLink) error {
	if m.createFn != nil {
		return m.createFn(ctx, link)
	}
	return nil
}

func (m *mockLinkRepository) GetByID(ctx context.Context, id uint) (*model.DetailLink, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrLinkNotFound
}

func (m *mockLinkRepository) ListByLinktree(ctx context.Context, linktreeID uint, visibleOnly bool) ([]model.DetailLink, error) {
	if m.listByLinktreeFn != nil {
		return m.listByLinktreeFn(ctx, linktreeID, visibleOnly)
	}
	return nil, nil
}

func (m *mockLinkRepository) IDsByLinktree(ctx context.Context, linktreeID uint) ([]uint, error) {
	if m.idsByLinktreeFn != nil {
		return m.idsByLinktreeFn(ctx, linktreeID)
	}
	return nil, nil
}

func (m *mockLinkRepository) Update(ctx context.Context, link *model.DetailLink) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, link)
	}
	return nil
}

func (m *mockLinkRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockLinkRepository) Reorder(ctx context.Context, updates []repository.SortUpdate) error {
	if m.reorderFn != nil {
		return m.reorderFn(ctx, updates)
	}
	return nil
}

func (m *mockLinkRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	if m.countByCategoryFn != nil {
		return m.countByCategoryFn(ctx, categoryID)
	}
	return 0, nil
}

type mockCategoryRepository struct {
	createFn  func(ctx context.Context, category *model.Category) error
	getByIDFn func(ctx context.Context, id uint) (*model.Category, error)
	listFn    func(ctx context.Context) ([]model.Category, error)
	updateFn  func(ctx context.Context, category *model.Category) error
	deleteFn  func(ctx context.Context, id uint) error
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockArticleCategoryRepository struct {
	createFn        func(ctx context.Context, category *model.ArticleCategory) error
	getByIDFn       func(ctx context.Context, id uint) (*model.ArticleCategory, error)
	getBySlugFn     func(ctx context.Context, slug string) (*model.ArticleCategory, error)
	listFn          func(ctx context.Context) ([]model.ArticleCategory, error)
	updateFn        func(ctx context.Context, category *model.ArticleCategory) error
	deleteFn        func(ctx context.Context, id uint) error
	slugExistsFn    func(ctx context.Context, slug string, excludeID uint) (bool, error)
	allSlugsFn      func(ctx context.Context) ([]string, error)
	countArticlesFn func(ctx context.Context, categoryID uint) (int64, error)
}

func (m *mockArticleCategoryRepository) Create(ctx context.Context, category *model.ArticleCategory) error {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return nil
}

func (m *mockArticleCategoryRepository) GetByID(ctx context.Context, id uint) (*model.ArticleCategory, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrArticleCategoryNotFound
}

func (m *mockArticleCategoryRepository) GetBySlug(ctx context.Context, slug string) (*model.ArticleCategory, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, repository.ErrArticleCategoryNotFound
}

func (m *mockArticleCategoryRepository) List(ctx context.Context) ([]model.ArticleCategory, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockArticleCategoryRepository) Update(ctx context.Context, category *model.ArticleCategory) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, category)
	}
	return nil
}

func (m *mockArticleCategoryRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockArticleCategoryRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	if m.slugExistsFn != nil {
		return m.slugExistsFn(ctx, slug, excludeID)
	}
	return false, nil
}

func (m *mockArticleCategoryRepository) AllSlugs(ctx context.Context) ([]string, error) {
	if m.allSlugsFn != nil {
		return m.allSlugsFn(ctx)
	}
	return nil, nil
}

func (m *mockArticleCategoryRepository) CountArticles(ctx context.Context, categoryID uint) (int64, error) {
	if m.countArticlesFn != nil {
		return m.countArticlesFn(ctx, categoryID)
	}
	return 0, nil
}

type mockArticleRepository struct {
	createFn        func(ctx context.Context, article *model.Article) error
	getByIDFn       func(ctx context.Context, id uint) (*model.Article, error)
	getBySlugFn     func(ctx context.Context, slug string) (*model.Article, error)
	listFn          func(ctx context.Context, filter repository.ArticleFilter) ([]model.Article, int64, error)
	updateFn        func(ctx context.Context, article *model.Article) error
	deleteFn        func(ctx context.Context, id uint) error
	slugExistsFn    func(ctx context.Context, slug string, excludeID uint) (bool, error)
	allSlugsFn      func(ctx context.Context) ([]string, error)
	allImagePathsFn func(ctx context.Context) ([]string, error)
	recordViewFn    func(ctx context.Context, view *model.ArticleView, windowStart, windowEnd time.Time) (bool, error)
}

func (m *mockArticleRepository) Create(ctx context.Context, article *model.Article) error {
	if m.createFn != nil {
		return m.createFn(ctx, article)
	}
	return nil
}

func (m *mockArticleRepository) GetByID(ctx context.Context, id uint) (*model.Article, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrArticleNotFound
}

func (m *mockArticleRepository) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, repository.ErrArticleNotFound
}

func (m *mockArticleRepository) List(ctx context.Context, filter repository.ArticleFilter) ([]model.Article, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockArticleRepository) Update(ctx context.Context, article *model.Article) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, article)
	}
	return nil
}

func (m *mockArticleRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockArticleRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	if m.slugExistsFn != nil {
		return m.slugExistsFn(ctx, slug, excludeID)
	}
	return false, nil
}

func (m *mockArticleRepository) AllSlugs(ctx context.Context) ([]string, error) {
	if m.allSlugsFn != nil {
		return m.allSlugsFn(ctx)
	}
	return nil, nil
}

func (m *mockArticleRepository) AllImagePaths(ctx context.Context) ([]string, error) {
	if m.allImagePathsFn != nil {
		return m.allImagePathsFn(ctx)
	}
	return nil, nil
}

func (m *mockArticleRepository) RecordView(ctx context.Context, view *model.ArticleView, windowStart, windowEnd time.Time) (bool, error) {
	if m.recordViewFn != nil {
		return m.recordViewFn(ctx, view, windowStart, windowEnd)
	}
	return true, nil
}

type mockSettingRepository struct {
	getFn    func(ctx context.Context, key string) (*model.Setting, error)
	listFn   func(ctx context.Context) ([]model.Setting, error)
	upsertFn func(ctx context.Context, setting *model.Setting) error
}

func (m *mockSettingRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, repository.ErrSettingNotFound
}

func (m *mockSettingRepository) List(ctx context.Context) ([]model.Setting, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockSettingRepository) Upsert(ctx context.Context, setting *model.Setting) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, setting)
	}
	return nil
}

type mockUserRepository struct {
	createFn        func(ctx context.Context, user *model.User) error
	getByIDFn       func(ctx context.Context, id uint) (*model.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	listFn          func(ctx context.Context, role string, limit, offset int) ([]model.User, int64, error)
	updateFn        func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) List(ctx context.Context, role string, limit, offset int) ([]model.User, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, role, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}
