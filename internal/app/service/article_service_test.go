package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
)

func TestEstimateReadingTime(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}

	for _, tc := range cases {
		body := strings.TrimSpace(strings.Repeat("word ", tc.words))
		if got := EstimateReadingTime(body); got != tc.want {
			t.Errorf("EstimateReadingTime(%d words) = %d, want %d", tc.words, got, tc.want)
		}
	}
}

func TestArticleService_Create_DraftHasNoPublishedAt(t *testing.T) {
	articles := &mockArticleRepository{}
	svc := NewArticleService(articles, &mockArticleCategoryRepository{}, NewSlugAllocator(nil))

	article, err := svc.Create(context.Background(), 1, CreateArticleInput{Title: "Hello World"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if article.Status != model.ArticleDraft {
		t.Fatalf("expected DRAFT, got %s", article.Status)
	}
	if article.PublishedAt != nil {
		t.Fatal("draft must not carry a publication time")
	}
	if article.Slug != "hello-world" {
		t.Fatalf("expected hello-world, got %q", article.Slug)
	}
}

func TestArticleService_Update_FirstPublishStampsOnce(t *testing.T) {
	stamp := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	stored := &model.Article{ID: 3, Title: "Post", Slug: "post", Status: model.ArticleArchived, PublishedAt: &stamp}
	articles := &mockArticleRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.Article, error) { return stored, nil },
	}
	svc := NewArticleService(articles, &mockArticleCategoryRepository{}, NewSlugAllocator(nil))

	status := model.ArticlePublished
	article, err := svc.Update(context.Background(), 3, UpdateArticleInput{Status: &status})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if article.PublishedAt == nil || !article.PublishedAt.Equal(stamp) {
		t.Fatal("re-publishing must keep the original publication time")
	}
}

func TestArticleService_Update_BodyChangeRecomputesReadingTime(t *testing.T) {
	stored := &model.Article{ID: 3, Title: "Post", Slug: "post", ReadingTime: 1}
	articles := &mockArticleRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.Article, error) { return stored, nil },
	}
	svc := NewArticleService(articles, &mockArticleCategoryRepository{}, NewSlugAllocator(nil))

	body := strings.TrimSpace(strings.Repeat("word ", 450))
	article, err := svc.Update(context.Background(), 3, UpdateArticleInput{Body: &body})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if article.ReadingTime != 3 {
		t.Fatalf("expected reading time 3, got %d", article.ReadingTime)
	}
}

func TestArticleService_Update_UnchangedTitleKeepsSlug(t *testing.T) {
	stored := &model.Article{ID: 3, Title: "Post", Slug: "post"}
	articles := &mockArticleRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.Article, error) { return stored, nil },
		slugExistsFn: func(ctx context.Context, slug string, excludeID uint) (bool, error) {
			t.Fatal("slug probe must not run when the title is unchanged")
			return false, nil
		},
	}
	svc := NewArticleService(articles, &mockArticleCategoryRepository{}, NewSlugAllocator(nil))

	title := "Post"
	article, err := svc.Update(context.Background(), 3, UpdateArticleInput{Title: &title})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if article.Slug != "post" {
		t.Fatalf("slug changed to %q", article.Slug)
	}
}

func TestArticleService_Update_RenameReallocatesSlug(t *testing.T) {
	stored := &model.Article{ID: 3, Title: "Post", Slug: "post"}
	articles := &mockArticleRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.Article, error) { return stored, nil },
	}
	svc := NewArticleService(articles, &mockArticleCategoryRepository{}, NewSlugAllocator(nil))

	title := "Fresh Title"
	article, err := svc.Update(context.Background(), 3, UpdateArticleInput{Title: &title})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if article.Slug != "fresh-title" {
		t.Fatalf("expected fresh-title, got %q", article.Slug)
	}
}

func TestArticleService_GetPublishedBySlug_HidesDrafts(t *testing.T) {
	articles := &mockArticleRepository{
		getBySlugFn: func(ctx context.Context, slug string) (*model.Article, error) {
			return &model.Article{Slug: slug, Status: model.ArticleDraft}, nil
		},
	}
	svc := NewArticleService(articles, &mockArticleCategoryRepository{}, NewSlugAllocator(nil))

	_, err := svc.GetPublishedBySlug(context.Background(), "draft-post")
	if !errors.Is(err, repository.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound for a draft, got %v", err)
	}
}

func TestArticleService_RecordView_WindowIsCalendarDay(t *testing.T) {
	var start, end time.Time
	articles := &mockArticleRepository{
		recordViewFn: func(ctx context.Context, view *model.ArticleView, windowStart, windowEnd time.Time) (bool, error) {
			start, end = windowStart, windowEnd
			if view.ID == "" {
				t.Fatal("expected a generated view id")
			}
			return true, nil
		},
	}
	svc := NewArticleService(articles, &mockArticleCategoryRepository{}, NewSlugAllocator(nil))

	counted, err := svc.RecordView(context.Background(), 9, "203.0.113.7", "ua")
	if err != nil {
		t.Fatalf("RecordView returned error: %v", err)
	}
	if !counted {
		t.Fatal("expected view to be counted")
	}

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("window start is not midnight: %v", start)
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("window is not one calendar day: %v .. %v", start, end)
	}
	now := time.Now()
	if now.Before(start) || !now.Before(end) {
		t.Fatalf("now %v outside window %v .. %v", now, start, end)
	}
}

func TestArticleService_RecordView_DuplicateSuppressed(t *testing.T) {
	articles := &mockArticleRepository{
		recordViewFn: func(ctx context.Context, view *model.ArticleView, windowStart, windowEnd time.Time) (bool, error) {
			return false, nil
		},
	}
	svc := NewArticleService(articles, &mockArticleCategoryRepository{}, NewSlugAllocator(nil))

	counted, err := svc.RecordView(context.Background(), 9, "203.0.113.7", "ua")
	if err != nil {
		t.Fatalf("RecordView returned error: %v", err)
	}
	if counted {
		t.Fatal("duplicate view must not count")
	}
}

func TestArticleService_ListPublished_ResolvesCategorySlug(t *testing.T) {
	categories := &mockArticleCategoryRepository{
		getBySlugFn: func(ctx context.Context, slug string) (*model.ArticleCategory, error) {
			return &model.ArticleCategory{ID: 5, Slug: slug}, nil
		},
	}
	articles := &mockArticleRepository{
		listFn: func(ctx context.Context, filter repository.ArticleFilter) ([]model.Article, int64, error) {
			if filter.Status != model.ArticlePublished {
				t.Fatalf("public listing must pin status, got %q", filter.Status)
			}
			if filter.CategoryID == nil || *filter.CategoryID != 5 {
				t.Fatal("expected category filter resolved from slug")
			}
			return []model.Article{{Title: "A"}}, 1, nil
		},
	}
	svc := NewArticleService(articles, categories, NewSlugAllocator(nil))

	result, total, err := svc.ListPublished(context.Background(), PublicArticleFilter{CategorySlug: "news"})
	if err != nil {
		t.Fatalf("ListPublished returned error: %v", err)
	}
	if total != 1 || len(result) != 1 {
		t.Fatalf("expected 1 article, got %d/%d", len(result), total)
	}
}
