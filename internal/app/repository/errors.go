package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUserNotFound signals that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser signals a username or email collision.
	ErrDuplicateUser = errors.New("username or email already taken")
	// ErrLinktreeNotFound signals that the requested linktree does not exist.
	ErrLinktreeNotFound = errors.New("linktree not found")
	// ErrLinktreeExists signals the owner already has a linktree.
	ErrLinktreeExists = errors.New("user already has a linktree")
	// ErrSlugTaken signals a slug unique-constraint violation; callers retry
	// with the next suffix.
	ErrSlugTaken = errors.New("slug already taken")
	// ErrLinkNotFound signals that the requested link does not exist.
	ErrLinkNotFound = errors.New("link not found")
	// ErrCategoryNotFound signals that the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateCategory signals a category name collision.
	ErrDuplicateCategory = errors.New("category name already taken")
	// ErrArticleNotFound signals that the requested article does not exist.
	ErrArticleNotFound = errors.New("article not found")
	// ErrArticleCategoryNotFound signals that the requested article category does not exist.
	ErrArticleCategoryNotFound = errors.New("article category not found")
	// ErrSettingNotFound signals that the setting key has never been written.
	ErrSettingNotFound = errors.New("setting not found")
)

const pgUniqueViolation = "23505"

// uniqueViolation extracts the violated constraint name when err is a
// Postgres unique-constraint error, so callers can tell which index fired.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
