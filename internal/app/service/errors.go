package service

import "errors"

var (
	// ErrInvalidCredentials signals a failed login or refresh.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden signals the caller's role does not permit the operation
	// even though the route-level gate passed (e.g. an admin touching
	// another admin's account).
	ErrForbidden = errors.New("operation not permitted for this role")
	// ErrNotOwner signals the target exists but belongs to someone else.
	// Presented to callers as not-found so ownership is not probeable.
	ErrNotOwner = errors.New("resource not owned by caller")
	// ErrCategoryInUse blocks deletion of a category still referenced by links.
	ErrCategoryInUse = errors.New("category is referenced by existing links")
	// ErrArticleCategoryInUse blocks deletion of an article category still referenced.
	ErrArticleCategoryInUse = errors.New("article category is referenced by existing articles")
	// ErrSlugExhausted is returned when no free slug was found within the
	// retry budget.
	ErrSlugExhausted = errors.New("could not allocate a unique slug")
	// ErrInvalidSettingValue signals a setting write whose value does not
	// parse as the declared type.
	ErrInvalidSettingValue = errors.New("setting value does not match its type")
)
