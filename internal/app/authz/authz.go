// Package authz is the single source of truth for role-based access.
// Handlers and services ask Can(role, resource, action) instead of embedding
// their own role comparisons.
package authz

import "github.com/linktrove/linktrove/internal/app/model"

// Resource identifies a guarded part of the platform.
type Resource string

const (
	ResourceProfile         Resource = "profile"
	ResourceLinktree        Resource = "linktree"
	ResourceLink            Resource = "link"
	ResourceCategory        Resource = "category"
	ResourceArticleCategory Resource = "article_category"
	ResourceArticle         Resource = "article"
	ResourceUser            Resource = "user"
	ResourceSettings        Resource = "settings"
	ResourceUpload          Resource = "upload"
	ResourceDashboard       Resource = "dashboard"
	ResourceAnalytics       Resource = "analytics"
	ResourceStorage         Resource = "storage"
)

// Action is what the caller wants to do with the resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type capability struct {
	role     string
	resource Resource
	action   Action
}

var grants = buildGrants()

func buildGrants() map[capability]struct{} {
	type rule struct {
		roles     []string
		resources []Resource
		actions   []Action
	}

	all := []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}
	admins := []string{model.RoleAdmin, model.RoleSuperadmin}

	rules := []rule{
		// Every authenticated role manages its own profile, linktree and links.
		{
			roles:     []string{model.RoleUser, model.RoleAdmin, model.RoleSuperadmin},
			resources: []Resource{ResourceProfile, ResourceLinktree, ResourceLink},
			actions:   all,
		},
		// Admins run the CMS side of the platform.
		{
			roles:     admins,
			resources: []Resource{ResourceCategory, ResourceArticleCategory, ResourceArticle, ResourceSettings},
			actions:   all,
		},
		{
			roles:     admins,
			resources: []Resource{ResourceUpload},
			actions:   []Action{ActionCreate},
		},
		{
			roles:     admins,
			resources: []Resource{ResourceDashboard},
			actions:   []Action{ActionRead},
		},
		// Admins list and update USER accounts; the service layer enforces
		// that the target account actually holds the USER role.
		{
			roles:     admins,
			resources: []Resource{ResourceUser},
			actions:   []Action{ActionRead, ActionUpdate},
		},
		// Superadmin-only surface.
		{
			roles:     []string{model.RoleSuperadmin},
			resources: []Resource{ResourceUser},
			actions:   []Action{ActionCreate, ActionDelete},
		},
		{
			roles:     []string{model.RoleSuperadmin},
			resources: []Resource{ResourceAnalytics},
			actions:   []Action{ActionRead},
		},
		{
			roles:     []string{model.RoleSuperadmin},
			resources: []Resource{ResourceStorage},
			actions:   []Action{ActionRead, ActionDelete},
		},
	}

	grants := make(map[capability]struct{})
	for _, r := range rules {
		for _, role := range r.roles {
			for _, res := range r.resources {
				for _, act := range r.actions {
					grants[capability{role, res, act}] = struct{}{}
				}
			}
		}
	}
	return grants
}

// Can reports whether role may perform action on resource.
func Can(role string, resource Resource, action Action) bool {
	_, ok := grants[capability{role, resource, action}]
	return ok
}
