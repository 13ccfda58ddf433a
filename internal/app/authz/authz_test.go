package authz

import (
	"testing"

	"github.com/linktrove/linktrove/internal/app/model"
)

func TestCan_SelfServiceForAllRoles(t *testing.T) {
	for _, role := range []string{model.RoleUser, model.RoleAdmin, model.RoleSuperadmin} {
		for _, res := range []Resource{ResourceProfile, ResourceLinktree, ResourceLink} {
			if !Can(role, res, ActionUpdate) {
				t.Errorf("%s should manage %s", role, res)
			}
		}
	}
}

func TestCan_UserExcludedFromAdminSurface(t *testing.T) {
	blocked := []struct {
		resource Resource
		action   Action
	}{
		{ResourceCategory, ActionCreate},
		{ResourceArticleCategory, ActionCreate},
		{ResourceArticle, ActionCreate},
		{ResourceSettings, ActionUpdate},
		{ResourceUpload, ActionCreate},
		{ResourceDashboard, ActionRead},
		{ResourceUser, ActionRead},
	}
	for _, b := range blocked {
		if Can(model.RoleUser, b.resource, b.action) {
			t.Errorf("USER must not %s %s", b.action, b.resource)
		}
	}
}

func TestCan_AdminCmsButNotSuperadminSurface(t *testing.T) {
	if !Can(model.RoleAdmin, ResourceArticle, ActionDelete) {
		t.Error("ADMIN should delete articles")
	}
	if !Can(model.RoleAdmin, ResourceSettings, ActionUpdate) {
		t.Error("ADMIN should update settings")
	}
	if !Can(model.RoleAdmin, ResourceUser, ActionUpdate) {
		t.Error("ADMIN should update user accounts")
	}

	if Can(model.RoleAdmin, ResourceUser, ActionCreate) {
		t.Error("only SUPERADMIN creates accounts")
	}
	if Can(model.RoleAdmin, ResourceAnalytics, ActionRead) {
		t.Error("only SUPERADMIN reads analytics")
	}
	if Can(model.RoleAdmin, ResourceStorage, ActionDelete) {
		t.Error("only SUPERADMIN runs storage cleanup")
	}
}

func TestCan_SuperadminSurface(t *testing.T) {
	allowed := []struct {
		resource Resource
		action   Action
	}{
		{ResourceUser, ActionCreate},
		{ResourceUser, ActionDelete},
		{ResourceAnalytics, ActionRead},
		{ResourceStorage, ActionRead},
		{ResourceStorage, ActionDelete},
		{ResourceArticle, ActionDelete},
		{ResourceDashboard, ActionRead},
	}
	for _, a := range allowed {
		if !Can(model.RoleSuperadmin, a.resource, a.action) {
			t.Errorf("SUPERADMIN should %s %s", a.action, a.resource)
		}
	}
}

func TestCan_UnknownRole(t *testing.T) {
	if Can("INTERN", ResourceProfile, ActionRead) {
		t.Error("unknown roles get nothing")
	}
	if Can("", ResourceLink, ActionRead) {
		t.Error("empty role gets nothing")
	}
}
