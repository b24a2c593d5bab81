package permission

import (
	"fmt"
	"sort"

	internal "github.com/pradiptamal/crm-management/internal"
)

// The custom-role authoring shape is translated through a closed mapping
// table. Unknown modules or actions are rejected at save time and skipped at
// resolve time, never guessed at.

// ModuleReports gets legacy underscore aliases on top of the canonical names;
// older call sites still check reports_generate and reports_create.
const ModuleReports = "reports"

var knownModules = []string{
	"deals",
	"contracts",
	"sites",
	"companies",
	"contacts",
	"customers",
	"devices",
	"quotes",
	"relationships",
	"reports",
	"settings",
	"users",
}

// actionNames maps authoring action names to the canonical runtime suffix.
// "read" was renamed to "view" at runtime long ago; both authoring spellings
// land on view.
var actionNames = map[string]string{
	"read":     "view",
	"view":     "view",
	"write":    "write",
	"edit":     "edit",
	"delete":   "delete",
	"generate": "generate",
}

var moduleSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(knownModules))
	for _, name := range knownModules {
		m[name] = struct{}{}
	}
	return m
}()

// CatalogNames enumerates every canonical permission name the mapping table
// can produce. Used by the seeder and by admin wildcard sets.
func CatalogNames() []string {
	suffixes := map[string]struct{}{}
	for _, runtime := range actionNames {
		suffixes[runtime] = struct{}{}
	}

	var names []string
	for _, module := range knownModules {
		for suffix := range suffixes {
			names = append(names, module+"."+suffix)
		}
	}
	sort.Strings(names)
	return names
}

// ValidateMatrix rejects custom-role matrices referencing modules or actions
// outside the closed mapping table. Called when a custom role is saved.
func ValidateMatrix(m Matrix) error {
	for module, actions := range m {
		if _, ok := moduleSet[module]; !ok {
			return internal.NewValidationFieldError(
				"permissions",
				fmt.Sprintf("unknown module %q", module),
				internal.ErrCodeUnknownModule,
			)
		}
		for action := range actions {
			if _, ok := actionNames[action]; !ok {
				return internal.NewValidationFieldError(
					"permissions",
					fmt.Sprintf("unknown action %q for module %q", action, module),
					internal.ErrCodeUnknownAction,
				)
			}
		}
	}
	return nil
}

// TranslateMatrix converts the authoring shape into runtime permission names.
// Skipped entries (unknown module/action, or false grants) are returned so the
// caller can log them; translation itself never fails at resolve time.
func TranslateMatrix(m Matrix) (names []string, skipped []string) {
	for module, actions := range m {
		if _, ok := moduleSet[module]; !ok {
			skipped = append(skipped, module)
			continue
		}
		for action, allowed := range actions {
			if !allowed {
				continue
			}
			runtime, ok := actionNames[action]
			if !ok {
				skipped = append(skipped, module+"."+action)
				continue
			}

			names = append(names, module+"."+runtime)

			if module == ModuleReports {
				names = append(names, ModuleReports+"_"+runtime)
				if runtime == "generate" {
					names = append(names, ModuleReports+"_create")
				}
			}
		}
	}
	sort.Strings(names)
	return names, skipped
}
