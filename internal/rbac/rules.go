package rbac

const (
	PermCatalogRead     = "catalog:read"
	PermCatalogWrite    = "catalog:write"
	PermQuestionRead    = "question:read"
	PermQuizTake        = "quiz:take"
	PermQuizAnyUser     = "quiz:any-user"
	PermApplicationOwn  = "application:own"
	PermApplicationAll  = "application:all"
	PermHistoryViewAll  = "history:view-all"
	PermResumeManageAll = "resume:manage-all"
	PermEventsRead      = "events:read"
)

// RolePermissions is the default policy. Answer keys are only readable by
// admins through the question endpoints.
var RolePermissions = map[string][]string{
	"user": {
		PermCatalogRead,
		PermQuizTake,
		PermApplicationOwn,
	},
	"admin": {
		"*", // everything
	},
}
