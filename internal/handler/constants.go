package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixReorder is the suffix for reorder routes.
	RouteSuffixReorder = "/reorder"
	// RouteSuffixToggle is the suffix for toggle routes.
	RouteSuffixToggle = "/toggle"
	// RouteSuffixDelete is the suffix for delete routes.
	RouteSuffixDelete = "/delete"
	// RouteSuffixVersions is the suffix for version history routes.
	RouteSuffixVersions = "/versions"
	// RouteSuffixRestore is the restore route pattern.
	RouteSuffixRestore = "/versions/{version}/restore"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteMenu is the menu admin route.
	RouteMenu = "/menu"
	// RouteArticles is the articles admin route.
	RouteArticles = "/articles"
	// RouteUsers is the users admin route.
	RouteUsers = "/users"
	// RouteSettings is the settings admin route.
	RouteSettings = "/settings"
	// RouteEvents is the events admin route.
	RouteEvents = "/events"

	// RouteMenuID is the menu ID route pattern.
	RouteMenuID = RouteMenu + RouteParamID
	// RouteArticlesID is the articles ID route pattern.
	RouteArticlesID = RouteArticles + RouteParamID
	// RouteUsersID is the users ID route pattern.
	RouteUsersID = RouteUsers + RouteParamID
)

const (
	redirectAdmin            = "/admin"
	redirectAdminMenu        = redirectAdmin + RouteMenu
	redirectAdminMenuNew     = redirectAdminMenu + RouteSuffixNew
	redirectAdminArticles    = redirectAdmin + RouteArticles
	redirectAdminArticlesNew = redirectAdminArticles + RouteSuffixNew
	redirectAdminUsers       = redirectAdmin + RouteUsers
	redirectAdminUsersNew    = redirectAdminUsers + RouteSuffixNew
	redirectAdminSettings    = redirectAdmin + RouteSettings
	redirectLogin            = RouteLogin

	redirectAdminMenuID         = redirectAdminMenu + "/%d"
	redirectAdminArticlesID     = redirectAdminArticles + "/%d"
	redirectAdminUsersID        = redirectAdminUsers + "/%d"
	redirectAdminArticlesIDVers = redirectAdminArticlesID + RouteSuffixVersions
)
