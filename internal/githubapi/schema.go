package githubapi

// Organisation is the typed snapshot of an organisation's metadata returned
// by GET /orgs/{organisation}. Only the fields consumed by audit checks are
// declared; TwoFactorRequirementEnabled stays a pointer because the field is
// omitted for callers without owner visibility.
type Organisation struct {
	Login                       string `json:"login"`
	MembersURL                  string `json:"members_url"`
	ReposURL                    string `json:"repos_url"`
	TwoFactorRequirementEnabled *bool  `json:"two_factor_requirement_enabled"`
}

// Member models an organisation member entry from the members listing.
type Member struct {
	Login     string `json:"login"`
	EventsURL string `json:"events_url"`
}

// Repository models a repository entry from the organisation repository listing.
type Repository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	BranchesURL   string `json:"branches_url"`
}

// Branch models a single branch with its protection flag.
type Branch struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
}

// Event models a public activity feed entry; only the type discriminator is needed.
type Event struct {
	Type string `json:"type"`
}

// PushEventTypeConstant is the activity feed discriminator for push events.
const PushEventTypeConstant = "PushEvent"

// AppInstallation models an installed GitHub App on an organisation.
type AppInstallation struct {
	AppSlug string `json:"app_slug"`
}

// installationListPage is the object-wrapped page body returned by
// GET /orgs/{organisation}/installations.
type installationListPage struct {
	TotalCount    int               `json:"total_count"`
	Installations []AppInstallation `json:"installations"`
}
