package models

// PublicUser is the profile visible to anyone.
type PublicUser struct {
	ID           string
	DisplayName  string
	URI          string
	Href         string
	Followers    Followers
	Images       []Image
	ExternalURLs map[string]string
}

// PrivateUser is the current user's own profile. Country, Email and Product depend on granted scopes.
type PrivateUser struct {
	PublicUser
	Country         string
	Email           string
	Product         string
	ExplicitContent ExplicitContent
}
