package domain

import (
	"errors"
	"time"
)

// ErrUserNotFound is returned when the platform has no user with the requested login.
var ErrUserNotFound = errors.New("user not found")

// Language is a language detected in a repository.
type Language struct {
	Name string `json:"name"`
}

// Repository is a single code project owned by a user.
// It is read-only once received from the gateway.
type Repository struct {
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	URL            string     `json:"url"`
	ForkCount      int        `json:"fork_count"`
	StargazerCount int        `json:"stargazer_count"`
	Languages      []Language `json:"languages"`
}

// User is the profile of a GitHub user together with their repositories.
type User struct {
	Login             string       `json:"login"`
	Name              string       `json:"name"`
	AvatarURL         string       `json:"avatar_url"`
	Bio               string       `json:"bio,omitempty"`
	URL               string       `json:"url"`
	TotalRepositories int          `json:"total_repositories"`
	Followers         int          `json:"followers"`
	Following         int          `json:"following"`
	Gists             int          `json:"gists"`
	Repositories      []Repository `json:"repositories"`
}

// DisplayName returns the user's name, falling back to the login.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// Rate is the quota of a single API resource.
type Rate struct {
	Resource  string    `json:"resource"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// RateLimit lists the quotas of the REST and GraphQL APIs.
type RateLimit struct {
	Core    Rate `json:"core"`
	GraphQL Rate `json:"graphql"`
}
