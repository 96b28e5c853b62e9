// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/gregjones/httpcache"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// notFoundMessage is the prefix GitHub uses in GraphQL errors for unknown logins.
const notFoundMessage = "Could not resolve to a User"

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchUser(ctx context.Context, login string) (*domain.User, error)
	FetchRateLimit(ctx context.Context) (*domain.RateLimit, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

type repositoryNode struct {
	Name           string
	Description    string
	URL            string `graphql:"url"`
	ForkCount      int
	StargazerCount int
	Languages      struct {
		Edges []struct {
			Node struct {
				Name string
			}
		}
	} `graphql:"languages(first: 5)"`
}

// userQuery fetches the profile, the first page of repositories and the social counters in one round trip.
type userQuery struct {
	User struct {
		Login        string
		Name         string
		AvatarURL    string `graphql:"avatarUrl"`
		Bio          string
		URL          string `graphql:"url"`
		Repositories struct {
			TotalCount int
			Nodes      []repositoryNode
		} `graphql:"repositories(first: 100)"`
		Followers struct {
			TotalCount int
		}
		Following struct {
			TotalCount int
		}
		Gists struct {
			TotalCount int
		}
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// Every request carries token as a bearer credential. Profiles are kept in an
// in-memory cache for DefaultCacheTTL.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	gateway := &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}
	return NewCachingFetcher(gateway, httpcache.NewMemoryCache(), DefaultCacheTTL, logger), nil
}

// FetchUser runs the profile query for login.
// It returns domain.ErrUserNotFound when GitHub knows no such user.
func (g *GitHubGateway) FetchUser(ctx context.Context, login string) (*domain.User, error) {
	g.logger.Debug("Fetching user profile", "login", login)
	variables := map[string]interface{}{"login": githubv4.String(login)}

	var q userQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		if strings.Contains(err.Error(), notFoundMessage) {
			return nil, fmt.Errorf("%s: %w", login, domain.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to execute GraphQL query for user: %w", err)
	}
	if q.User.Login == "" {
		return nil, fmt.Errorf("%s: %w", login, domain.ErrUserNotFound)
	}

	user := &domain.User{
		Login:             q.User.Login,
		Name:              q.User.Name,
		AvatarURL:         q.User.AvatarURL,
		Bio:               q.User.Bio,
		URL:               q.User.URL,
		TotalRepositories: q.User.Repositories.TotalCount,
		Followers:         q.User.Followers.TotalCount,
		Following:         q.User.Following.TotalCount,
		Gists:             q.User.Gists.TotalCount,
		Repositories:      make([]domain.Repository, 0, len(q.User.Repositories.Nodes)),
	}
	for _, node := range q.User.Repositories.Nodes {
		repo := domain.Repository{
			Name:           node.Name,
			Description:    node.Description,
			URL:            node.URL,
			ForkCount:      node.ForkCount,
			StargazerCount: node.StargazerCount,
			Languages:      make([]domain.Language, 0, len(node.Languages.Edges)),
		}
		for _, edge := range node.Languages.Edges {
			repo.Languages = append(repo.Languages, domain.Language{Name: edge.Node.Name})
		}
		user.Repositories = append(user.Repositories, repo)
	}
	g.logger.Debug("Completed fetching user profile", "login", user.Login, "repositories", len(user.Repositories))
	return user, nil
}

// FetchRateLimit reports the remaining quota of the REST and GraphQL APIs.
func (g *GitHubGateway) FetchRateLimit(ctx context.Context) (*domain.RateLimit, error) {
	g.logger.Debug("Fetching rate limits using REST API...")
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limits with REST API: %w", err)
	}
	if limits == nil {
		return nil, errors.New("rate limit response is empty")
	}
	return &domain.RateLimit{
		Core:    toRate("core", limits.Core),
		GraphQL: toRate("graphql", limits.GraphQL),
	}, nil
}

func toRate(resource string, r *github.Rate) domain.Rate {
	rate := domain.Rate{Resource: resource}
	if r == nil {
		return rate
	}
	rate.Limit = r.Limit
	rate.Remaining = r.Remaining
	rate.Reset = r.Reset.Time
	return rate
}
