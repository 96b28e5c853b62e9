package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        log.New(io.Discard),
	}

	return gateway, server
}

const userResponse = `{"data":{"user":{
	"login":"octocat","name":"The Octocat","avatarUrl":"https://avatars.example/octocat","bio":"cat","url":"https://github.com/octocat",
	"repositories":{"totalCount":2,"nodes":[
		{"name":"hello-world","description":"first","url":"https://github.com/octocat/hello-world","forkCount":12,"stargazerCount":40,
		 "languages":{"edges":[{"node":{"name":"Go"}},{"node":{"name":"Shell"}}]}},
		{"name":"spoon-knife","description":null,"url":"https://github.com/octocat/spoon-knife","forkCount":3,"stargazerCount":7,
		 "languages":{"edges":[]}}
	]},
	"followers":{"totalCount":100},"following":{"totalCount":9},"gists":{"totalCount":8}
}}}`

func TestGitHubGateway_FetchUser(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		status         int
		expectedUser   *domain.User
		expectNotFound bool
		expectedErrMsg string
	}{
		{
			name:         "happy path - decodes profile and repositories",
			responseBody: userResponse,
			status:       http.StatusOK,
			expectedUser: &domain.User{
				Login:             "octocat",
				Name:              "The Octocat",
				AvatarURL:         "https://avatars.example/octocat",
				Bio:               "cat",
				URL:               "https://github.com/octocat",
				TotalRepositories: 2,
				Followers:         100,
				Following:         9,
				Gists:             8,
				Repositories: []domain.Repository{
					{
						Name:           "hello-world",
						Description:    "first",
						URL:            "https://github.com/octocat/hello-world",
						ForkCount:      12,
						StargazerCount: 40,
						Languages:      []domain.Language{{Name: "Go"}, {Name: "Shell"}},
					},
					{
						Name:           "spoon-knife",
						URL:            "https://github.com/octocat/spoon-knife",
						ForkCount:      3,
						StargazerCount: 7,
						Languages:      []domain.Language{},
					},
				},
			},
		},
		{
			name:           "not found - GitHub cannot resolve the login",
			responseBody:   `{"errors":[{"type":"NOT_FOUND","message":"Could not resolve to a User with the login of 'ghost'."}]}`,
			status:         http.StatusOK,
			expectNotFound: true,
		},
		{
			name:           "error case - GraphQL returns an error",
			responseBody:   `{"errors":[{"message":"Something went wrong"}]}`,
			status:         http.StatusOK,
			expectedErrMsg: "failed to execute GraphQL query for user",
		},
		{
			name:           "error case - server fails",
			responseBody:   `{"message":"Internal Server Error"}`,
			status:         http.StatusInternalServerError,
			expectedErrMsg: "failed to execute GraphQL query for user",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "user(login: $login)")
				assert.Contains(t, string(body), "octocat")

				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			user, err := gateway.FetchUser(context.Background(), "octocat")

			switch {
			case tc.expectNotFound:
				assert.True(t, errors.Is(err, domain.ErrUserNotFound))
				assert.Nil(t, user)
			case tc.expectedErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				assert.False(t, errors.Is(err, domain.ErrUserNotFound))
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expectedUser, user)
			}
		})
	}
}

func TestGitHubGateway_FetchUser_NullUser(t *testing.T) {
	gateway, server := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"user":null}}`)
	}))
	defer server.Close()

	_, err := gateway.FetchUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGitHubGateway_FetchRateLimit(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - reads core and graphql quotas",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.String(), "/rate_limit")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"resources":{"core":{"limit":5000,"remaining":4999,"reset":1372700873},"graphql":{"limit":5000,"remaining":4990,"reset":1372700873}}}`)
			},
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to get rate limits with REST API",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			limits, err := gateway.FetchRateLimit(context.Background())
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "core", limits.Core.Resource)
			assert.Equal(t, 5000, limits.Core.Limit)
			assert.Equal(t, 4999, limits.Core.Remaining)
			assert.Equal(t, 4990, limits.GraphQL.Remaining)
			assert.Equal(t, int64(1372700873), limits.Core.Reset.Unix())
		})
	}
}
