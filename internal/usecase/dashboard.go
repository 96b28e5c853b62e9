// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-dashboard/internal/domain"
	"github.com/naka-gawa/github-dashboard/internal/gateway"
)

// ErrEmptyLogin is returned when a lookup is requested without a username.
var ErrEmptyLogin = errors.New("please enter a username")

// NotFoundMessage is shown in place of the profile when the user does not exist.
const NotFoundMessage = "User Not Found."

// State is the lifecycle state of a single lookup.
type State int

// Lookup states. The zero value is StatePending.
const (
	StatePending State = iota
	StateFailed
	StateNotFound
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFailed:
		return "failed"
	case StateNotFound:
		return "not_found"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// MarshalText lets State appear by name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// View is everything the presentation layer needs to render one lookup.
// Only the fields relevant to State are populated.
type View struct {
	State     State                  `json:"state"`
	Login     string                 `json:"login"`
	Message   string                 `json:"message,omitempty"`
	User      *domain.User           `json:"user,omitempty"`
	Forks     []domain.RepoForks     `json:"most_forked,omitempty"`
	Stars     []domain.RepoStars     `json:"most_starred,omitempty"`
	Languages []domain.LanguageCount `json:"languages,omitempty"`
	Summary   domain.Summary         `json:"summary"`
}

// Dashboard is the use case that looks up a user and derives the chart data.
type Dashboard struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewDashboard creates a new Dashboard instance.
func NewDashboard(fetcher gateway.Fetcher, logger *log.Logger) *Dashboard {
	return &Dashboard{
		fetcher: fetcher,
		logger:  logger,
	}
}

// ValidateLogin trims login and rejects it when nothing is left.
func ValidateLogin(login string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return "", ErrEmptyLogin
	}
	return login, nil
}

// Lookup issues a single profile query for login and returns the resulting view.
// It never returns a pending view.
func (d *Dashboard) Lookup(ctx context.Context, login string) View {
	login, err := ValidateLogin(login)
	if err != nil {
		return View{State: StateFailed, Message: err.Error()}
	}
	view := View{State: StatePending, Login: login}

	d.logger.Debug("Usecase: Looking up user...", "login", login)
	user, err := d.fetcher.FetchUser(ctx, login)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		d.logger.Info("User not found", "login", login)
		view.State = StateNotFound
		view.Message = NotFoundMessage
		return view
	case err != nil:
		d.logger.Error("Lookup failed", "login", login, "err", err)
		view.State = StateFailed
		view.Message = err.Error()
		return view
	}

	view.State = StateSucceeded
	view.User = user
	view.Forks = MostForkedRepos(user.Repositories)
	view.Stars = MostStarredRepos(user.Repositories)
	view.Languages = PopularLanguages(user.Repositories)
	view.Summary = Summarize(user.Repositories)
	d.logger.Debug("Usecase: Lookup complete.", "login", login, "state", view.State)
	return view
}

// LookupMany looks up all logins concurrently. The views are returned in
// the order of logins; a failed lookup stays inside its view.
// The only error returned is the cancellation of ctx.
func (d *Dashboard) LookupMany(ctx context.Context, logins []string) ([]View, error) {
	views := make([]View, len(logins))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, login := range logins {
		eg.Go(func() error {
			views[i] = d.Lookup(egCtx, login)
			return egCtx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}
