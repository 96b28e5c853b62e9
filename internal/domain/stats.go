// Package domain contains the core data structures and domain logic for the application.
package domain

// RepoForks is one row of the most-forked ranking.
type RepoForks struct {
	Repo  string `json:"repo"`
	Count int    `json:"count"`
}

// RepoStars is one row of the most-starred ranking.
type RepoStars struct {
	Repo  string `json:"repo"`
	Stars int    `json:"stars"`
}

// LanguageCount is one row of the language popularity ranking.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Point returns the label and value plotted for this row.
func (r RepoForks) Point() (string, int) { return r.Repo, r.Count }

// Point returns the label and value plotted for this row.
func (r RepoStars) Point() (string, int) { return r.Repo, r.Stars }

// Point returns the label and value plotted for this row.
func (l LanguageCount) Point() (string, int) { return l.Language, l.Count }

// Summary holds aggregate numbers over a user's repositories.
type Summary struct {
	TotalStars  int     `json:"total_stars"`
	TotalForks  int     `json:"total_forks"`
	MeanStars   float64 `json:"mean_stars"`
	MedianStars float64 `json:"median_stars"`
}
