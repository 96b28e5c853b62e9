package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// TopN is the maximum length of every ranking.
const TopN = 5

// MostForkedRepos returns the TopN repositories by fork count, descending.
// Repositories with equal counts keep their input order.
func MostForkedRepos(repos []domain.Repository) []domain.RepoForks {
	ranked := make([]domain.RepoForks, 0, len(repos))
	for _, repo := range repos {
		ranked = append(ranked, domain.RepoForks{Repo: repo.Name, Count: repo.ForkCount})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return truncate(ranked)
}

// MostStarredRepos returns the TopN repositories by stargazer count, descending.
// Repositories with equal counts keep their input order.
func MostStarredRepos(repos []domain.Repository) []domain.RepoStars {
	ranked := make([]domain.RepoStars, 0, len(repos))
	for _, repo := range repos {
		ranked = append(ranked, domain.RepoStars{Repo: repo.Name, Stars: repo.StargazerCount})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Stars > ranked[j].Stars
	})
	return truncate(ranked)
}

// PopularLanguages counts how many times each language is listed across repos
// and returns the TopN, descending, ties in first-seen order.
//
// Every language edge counts, so a repository listing a language twice adds two.
func PopularLanguages(repos []domain.Repository) []domain.LanguageCount {
	index := make(map[string]int)
	ranked := make([]domain.LanguageCount, 0)
	for _, repo := range repos {
		for _, lang := range repo.Languages {
			i, ok := index[lang.Name]
			if !ok {
				i = len(ranked)
				index[lang.Name] = i
				ranked = append(ranked, domain.LanguageCount{Language: lang.Name})
			}
			ranked[i].Count++
		}
	}
	if len(ranked) == 0 {
		return ranked
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return truncate(ranked)
}

// Summarize totals stars and forks and computes the mean and median star count.
func Summarize(repos []domain.Repository) domain.Summary {
	var summary domain.Summary
	if len(repos) == 0 {
		return summary
	}
	starData := make(stats.Float64Data, 0, len(repos))
	for _, repo := range repos {
		summary.TotalStars += repo.StargazerCount
		summary.TotalForks += repo.ForkCount
		starData = append(starData, float64(repo.StargazerCount))
	}
	// Errors only occur on empty input, which is handled above.
	summary.MeanStars, _ = stats.Mean(starData)
	summary.MedianStars, _ = stats.Median(starData)
	return summary
}

func truncate[T any](ranked []T) []T {
	if len(ranked) > TopN {
		return ranked[:TopN]
	}
	return ranked
}
