package db

import "sort"

// DailyContribution is one calendar-day bucket (UTC, YYYY-MM-DD).
type DailyContribution struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ContributionStats is the per-translator statistics read model. All
// sub-aggregates are derived from one row set, so the total always equals the
// sum of any grouping.
type ContributionStats struct {
	Total              int64               `json:"total"`
	BySource           map[string]int64    `json:"by_source"`
	ByLanguage         map[string]int64    `json:"by_language"`
	DailyContributions []DailyContribution `json:"daily_contributions"`
	LanguagesCount     int                 `json:"languages_count"`
	LastContribution   *TranslationRecord  `json:"last_contribution"`
}

// BuildContributionStats aggregates one snapshot of a translator's
// contributions. rows must be ordered oldest first (TranslatorContributions
// guarantees it), so the final row is the most recent contribution.
func BuildContributionStats(rows []TranslationRecord) *ContributionStats {
	stats := &ContributionStats{
		BySource:           make(map[string]int64),
		ByLanguage:         make(map[string]int64),
		DailyContributions: make([]DailyContribution, 0, 8),
	}

	byDay := make(map[string]int64)
	for _, row := range rows {
		stats.Total++
		stats.BySource[row.Source]++
		stats.ByLanguage[row.Language]++
		byDay[row.Timestamp.UTC().Format("2006-01-02")]++
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		stats.DailyContributions = append(stats.DailyContributions, DailyContribution{
			Date:  day,
			Count: byDay[day],
		})
	}

	stats.LanguagesCount = len(stats.ByLanguage)
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		stats.LastContribution = &last
	}
	return stats
}
