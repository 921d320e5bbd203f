package models

type FlashcardStat struct {
	TotalCards      int     `json:"total_cards"`
	TotalReviews    int     `json:"total_reviews"`
	CardsMastered   int     `json:"cards_mastered"`
	CardsStruggling int     `json:"cards_struggling"`
	CardsDue        int     `json:"cards_due"`
	CardsDueSoon    int     `json:"cards_due_soon"`
	OverallAccuracy float64 `json:"overall_accuracy"`
	AvgEase         float64 `json:"avg_ease"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
}

type FlashcardSubjectStat struct {
	SubjectID   string  `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	TotalCards  int     `json:"total_cards"`
	CardsDue    int     `json:"cards_due"`
	AvgEase     float64 `json:"avg_ease"`
	AvgAccuracy float64 `json:"avg_accuracy"`
}

type FlashcardTimeStat struct {
	AvgTimeSeconds    float64         `json:"avg_time_seconds"`
	MedianTimeSeconds float64         `json:"median_time_seconds"`
	FastestTime       float64         `json:"fastest_time"`
	SlowestTime       float64         `json:"slowest_time"`
	TimeByRating      map[int]float64 `json:"time_by_rating"`
}
