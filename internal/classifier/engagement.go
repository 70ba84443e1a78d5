package classifier

import (
	"math"

	"github.com/jonesrussell/leadscout/internal/domain"
)

// Engagement status labels, derived from average views alone.
const (
	StatusInsufficientData = "insufficient_data"
	StatusTargetMatch      = "target_match"
	StatusAcceptable       = "acceptable"
	StatusBorderline       = "borderline"
	StatusLowEngagement    = "low_engagement"
)

// Engagement bands. Views are primary for short-form content; likes and
// comments are secondary and quality signals respectively.
const (
	maxSamplePosts = 10

	viewsExcellent  = 5000
	viewsGood       = 1000
	viewsAcceptable = 500
	viewsPoor       = 200

	likesExcellent  = 500
	likesGood       = 100
	likesAcceptable = 50

	commentsEngaged = 10
	commentsSome    = 5

	consistencyHigh = 0.7
	consistencyMid  = 0.5
)

// EngagementResult summarizes recent-post engagement. Score is the bonus
// added to a qualified lead; Status is an independent triage label.
type EngagementResult struct {
	Score       int     `json:"score"`
	Status      string  `json:"status"`
	AvgViews    float64 `json:"avg_views"`
	AvgLikes    float64 `json:"avg_likes"`
	AvgComments float64 `json:"avg_comments"`
	Consistency float64 `json:"consistency"`
	PostCount   int     `json:"post_count"`
}

// AnalyzeEngagement scores up to the 10 most recent posts, favoring stable
// mid-tier reach over viral outliers. Each metric contributes only its
// single highest band; the four metric bonuses sum. Fewer than minPosts
// posts yields a zero result rather than a guess from partial data.
func AnalyzeEngagement(posts []domain.Post, minPosts int) EngagementResult {
	if len(posts) < minPosts {
		return EngagementResult{Status: StatusInsufficientData, PostCount: len(posts)}
	}

	recent := posts
	if len(recent) > maxSamplePosts {
		recent = recent[:maxSamplePosts]
	}

	var sumViews, sumLikes, sumComments int
	views := make([]float64, len(recent))
	for i, p := range recent {
		sumViews += p.Views
		sumLikes += p.Likes
		sumComments += p.Comments
		views[i] = float64(p.Views)
	}

	n := float64(len(recent))
	avgViews := float64(sumViews) / n
	avgLikes := float64(sumLikes) / n
	avgComments := float64(sumComments) / n

	consistency := viewConsistency(views, avgViews)

	score := 0

	switch {
	case avgViews >= viewsExcellent:
		score += 15
	case avgViews >= viewsGood:
		score += 10
	case avgViews >= viewsAcceptable:
		score += 5
	case avgViews >= viewsPoor:
		score += 2
	}

	switch {
	case avgLikes >= likesExcellent:
		score += 10
	case avgLikes >= likesGood:
		score += 5
	case avgLikes >= likesAcceptable:
		score += 2
	}

	switch {
	case avgComments >= commentsEngaged:
		score += 5
	case avgComments >= commentsSome:
		score += 2
	}

	switch {
	case consistency >= consistencyHigh:
		score += 5
	case consistency >= consistencyMid:
		score += 2
	}

	return EngagementResult{
		Score:       score,
		Status:      statusFromViews(avgViews),
		AvgViews:    avgViews,
		AvgLikes:    avgLikes,
		AvgComments: avgComments,
		Consistency: consistency,
		PostCount:   len(recent),
	}
}

// viewConsistency maps the coefficient of variation of view counts to
// [0,1]: 1 - cv/2, clamped. A single post cannot measure variance and
// yields 0; identical counts yield 1.
func viewConsistency(views []float64, mean float64) float64 {
	if mean <= 0 || len(views) < 2 {
		return 0
	}

	var sumSq float64
	for _, v := range views {
		d := v - mean
		sumSq += d * d
	}
	stdev := math.Sqrt(sumSq / float64(len(views)))

	cv := stdev / mean
	consistency := 1 - cv/2
	if consistency < 0 {
		return 0
	}
	if consistency > 1 {
		return 1
	}
	return consistency
}

func statusFromViews(avgViews float64) string {
	switch {
	case avgViews >= viewsGood:
		return StatusTargetMatch
	case avgViews >= viewsAcceptable:
		return StatusAcceptable
	case avgViews >= viewsPoor:
		return StatusBorderline
	default:
		return StatusLowEngagement
	}
}
