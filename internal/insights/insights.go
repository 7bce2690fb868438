package insights

import (
	"fmt"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/mood"
)

// lookback bounds the analysis window to the most recent entries
const lookback = 30

// worryWindow is how many trailing entries the rising-worry check inspects
const worryWindow = 7

const (
	noDataStatement = "No data yet — start a chat and insights will appear here."

	risingWorryStatement = "You seem to have more anxious entries recently. " +
		"Consider writing about what specifically causes anxiety — naming it can help."

	happinessTrendStatement = "Your happy days are trending up — nice progress! Keep noticing what helps."

	standingTip = "Tip: Try small micro-actions when stressed — short walk, " +
		"talk to a friend, or list one thing you solved today."
)

// Analyze summarizes a mood history into short advisory statements. The
// input is never mutated; the result is rebuilt on every call and depends
// only on the input, so repeated calls with the same sequence are identical.
func Analyze(moods []mood.Label) []string {
	if len(moods) == 0 {
		return []string{noDataStatement}
	}

	window := moods
	if len(window) > lookback {
		window = window[len(window)-lookback:]
	}

	statements := []string{dominantMood(window)}
	if s, ok := risingWorry(window); ok {
		statements = append(statements, s)
	}
	if s, ok := happinessTrend(window); ok {
		statements = append(statements, s)
	}
	return append(statements, standingTip)
}

// dominantMood reports the most frequent mood in the window. Ties resolve
// to whichever label attained the maximum count earliest in chronological
// scan order (stable mode).
func dominantMood(window []mood.Label) string {
	counts := make(map[mood.Label]int)
	top := window[0]
	topCount := 0
	for _, m := range window {
		counts[m]++
		if counts[m] > topCount {
			topCount = counts[m]
			top = m
		}
	}
	return fmt.Sprintf("Most frequent recent mood: %s (%d occurrences).", top, topCount)
}

// risingWorry flags a run of anxious entries in the trailing window: at
// least 3 entries, with Anxious appearing max(2, n/2) times or more.
func risingWorry(window []mood.Label) (string, bool) {
	last := window
	if len(last) > worryWindow {
		last = last[len(last)-worryWindow:]
	}
	if len(last) < 3 {
		return "", false
	}

	anxious := 0
	for _, m := range last {
		if m == mood.Anxious {
			anxious++
		}
	}

	threshold := len(last) / 2
	if threshold < 2 {
		threshold = 2
	}
	if anxious >= threshold {
		return risingWorryStatement, true
	}
	return "", false
}

// happinessTrend compares Happy counts between the older and newer halves
// of the window (floor split; the first half is the shorter one when the
// window length is odd). Needs at least 6 entries.
func happinessTrend(window []mood.Label) (string, bool) {
	if len(window) < 6 {
		return "", false
	}

	half := len(window) / 2
	if countHappy(window[half:]) > countHappy(window[:half]) {
		return happinessTrendStatement, true
	}
	return "", false
}

func countHappy(moods []mood.Label) int {
	n := 0
	for _, m := range moods {
		if m == mood.Happy {
			n++
		}
	}
	return n
}

// Counts tallies the whole history per label, backing the mood chart
func Counts(moods []mood.Label) map[mood.Label]int {
	counts := make(map[mood.Label]int)
	for _, m := range moods {
		counts[m]++
	}
	return counts
}
