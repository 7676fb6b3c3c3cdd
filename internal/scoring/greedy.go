package scoring

import "github.com/conceptmap/cmapscore/internal/models"

// greedyPair is one decision of the greedy matcher: a master link index and
// the student link it consumed, or -1 when left unmatched.
type greedyPair struct {
	master   int
	student  int
	score    int
	category models.MatchCategory
}

// greedyMatch assigns student links to master links one-to-one: for each
// master link in stable input order, the best-scoring still-unmatched
// student link is consumed. Ties between equally-scoring student links go to
// the first-seen one, which keeps results deterministic for a fixed input
// order. Master links whose best available score falls below minScore stay
// unmatched and consume nothing.
//
// This is a greedy approximation, not a globally optimal assignment; the
// McClure and Novak rubrics assume near-unique structural correspondence,
// which makes the approximation acceptable. LEA solves the exact problem
// instead.
func greedyMatch(masters, students []models.SimpleLink, minScore int) []greedyPair {
	pairs := make([]greedyPair, 0, len(masters))
	taken := make([]bool, len(students))

	for mi, m := range masters {
		best := -1
		bestScore := 0
		bestCat := models.CategoryNone
		for si, s := range students {
			if taken[si] {
				continue
			}
			score, cat := Similarity(m, s)
			if score > bestScore {
				best, bestScore, bestCat = si, score, cat
			}
		}
		if best < 0 || bestScore < minScore {
			pairs = append(pairs, greedyPair{master: mi, student: -1, category: models.CategoryNone})
			continue
		}
		taken[best] = true
		pairs = append(pairs, greedyPair{master: mi, student: best, score: bestScore, category: bestCat})
	}
	return pairs
}

// buildMatches converts greedy pairs into the MatchPair records of a result,
// appending the student links nothing consumed as unmatched entries so they
// still show up in the denominators downstream consumers recompute.
func buildMatches(masters, students []models.SimpleLink, pairs []greedyPair, points func(score int) int) []models.MatchPair {
	matches := make([]models.MatchPair, 0, len(masters)+len(students))
	used := make([]bool, len(students))

	for _, p := range pairs {
		mp := models.MatchPair{
			Master:   &masters[p.master],
			Score:    p.score,
			Category: p.category,
			Points:   points(p.score),
		}
		if p.student >= 0 {
			mp.Student = &students[p.student]
			used[p.student] = true
		}
		matches = append(matches, mp)
	}
	for si := range students {
		if !used[si] {
			matches = append(matches, models.MatchPair{
				Student:  &students[si],
				Category: models.CategoryNone,
			})
		}
	}
	return matches
}
