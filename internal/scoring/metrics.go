package scoring

// Metrics derives precision, recall, and f-value from a matcher's
// true-positive count. Each algorithm supplies its own true-positive
// definition; the arithmetic is shared verbatim. All divisions are guarded:
// zero denominators yield zero, and f-value is zero when precision and
// recall are both zero.
func Metrics(truePositives, studentLinks, masterLinks int) (precision, recall, fValue float64) {
	if studentLinks > 0 {
		precision = float64(truePositives) / float64(studentLinks)
	}
	if masterLinks > 0 {
		recall = float64(truePositives) / float64(masterLinks)
	}
	if precision+recall > 0 {
		fValue = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, fValue
}
