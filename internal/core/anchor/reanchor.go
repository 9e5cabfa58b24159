// Package anchor relocates a line inside an edited file by comparing the text
// that surrounded it when it was recorded against the file's current content.
package anchor

// Defaults used when no configuration overrides them.
const (
	DefaultRadius    = 2
	DefaultThreshold = 0.75
)

// Weights of each part of the context in a candidate's score. They sum to 1.
const (
	beforeWeight = 0.25
	targetWeight = 0.5
	afterWeight  = 0.25
)

// Match is a candidate line and the score its context reached.
type Match struct {
	Line  int
	Score float64
}

// Reanchorer finds the line of a file whose context best matches a recorded
// one. The zero value is not useful; use New.
type Reanchorer struct {
	Radius    int
	Threshold float64
}

// New returns a Reanchorer using the given context radius and minimum score.
func New(radius int, threshold float64) Reanchorer {
	return Reanchorer{Radius: radius, Threshold: threshold}
}

// Score weighs how closely candidate resembles recorded.
func (r Reanchorer) Score(recorded, candidate Context) float64 {
	return beforeWeight*SequenceSimilarity(candidate.Before, recorded.Before) +
		targetWeight*Similarity(candidate.Target, recorded.Target) +
		afterWeight*SequenceSimilarity(candidate.After, recorded.After)
}

// Find scans every line of lines in Explore order around start and returns
// the best match for recorded.
//
// The first candidate scoring exactly 1.0 is returned immediately. Otherwise
// the highest scoring candidate at or above the threshold wins, and among
// equal scores the one visited first (nearest to start) is kept. The boolean
// is false when no candidate reaches the threshold.
func (r Reanchorer) Find(recorded Context, lines []string, start int) (Match, bool) {
	var contenders []Match

	for i := range Explore(0, len(lines), start) {
		candidate, err := Extract(lines, i, r.Radius)
		if err != nil {
			continue
		}

		score := r.Score(recorded, candidate)
		if score == 1.0 {
			return Match{Line: i, Score: score}, true
		}
		if score >= r.Threshold {
			contenders = append(contenders, Match{Line: i, Score: score})
		}
	}

	if len(contenders) == 0 {
		return Match{}, false
	}

	best := contenders[0]
	for _, c := range contenders[1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	return best, true
}
