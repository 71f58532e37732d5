package match

import (
	"math"
	"strings"
)

// Vector maps a term to its weight
type Vector map[string]float64

// Vectorize builds L2-normalized TF-IDF vectors for a resume and a job posting.
//
// The corpus is exactly these two documents. Smoothed IDF,
// ln((1+N)/(1+df)) + 1 with N = 2, therefore takes one of two values:
// 1 for shared terms and 1+ln(3/2) for terms unique to one side.
func Vectorize(resumeNormalized, jobNormalized string) (resume, job Vector) {
	docs := [2][]string{strings.Fields(resumeNormalized), strings.Fields(jobNormalized)}

	var counts [2]map[string]int
	df := make(map[string]int)
	for i, tokens := range docs {
		counts[i] = make(map[string]int, len(tokens))
		for _, t := range tokens {
			if counts[i][t] == 0 {
				df[t]++
			}
			counts[i][t]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, d := range df {
		idf[term] = math.Log((1+n)/(1+float64(d))) + 1
	}

	var vectors [2]Vector
	for i := range docs {
		v := make(Vector, len(counts[i]))
		for term, tf := range counts[i] {
			v[term] = float64(tf) * idf[term]
		}
		vectors[i] = v.normalized()
	}
	return vectors[0], vectors[1]
}

// Norm returns the Euclidean length of v
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func (v Vector) normalized() Vector {
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	for term, w := range v {
		v[term] = w / norm
	}
	return v
}

// Cosine returns the cosine similarity of a and b, or 0 when either is empty
func Cosine(a, b Vector) float64 {
	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}

	// iterate the smaller vector
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	return dot / (normA * normB)
}

// Similarity scores two normalized texts as a percentage in [0, 100],
// rounded half-to-even to two decimal places
func Similarity(resumeNormalized, jobNormalized string) float64 {
	resume, job := Vectorize(resumeNormalized, jobNormalized)
	return ToPercent(Cosine(resume, job))
}

// ToPercent scales a cosine in [0, 1] to a two-decimal percentage
func ToPercent(cosine float64) float64 {
	if math.IsNaN(cosine) || cosine <= 0 {
		return 0
	}
	if cosine >= 1 {
		return 100
	}
	return math.RoundToEven(cosine*100*100) / 100
}
