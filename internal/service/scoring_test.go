package service

import (
	"math"
	"testing"

	"recruitment-buddy/internal/domain"
)

func TestNormalizeScores_EqualValuesReturnsHalf(t *testing.T) {
	for _, v := range []float64{0, 3, 7.5, 10} {
		got := NormalizeScores(domain.RawScores{Analytical: v, Creative: v, Social: v, Technical: v})
		for i, n := range got.Values() {
			if n != 0.5 {
				t.Fatalf("value %v: expected 0.5 at %d, got %v", v, i, n)
			}
		}
	}
}

func TestNormalizeScores_MinMaxWithinSubmission(t *testing.T) {
	got := NormalizeScores(domain.RawScores{Analytical: 8, Creative: 3, Social: 9, Technical: 6})
	want := [4]float64{5.0 / 6.0, 0, 1, 0.5}
	for i, n := range got.Values() {
		if math.Abs(n-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], n)
		}
		if n < 0 || n > 1 {
			t.Fatalf("index %d out of [0,1]: %v", i, n)
		}
	}
}

func TestClassifyPersonality_Example(t *testing.T) {
	got := ClassifyPersonality(domain.RawScores{Analytical: 8, Creative: 3, Social: 9, Technical: 6})
	if got.Code != "ESTJ" {
		t.Fatalf("expected ESTJ, got %s", got.Code)
	}
	if math.Abs(got.Scores.TF-0.7) > 1e-9 || math.Abs(got.Scores.JP-0.45) > 1e-9 {
		t.Fatalf("unexpected axes: %+v", got.Scores)
	}
}

func TestClassifyPersonality_BoundaryResolvesHigh(t *testing.T) {
	got := ClassifyPersonality(domain.RawScores{Analytical: 5, Creative: 5, Social: 5, Technical: 5})
	if got.Code != "ENTP" {
		t.Fatalf("expected 0.5 on every axis to resolve to ENTP, got %s", got.Code)
	}

	got = ClassifyPersonality(domain.RawScores{Social: 5})
	if got.Code[0] != 'E' {
		t.Fatalf("expected social=5 to give E, got %s", got.Code)
	}
}

func TestClassifyPersonality_AlwaysValidCode(t *testing.T) {
	steps := []float64{0, 2.5, 4.9, 5, 7.5, 10}
	for _, a := range steps {
		for _, c := range steps {
			for _, s := range steps {
				for _, tech := range steps {
					got := ClassifyPersonality(domain.RawScores{Analytical: a, Creative: c, Social: s, Technical: tech})
					if !domain.IsValidTypeCode(got.Code) {
						t.Fatalf("invalid code %q for %v %v %v %v", got.Code, a, c, s, tech)
					}
				}
			}
		}
	}
}
