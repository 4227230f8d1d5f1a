package params

import "testing"

func TestGetIsDeterministicAndCached(t *testing.T) {
	p1, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	p2, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("Get returned distinct instances across calls; singleton not cached")
	}
}

func TestGDoesNotEqualH(t *testing.T) {
	p, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.G.Equal(p.H) {
		t.Fatalf("G and H must not be equal")
	}
}

func TestHashToCurveIsDeterministic(t *testing.T) {
	a, err := hashToCurve(hashToCurveDomain, GeneratorHSeed)
	if err != nil {
		t.Fatalf("hashToCurve: %v", err)
	}
	b, err := hashToCurve(hashToCurveDomain, GeneratorHSeed)
	if err != nil {
		t.Fatalf("hashToCurve: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("hashToCurve is not deterministic for the same domain/seed")
	}
}

func TestHashToCurveIsSeedSensitive(t *testing.T) {
	a, err := hashToCurve(hashToCurveDomain, GeneratorHSeed)
	if err != nil {
		t.Fatalf("hashToCurve: %v", err)
	}
	b, err := hashToCurve(hashToCurveDomain, GeneratorHSeed+"-other")
	if err != nil {
		t.Fatalf("hashToCurve: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("hashToCurve produced the same point for different seeds")
	}
}
