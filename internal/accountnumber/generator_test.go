package accountnumber

import (
	"regexp"
	"sync"
	"testing"
)

var tokenPattern = regexp.MustCompile(`^[0-9A-Z]{18}$`)

func TestGenerateShape(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 100; i++ {
		token := g.Generate()
		if len(token) != Length {
			t.Fatalf("token %q has length %d, want %d", token, len(token), Length)
		}
		if !tokenPattern.MatchString(token) {
			t.Fatalf("token %q is not 18 uppercase alphanumeric characters", token)
		}
	}
}

func TestGenerateUniqueness(t *testing.T) {
	const n = 10000

	g := NewGenerator()
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		seen[g.Generate()] = struct{}{}
	}
	if len(seen) != n {
		t.Fatalf("generated %d tokens but only %d distinct", n, len(seen))
	}
}

func TestGenerateUniquenessConcurrent(t *testing.T) {
	const (
		workers   = 8
		perWorker = 1000
	)

	g := NewGenerator()
	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, g.Generate())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, token := range local {
				seen[token] = struct{}{}
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("generated %d tokens but only %d distinct", workers*perWorker, len(seen))
	}
}
