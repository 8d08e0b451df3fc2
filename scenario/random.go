// This file synthesizes random workloads for runs without a scenario
// file.
package scenario

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/katalvlaran/distsim/site"
)

// Declared duration ranges for synthesized workloads. The shape
// follows the hand-written study cases: idle stretches are longer than
// critical sections, so contention stays sporadic.
const (
	// RandomSites is the site count of a synthesized scenario.
	RandomSites = 9

	randomSegmentsMin = 2
	randomSegmentsMax = 4

	randomIdleMin = 1 * time.Second
	randomIdleMax = 5 * time.Second

	randomCriticalMin = 500 * time.Millisecond
	randomCriticalMax = 2 * time.Second
)

// randomWorkload draws alternating idle / critical-section pairs.
func randomWorkload(rng *rand.Rand) []site.Instruction {
	segments := randomSegmentsMin + rng.Intn(randomSegmentsMax-randomSegmentsMin+1)
	out := make([]site.Instruction, 0, 2*segments)
	for i := 0; i < segments; i++ {
		out = append(out,
			site.Idle(randomBetween(rng, randomIdleMin, randomIdleMax)),
			site.Critical(randomBetween(rng, randomCriticalMin, randomCriticalMax)),
		)
	}

	return out
}

// randomBetween draws a uniform duration in [lo, hi].
func randomBetween(rng *rand.Rand, lo, hi time.Duration) time.Duration {
	return lo + time.Duration(rng.Int63n(int64(hi-lo)+1))
}

// RandomRicart synthesizes a nine-site fully connected workload.
// The same seed reproduces the same scenario.
func RandomRicart(seed int64) *RicartScenario {
	rng := rand.New(rand.NewSource(seed))
	out := &RicartScenario{
		Workloads: make(map[string][]site.Instruction, RandomSites),
		Order:     make([]string, 0, RandomSites),
	}
	for i := 0; i < RandomSites; i++ {
		name := fmt.Sprintf("site-%d", i)
		out.Workloads[name] = randomWorkload(rng)
		out.Order = append(out.Order, name)
	}

	return out
}

// RandomRaymond synthesizes a nine-node request tree: node-0 is the
// root and every later node hangs under a uniformly chosen earlier
// one.
func RandomRaymond(seed int64) *RaymondScenario {
	rng := rand.New(rand.NewSource(seed))
	out := &RaymondScenario{
		Root:      "node-0",
		Parents:   make(map[string]string, RandomSites-1),
		Workloads: make(map[string][]site.Instruction, RandomSites),
		Order:     make([]string, 0, RandomSites),
	}
	for i := 0; i < RandomSites; i++ {
		name := fmt.Sprintf("node-%d", i)
		out.Workloads[name] = randomWorkload(rng)
		out.Order = append(out.Order, name)
		if i > 0 {
			out.Parents[name] = fmt.Sprintf("node-%d", rng.Intn(i))
		}
	}

	return out
}
