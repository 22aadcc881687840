package imagepick

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"contentsmith/internal/model"
)

// The article illustrations themselves are sourced outside this pipeline;
// here we only pick a stable placeholder seed per slug and keep the
// attribution bookkeeping the site build expects.

const attributionSource = "picsum-seed"

// Seed derives a deterministic image seed from a slug. The same slug always
// maps to the same seed so reruns do not churn the attribution map.
func Seed(slug string) string {
	h := fnv.New32a()
	h.Write([]byte(slug))
	return fmt.Sprintf("%s-%08x", slug, h.Sum32())
}

// Pick returns the attribution record for a slug. Query is derived from the
// slug's leading words, mirroring how a human would search a stock library.
func Pick(slug string, now time.Time) model.Attribution {
	words := strings.Split(slug, "-")
	if len(words) > 3 {
		words = words[:3]
	}
	return model.Attribution{
		Source:    attributionSource,
		Seed:      Seed(slug),
		Query:     strings.Join(words, " "),
		FetchedAt: now.UTC().Format(time.RFC3339),
	}
}
