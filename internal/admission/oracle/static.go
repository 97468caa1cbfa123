package oracle

import (
	"context"
	"strings"
	"time"
)

// Static answers from a fixed surname table. It stands in for the credit
// scoring service in local runs.
type Static struct {
	defaultLimit int64
	limits       map[string]int64
}

// NewStatic builds a Static oracle. Surnames are matched case-insensitively;
// unknown surnames get defaultLimit.
func NewStatic(defaultLimit int64, limits map[string]int64) *Static {
	normalized := make(map[string]int64, len(limits))
	for name, limit := range limits {
		normalized[strings.ToLower(name)] = limit
	}
	return &Static{defaultLimit: defaultLimit, limits: normalized}
}

func (o *Static) CreditLimit(_ context.Context, lastName string, _ time.Time) (int64, error) {
	if limit, ok := o.limits[strings.ToLower(lastName)]; ok {
		return limit, nil
	}
	return o.defaultLimit, nil
}
