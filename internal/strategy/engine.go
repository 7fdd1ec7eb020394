package strategy

import (
	"sort"

	"CryptoTracker/internal/model"
)

const (
	BaseConfidence = 50
	MinConfidence  = 5
	MaxConfidence  = 95

	// TopN is the number of recommendations Rank keeps.
	TopN = 10
)

// Adjustment is the effect a single rule has on the running verdict.
type Adjustment struct {
	// Confidence is added to the running score, or replaces it when Override is set.
	Confidence int
	// Reason is appended to the reasoning; with Override it becomes the only reason.
	Reason string
	// Action replaces the current action when non-empty.
	Action model.Action
	// TargetFactor sets the target to price*TargetFactor when non-zero.
	TargetFactor float64
	Override     bool
}

// Rule inspects a snapshot and reports whether it fires.
type Rule func(snap model.AssetSnapshot) (Adjustment, bool)

// Rules are applied in order; later rules may clobber earlier ones.
var Rules = []Rule{
	scoreMomentum,
	scoreVolume,
	scoreMarketCap,
	scoreIdentity,
}

type verdict struct {
	confidence int
	action     model.Action
	target     float64
	reasoning  []string
}

func (v *verdict) apply(adj Adjustment, price float64) {
	if adj.Override {
		v.confidence = adj.Confidence
		v.reasoning = v.reasoning[:0]
	} else {
		v.confidence += adj.Confidence
	}
	if adj.Reason != "" {
		v.reasoning = append(v.reasoning, adj.Reason)
	}
	if adj.Action != "" {
		v.action = adj.Action
	}
	if adj.TargetFactor != 0 {
		v.target = price * adj.TargetFactor
	}
}

// Score evaluates one snapshot. It returns false when the snapshot carries
// no usable price.
func Score(snap model.AssetSnapshot) (model.Recommendation, bool) {
	if snap.Price <= 0 {
		return model.Recommendation{}, false
	}

	v := verdict{
		confidence: BaseConfidence,
		action:     model.ActionHold,
		target:     snap.Price,
		reasoning:  make([]string, 0, len(Rules)),
	}
	for _, rule := range Rules {
		if adj, ok := rule(snap); ok {
			v.apply(adj, snap.Price)
		}
	}

	return model.Recommendation{
		Symbol:       snap.Symbol,
		Name:         snap.Name,
		Action:       v.action,
		Confidence:   clamp(v.confidence, MinConfidence, MaxConfidence),
		CurrentPrice: snap.Price,
		TargetPrice:  v.target,
		Reasoning:    v.reasoning,
	}, true
}

// Rank scores every snapshot, drops the unpriced ones, and returns the TopN
// by descending confidence. Ties keep their input order.
func Rank(snaps []model.AssetSnapshot) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(snaps))
	for _, s := range snaps {
		if rec, ok := Score(s); ok {
			recs = append(recs, rec)
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	if len(recs) > TopN {
		recs = recs[:TopN]
	}
	return recs
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
