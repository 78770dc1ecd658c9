// Package safety chains together the feed-rate protections a cut applies
// on top of its base speeds-and-feeds: first-pass reduction, corner
// slowdown, and arc slowdown. Each protection is an independent
// FeedAdjuster; the Coordinator runs the enabled ones in order.
package safety

import "github.com/metafin/gpro/internal/model"

// FeedContext carries everything a FeedAdjuster needs to decide whether
// and how to adjust a feed rate.
type FeedContext struct {
	BaseFeed     float64
	PassNum      int // zero-indexed; 0 is the first pass
	IsArc        bool
	CornerFactor float64 // angle-severity factor from internal/corner; 1.0 = not a corner
}

// FeedAdjuster is one feed-rate safety protection in the chain.
type FeedAdjuster interface {
	AdjustFeed(feed float64, ctx FeedContext) float64
	Enabled() bool
}

// Coordinator applies a sequence of FeedAdjusters, skipping any that
// report themselves disabled.
type Coordinator struct {
	adjusters []FeedAdjuster
}

// Register appends an adjuster to the chain. Order matters: adjusters run
// in registration order, each seeing the previous one's output.
func (c *Coordinator) Register(a FeedAdjuster) {
	c.adjusters = append(c.adjusters, a)
}

// GetAdjustedFeed runs baseFeed through every enabled adjuster in order
// and returns the final feed rate.
func (c *Coordinator) GetAdjustedFeed(baseFeed float64, ctx FeedContext) float64 {
	feed := baseFeed
	for _, a := range c.adjusters {
		if a.Enabled() {
			feed = a.AdjustFeed(feed, ctx)
		}
	}
	return feed
}

// NewCoordinator builds a fully-configured Coordinator from process
// settings, registering FirstPassAdjuster, CornerSlowdownAdjuster, and
// ArcSlowdownAdjuster in that order.
func NewCoordinator(settings model.GenerationSettings) *Coordinator {
	c := &Coordinator{}
	c.Register(FirstPassAdjuster{Settings: settings})
	c.Register(CornerSlowdownAdjuster{Settings: settings})
	c.Register(ArcSlowdownAdjuster{Settings: settings})
	return c
}

// FirstPassAdjuster reduces feed on the first pass of a cut, when the
// tool's initial engagement with the material meets the most resistance.
type FirstPassAdjuster struct {
	Settings model.GenerationSettings
}

func (a FirstPassAdjuster) AdjustFeed(feed float64, ctx FeedContext) float64 {
	if ctx.PassNum == 0 {
		return feed * a.Settings.FirstPassFeedFactor
	}
	return feed
}

func (a FirstPassAdjuster) Enabled() bool {
	return a.Settings.FirstPassFeedFactor < 1.0
}

// CornerSlowdownAdjuster reduces feed at sharp corners. The angle-severity
// factor (ctx.CornerFactor) already reflects how sharp the corner is;
// this adjuster applies the process-wide corner feed factor on top of it
// exactly once — CornerFactor itself carries no pre-multiplication by the
// global factor.
type CornerSlowdownAdjuster struct {
	Settings model.GenerationSettings
}

func (a CornerSlowdownAdjuster) AdjustFeed(feed float64, ctx FeedContext) float64 {
	if ctx.CornerFactor < 1.0 {
		return feed * a.Settings.CornerFeedFactor * ctx.CornerFactor
	}
	return feed
}

func (a CornerSlowdownAdjuster) Enabled() bool {
	return a.Settings.CornerSlowdownEnabled
}

// ArcSlowdownAdjuster applies a flat feed reduction to every arc move
// (G02/G03), to account for the different cutting dynamics of curved
// toolpaths.
type ArcSlowdownAdjuster struct {
	Settings model.GenerationSettings
}

func (a ArcSlowdownAdjuster) AdjustFeed(feed float64, ctx FeedContext) float64 {
	if ctx.IsArc {
		return feed * a.Settings.ArcFeedFactor
	}
	return feed
}

func (a ArcSlowdownAdjuster) Enabled() bool {
	return a.Settings.ArcSlowdownEnabled
}
