package quality

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/logger"
)

// assumedFPS is reported before the first measurement window closes.
const assumedFPS = 60

// Options tunes the frame-rate ratchet.
type Options struct {
	FPSThreshold  float64
	Window        time.Duration
	HistorySize   int
	DegradeFactor float64
	StarFloor     int
	// ForceTier skips device classification when set.
	ForceTier *Tier
}

// DefaultOptions returns the stock ratchet settings.
func DefaultOptions() Options {
	return Options{
		FPSThreshold:  30,
		Window:        time.Second,
		HistorySize:   10,
		DegradeFactor: 0.7,
		StarFloor:     1000,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.FPSThreshold <= 0 {
		o.FPSThreshold = def.FPSThreshold
	}
	if o.Window <= 0 {
		o.Window = def.Window
	}
	if o.HistorySize < 1 {
		o.HistorySize = def.HistorySize
	}
	if o.DegradeFactor <= 0 || o.DegradeFactor >= 1 {
		o.DegradeFactor = def.DegradeFactor
	}
	if o.StarFloor < 0 {
		o.StarFloor = def.StarFloor
	}
	return o
}

// Controller owns the current Profile. It starts from the preset of the
// probed tier and only ever moves down until the next Reprobe.
type Controller struct {
	mu          sync.Mutex
	opts        Options
	device      Device
	tier        Tier
	profile     Profile
	history     []float64
	frames      int
	windowStart time.Time
	subs        map[int]func(Profile)
	nextSub     int
	log         *zap.Logger
}

// NewController classifies device and installs the matching preset.
func NewController(device Device, opts Options) *Controller {
	c := &Controller{
		opts: opts.withDefaults(),
		subs: make(map[int]func(Profile)),
		log:  logger.Named("quality"),
	}
	c.install(device)
	c.log.Info("quality profile selected",
		zap.Stringer("tier", c.tier),
		zap.Int("stars", c.profile.StarCount),
		zap.Int("cores", device.Cores),
		zap.Float64("memory_gb", device.MemoryGB),
	)
	return c
}

func (c *Controller) install(device Device) {
	c.device = device
	if c.opts.ForceTier != nil {
		c.tier = *c.opts.ForceTier
	} else {
		c.tier = Classify(device)
	}
	c.profile = Preset(c.tier)
	c.history = c.history[:0]
	c.frames = 0
	c.windowStart = time.Time{}
}

// Current returns the active profile.
func (c *Controller) Current() Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Tier returns the tier chosen by the last probe.
func (c *Controller) Tier() Tier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tier
}

// Device returns the signals from the last probe.
func (c *Controller) Device() Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device
}

// Subscribe registers fn to receive every profile change. Callbacks run on
// the goroutine that caused the change, after the controller lock is
// released. The returned func removes the subscription.
func (c *Controller) Subscribe(fn func(Profile)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Frame counts one rendered frame at now. When the measurement window has
// elapsed it closes the window and returns the measured fps with closed set.
func (c *Controller) Frame(now time.Time) (fps float64, closed bool) {
	c.mu.Lock()
	if c.windowStart.IsZero() {
		c.windowStart = now
		c.mu.Unlock()
		return 0, false
	}
	c.frames++
	elapsed := now.Sub(c.windowStart)
	if elapsed < c.opts.Window {
		c.mu.Unlock()
		return 0, false
	}
	fps = float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.windowStart = now
	changed, next, subs := c.recordLocked(fps)
	c.mu.Unlock()

	if changed {
		notify(subs, next)
	}
	return fps, true
}

// Sample pushes one already measured window, for renderers that count
// frames themselves.
func (c *Controller) Sample(fps float64) Profile {
	c.mu.Lock()
	changed, next, subs := c.recordLocked(fps)
	c.mu.Unlock()

	if changed {
		notify(subs, next)
	}
	return next
}

// recordLocked appends fps to the history and applies the ratchet. It returns
// the subscriber snapshot to notify when the profile changed.
func (c *Controller) recordLocked(fps float64) (bool, Profile, []func(Profile)) {
	c.history = append(c.history, fps)
	if over := len(c.history) - c.opts.HistorySize; over > 0 {
		c.history = slices.Delete(c.history, 0, over)
	}

	avg := c.averageLocked()
	if avg >= c.opts.FPSThreshold || c.profile.RenderQuality == LevelLow {
		return false, c.profile, nil
	}

	next := c.profile.Degrade(c.opts.DegradeFactor, c.opts.StarFloor)
	if next == c.profile {
		return false, c.profile, nil
	}
	c.log.Warn("frame rate below threshold, lowering quality",
		zap.Float64("avg_fps", avg),
		zap.Int("stars_from", c.profile.StarCount),
		zap.Int("stars_to", next.StarCount),
		zap.Stringer("particles", next.ParticleQuality),
	)
	c.profile = next
	return true, next, c.subscribersLocked()
}

func (c *Controller) subscribersLocked() []func(Profile) {
	subs := make([]func(Profile), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(Profile), p Profile) {
	for _, fn := range subs {
		fn(p)
	}
}

// AverageFPS returns the mean of the recorded windows.
func (c *Controller) AverageFPS() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.averageLocked()
}

func (c *Controller) averageLocked() float64 {
	if len(c.history) == 0 {
		return assumedFPS
	}
	var sum float64
	for _, v := range c.history {
		sum += v
	}
	return sum / float64(len(c.history))
}

// History returns a copy of the recorded fps windows, oldest first.
func (c *Controller) History() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.history)
}

// Reprobe reclassifies the device and resets to its preset. It is the only
// way quality goes back up.
func (c *Controller) Reprobe(device Device) Profile {
	c.mu.Lock()
	c.install(device)
	next := c.profile
	subs := c.subscribersLocked()
	tier := c.tier
	c.mu.Unlock()

	c.log.Info("device reprobed", zap.Stringer("tier", tier), zap.Int("stars", next.StarCount))
	notify(subs, next)
	return next
}
