package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

type Manager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

// StageBar counts completed stages of a single run.
type StageBar struct {
	bar     *mpb.Bar
	enabled bool
	mu      sync.Mutex
	last    string
}

func NewManager(config Config) *Manager {
	if !config.Enabled {
		return &Manager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	return &Manager{
		container: container,
		enabled:   true,
	}
}

func (pm *Manager) NewStageBar(stages int, description string) *StageBar {
	if !pm.enabled || pm.container == nil {
		return &StageBar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	sb := &StageBar{enabled: true}
	sb.bar = pm.container.AddBar(int64(stages),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string { return sb.lastStage() }, decor.WCSyncSpace),
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncSpace), " ✓ "),
		),
	)
	return sb
}

// StageDone advances the bar by one stage.
func (sb *StageBar) StageDone(stage string) {
	if !sb.enabled || sb.bar == nil {
		return
	}
	sb.mu.Lock()
	sb.last = stage
	sb.mu.Unlock()
	sb.bar.Increment()
}

func (sb *StageBar) lastStage() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.last
}

func (sb *StageBar) Complete() {
	if sb.enabled && sb.bar != nil {
		sb.bar.SetTotal(sb.bar.Current(), true)
	}
}

// Abort stops the bar where it is, leaving it on screen.
func (sb *StageBar) Abort() {
	if sb.enabled && sb.bar != nil {
		sb.bar.Abort(false)
	}
}

func (pm *Manager) Wait() {
	if pm.enabled && pm.container != nil {
		pm.container.Wait()
	}
}
