package textures

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"lightlab/core"
	"lightlab/scene"
)

// result is one finished decode waiting to be applied on the frame thread.
type result struct {
	path   string
	tex    *scene.Texture
	onLoad func(*scene.Texture)
}

// Loader decodes image files on a worker pool and hands the results back to
// the frame thread through Poll. Callbacks never run on a worker goroutine,
// so they may touch scene state and GL freely.
type Loader struct {
	pool   worker.DynamicWorkerPool
	done   chan result
	nextID atomic.Int64

	// FlipY controls the row order of decoded textures. Defaults to true.
	FlipY bool

	mu       sync.Mutex
	cache    map[string]*scene.Texture
	inflight sync.WaitGroup
	failed   atomic.Int64
}

// NewLoader starts a loader backed by up to workers decode goroutines.
// Idle workers exit after a second.
func NewLoader(workers int) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		pool:  worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
		done:  make(chan result, 64),
		FlipY: true,
		cache: make(map[string]*scene.Texture),
	}
}

// Load queues path for decoding. onLoad runs from a later Poll call once
// the image is ready. On failure a warning is logged and onLoad never runs.
// A path that has already been decoded is served from the cache; the
// callback still goes through Poll.
func (l *Loader) Load(path string, onLoad func(*scene.Texture)) {
	l.inflight.Add(1)
	l.pool.SubmitTask(worker.Task{
		ID: int(l.nextID.Add(1)),
		Do: func() (any, error) {
			defer l.inflight.Done()

			tex, err := l.decode(path)
			if err != nil {
				l.failed.Add(1)
				core.Logger().Warn("texture load failed", "path", path, "err", err)
				return nil, err
			}
			l.done <- result{path: path, tex: tex, onLoad: onLoad}
			return tex, nil
		},
	})
}

func (l *Loader) decode(path string) (*scene.Texture, error) {
	l.mu.Lock()
	tex, ok := l.cache[path]
	l.mu.Unlock()
	if ok {
		return tex, nil
	}

	tex, err := DecodeFile(path, l.FlipY)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if cached, ok := l.cache[path]; ok {
		tex = cached
	} else {
		l.cache[path] = tex
	}
	l.mu.Unlock()
	return tex, nil
}

// Poll applies every finished load without blocking and returns how many
// callbacks ran. Call it once per frame from the frame thread.
func (l *Loader) Poll() int {
	n := 0
	for {
		select {
		case r := <-l.done:
			r.onLoad(r.tex)
			core.Logger().Debug("texture applied", "path", r.path)
			n++
		default:
			return n
		}
	}
}

// Wait blocks until every queued load has either failed or been handed to
// Poll. Results must still be drained with Poll; with more than the channel
// buffer outstanding, Wait and Poll have to run concurrently.
func (l *Loader) Wait() {
	l.inflight.Wait()
}

// Failed returns the number of loads that did not produce a texture.
func (l *Loader) Failed() int {
	return int(l.failed.Load())
}
