package gfx

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadState is the progress of an AsyncTexture.
type LoadState int

const (
	// LoadPending: the placeholder pixel is bound, the image has not arrived.
	LoadPending LoadState = iota
	// LoadLoaded: the decoded image replaced the placeholder.
	LoadLoaded
	// LoadFailed: fetching or decoding failed; the placeholder stays bound.
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadLoaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	}
	return fmt.Sprintf("LoadState(%d)", int(s))
}

// AsyncTexture is a texture whose image is loaded in the background. The
// texture is valid for sampling from the start: it holds one opaque black
// pixel until the image is applied by TextureLoader.Poll.
type AsyncTexture struct {
	Texture Texture
	Unit    int
	Source  string

	state    LoadState
	err      error
	onLoaded func()
}

// State reports the load progress. It only changes inside Poll.
func (t *AsyncTexture) State() LoadState { return t.state }

// Err returns the failure reason once State is LoadFailed.
func (t *AsyncTexture) Err() error { return t.err }

// Fetcher opens an image source for reading.
type Fetcher func(source string) (io.ReadCloser, error)

// TextureLoader fetches images on a goroutine per load, decodes them on a
// bounded worker pool and uploads them on the goroutine that calls Poll,
// which must own the context.
//
// Loads have no timeout and cannot be cancelled: a source that never
// answers leaves its own texture pending with the placeholder bound. It
// holds no worker, so other loads proceed.
type TextureLoader struct {
	gl      GL
	fetch   Fetcher
	client  *http.Client
	workers int
	pool    worker.DynamicWorkerPool

	mu       sync.Mutex
	done     []loadResult
	nextID   int
	inFlight int
	closed   bool
}

type loadResult struct {
	tex *AsyncTexture
	img *image.NRGBA
	err error
}

// LoaderOption configures a TextureLoader.
type LoaderOption func(*TextureLoader)

// WithFetcher replaces the default source opener (HTTP(S) URLs, file://
// URLs and plain paths).
func WithFetcher(f Fetcher) LoaderOption {
	return func(l *TextureLoader) { l.fetch = f }
}

// WithHTTPClient sets the client used for http and https sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *TextureLoader) { l.client = c }
}

// WithWorkers sets how many decodes may run at once. Fetches are not
// limited.
func WithWorkers(n int) LoaderOption {
	return func(l *TextureLoader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// NewTextureLoader returns a loader issuing its GL calls through gl.
func NewTextureLoader(gl GL, opts ...LoaderOption) *TextureLoader {
	l := &TextureLoader{
		gl:      gl,
		client:  http.DefaultClient,
		workers: 4,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fetch == nil {
		l.fetch = l.open
	}
	// Created after options so WithWorkers applies.
	l.pool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	return l
}

// Load creates a texture at unit seeded with a single black pixel and starts
// loading source in the background. onLoaded, if non-nil, runs inside the
// Poll call that uploads the image; it is never called for a failed load.
//
// An error is returned only if the texture object cannot be created.
func (l *TextureLoader) Load(source string, unit int, onLoaded func()) (*AsyncTexture, error) {
	tex, err := newSampledTexture(l.gl, unit, "create texture")
	if err != nil {
		return nil, err
	}
	uploadPlaceholder(l.gl)

	at := &AsyncTexture{
		Texture:  tex,
		Unit:     unit,
		Source:   source,
		onLoaded: onLoaded,
	}

	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.inFlight++
	l.mu.Unlock()

	go l.run(id, at)
	return at, nil
}

// run fetches at.Source and hands the stream to the pool for decoding.
func (l *TextureLoader) run(id int, at *AsyncTexture) {
	rc, err := l.fetch(at.Source)
	if err != nil {
		l.finish(at, nil, fmt.Errorf("open %q: %w", at.Source, err))
		return
	}
	if l.isClosed() {
		rc.Close()
		return
	}
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer rc.Close()
			img, err := decodeImage(at.Source, rc)
			l.finish(at, img, err)
			return nil, err
		},
	})
}

func (l *TextureLoader) finish(at *AsyncTexture, img *image.NRGBA, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.done = append(l.done, loadResult{tex: at, img: img, err: err})
}

func (l *TextureLoader) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Close stops the decode workers. Loads still in flight are dropped and
// never settle; textures already created stay valid until deleted.
func (l *TextureLoader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.done = nil
	l.mu.Unlock()
	l.pool.Stop()
	l.pool.ClearTaskQueue()
}

// Poll applies every load that finished since the last call and returns how
// many were settled. Call it once per frame from the goroutine that owns
// the context.
func (l *TextureLoader) Poll() int {
	l.mu.Lock()
	done := l.done
	l.done = nil
	l.inFlight -= len(done)
	l.mu.Unlock()

	for _, r := range done {
		at := r.tex
		if r.err != nil {
			at.state = LoadFailed
			at.err = r.err
			Logger().Warn("texture load failed", "source", at.Source, "error", r.err)
			continue
		}
		BindTexture(l.gl, at.Texture, at.Unit)
		uploadImage(l.gl, r.img)
		at.state = LoadLoaded
		Logger().Info("texture bound", "source", at.Source, "width", r.img.Rect.Dx(), "height", r.img.Rect.Dy())
		if at.onLoaded != nil {
			at.onLoaded()
		}
	}
	return len(done)
}

// Pending returns the number of loads not yet settled by Poll.
func (l *TextureLoader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

func decodeImage(source string, r io.Reader) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", source, err)
	}
	return toNRGBA(img), nil
}

func (l *TextureLoader) open(source string) (io.ReadCloser, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path (a one-letter scheme is a Windows drive).
		return os.Open(source)
	}
	switch u.Scheme {
	case "http", "https":
		resp, err := l.client.Get(source)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return resp.Body, nil
	case "file":
		return os.Open(u.Path)
	}
	return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
}
