package loader

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/boxdrop/engine/model"
)

// Executor runs load jobs off the frame goroutine.
type Executor interface {
	// Submit schedules fn to run. It must not block on fn's completion.
	//
	// Parameters:
	//   - id: a job identifier for diagnostics
	//   - fn: the job
	Submit(id int, fn func())
}

// poolExecutor runs jobs on a worker.DynamicWorkerPool.
type poolExecutor struct {
	pool worker.DynamicWorkerPool
}

// NewPoolExecutor creates an Executor backed by a dynamic worker pool.
//
// Parameters:
//   - workers: the maximum number of concurrent loads
//   - queue: the task queue capacity
//   - idle: how long an idle worker lives before exiting
//
// Returns:
//   - Executor: the pool-backed executor
func NewPoolExecutor(workers, queue int, idle time.Duration) Executor {
	return &poolExecutor{pool: worker.NewDynamicWorkerPool(workers, queue, idle)}
}

func (e *poolExecutor) Submit(id int, fn func()) {
	e.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			fn()
			return nil, nil
		},
	})
}

// InlineExecutor runs each job synchronously inside Submit. Completions are still
// deferred until Poll, so callers observe the same ordering as with a pool.
type InlineExecutor struct{}

// Submit runs fn immediately.
func (InlineExecutor) Submit(_ int, fn func()) {
	fn()
}

// completion is a finished job waiting to be delivered by Poll.
type completion struct {
	path   string
	value  any
	err    error
	notify func(any, error)
}

// asyncLoader is the implementation of the AsyncLoader interface.
type asyncLoader struct {
	loader   Loader
	executor Executor

	nextID  atomic.Int64
	pending atomic.Int64

	mu   sync.Mutex
	done []completion
}

// AsyncLoader runs asset loads on an Executor and hands their results back on the
// goroutine that calls Poll, so callbacks may mutate frame-owned state without
// locking. Loads are one-shot; a failed load is reported once and never retried.
type AsyncLoader interface {
	// LoadModel loads a model through the underlying Loader in the background.
	//
	// Parameters:
	//   - path: the model file path
	//   - done: called from Poll with the model or an *AssetLoadError
	LoadModel(path string, done func(model.Model, error))

	// Go runs an arbitrary asset load in the background. Errors returned by load are
	// wrapped in an *AssetLoadError for path.
	//
	// Parameters:
	//   - path: the asset path, used in errors and logs
	//   - load: the load function, run on the executor
	//   - done: called from Poll with load's results
	Go(path string, load func() (any, error), done func(any, error))

	// Poll delivers every completion that has arrived since the previous call, in
	// arrival order.
	//
	// Returns:
	//   - int: the number of callbacks invoked
	Poll() int

	// Pending returns the number of submitted loads not yet delivered by Poll.
	//
	// Returns:
	//   - int: the pending count
	Pending() int

	// Loader returns the synchronous loader used for model loads.
	//
	// Returns:
	//   - Loader: the underlying loader
	Loader() Loader
}

var _ AsyncLoader = &asyncLoader{}

// NewAsyncLoader creates an AsyncLoader with the given options applied. Without
// options it loads glTF models on a small worker pool.
//
// Parameters:
//   - options: a variadic list of AsyncLoaderBuilderOption functions
//
// Returns:
//   - AsyncLoader: the new async loader
func NewAsyncLoader(options ...AsyncLoaderBuilderOption) AsyncLoader {
	a := &asyncLoader{}
	for _, opt := range options {
		opt(a)
	}
	if a.loader == nil {
		a.loader = NewLoader(BackendTypeGLTF)
	}
	if a.executor == nil {
		a.executor = NewPoolExecutor(2, 16, time.Second)
	}
	return a
}

func (a *asyncLoader) Loader() Loader {
	return a.loader
}

func (a *asyncLoader) LoadModel(path string, done func(model.Model, error)) {
	a.Go(path, func() (any, error) {
		return a.loader.Load(path)
	}, func(v any, err error) {
		m, _ := v.(model.Model)
		done(m, err)
	})
}

func (a *asyncLoader) Go(path string, load func() (any, error), done func(any, error)) {
	id := int(a.nextID.Add(1))
	a.pending.Add(1)

	a.executor.Submit(id, func() {
		v, err := safeLoad(load)
		if err != nil {
			log.Printf("[Loader] %s failed: %v", path, err)
		}

		a.mu.Lock()
		a.done = append(a.done, completion{
			path:   path,
			value:  v,
			err:    asAssetLoadError(path, err),
			notify: done,
		})
		a.mu.Unlock()
	})
}

func (a *asyncLoader) Poll() int {
	a.mu.Lock()
	batch := a.done
	a.done = nil
	a.mu.Unlock()

	for _, c := range batch {
		a.pending.Add(-1)
		if c.notify != nil {
			c.notify(c.value, c.err)
		}
	}
	return len(batch)
}

func (a *asyncLoader) Pending() int {
	return int(a.pending.Load())
}

// safeLoad converts a panic inside a load job into an error so a corrupt asset
// cannot take down a pool worker.
func safeLoad(load func() (any, error)) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, panicError{r}
		}
	}()
	return load()
}

type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("panic during load: %v", p.value)
}
