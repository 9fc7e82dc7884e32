package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// ScanlineTask represents a single image row to render
type ScanlineTask struct {
	Row int
}

// ScanlineResult contains the result from rendering a scanline
type ScanlineResult struct {
	Row      int
	RaysCast int64
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual scanline rendering tasks
type Worker struct {
	ID          int
	camera      *Camera
	world       geometry.Hittable
	framebuffer *Framebuffer
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(camera *Camera, world geometry.Hittable, fb *Framebuffer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan ScanlineTask, numWorkers),
		resultQueue: make(chan ScanlineResult, fb.Height), // Buffer for every row so workers never block
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			camera:      camera,
			world:       world,
			framebuffer: fb,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a scanline task, giving up if ctx is cancelled first
func (wp *WorkerPool) SubmitTask(ctx context.Context, task ScanlineTask) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.taskQueue <- task:
		return nil
	}
}

// GetResult retrieves a completed scanline result
func (wp *WorkerPool) GetResult() (ScanlineResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Rows never overlap, so writing straight into the shared framebuffer is safe
		sampler := w.camera.scanlineSampler(task.Row)
		rays := w.camera.renderScanline(task.Row, w.world, w.framebuffer, sampler)

		w.resultQueue <- ScanlineResult{
			Row:      task.Row,
			RaysCast: rays,
		}
	}
}
