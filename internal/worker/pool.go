// worker/pool.go
package worker

// Task produces one result; the pool knows nothing about what it runs.
type Task[T any] func() T

type Result[T any] struct {
	TaskID string
	Output T
}

// Pool fans tasks out over a fixed number of goroutines. Results arrive on
// Results in completion order, not submission order.
type Pool[T any] struct {
	tasks   chan taskWrapper[T]
	results chan Result[T]
}

type taskWrapper[T any] struct {
	id string
	fn Task[T]
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	p := &Pool[T]{
		tasks:   make(chan taskWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	for task := range p.tasks {
		output := task.fn()
		p.results <- Result[T]{
			TaskID: task.id,
			Output: output,
		}
	}
}

func (p *Pool[T]) Submit(id string, fn Task[T]) {
	p.tasks <- taskWrapper[T]{id: id, fn: fn}
}

// Close stops accepting tasks; workers drain what was already submitted.
func (p *Pool[T]) Close() {
	close(p.tasks)
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}
