package parallel

import "sync"

// JobKind tags a Job as either real work or a stop request.
type JobKind uint8

const (
	// JobWork carries a tile to render.
	JobWork JobKind = iota

	// JobStop tells the consuming worker to exit. Each worker consumes
	// exactly one and never forwards it.
	JobStop
)

// Job is one entry of the JobQueue: either Work(tile) or Stop.
type Job struct {
	Kind JobKind
	Tile Tile
}

// WorkJob wraps a tile in a Job.
func WorkJob(t Tile) Job {
	return Job{Kind: JobWork, Tile: t}
}

// StopJob returns the termination marker.
func StopJob() Job {
	return Job{Kind: JobStop}
}

// IsStop reports whether the job is a termination marker.
func (j Job) IsStop() bool {
	return j.Kind == JobStop
}

// JobQueue is an unbounded FIFO of jobs shared by the dynamic workers.
//
// Push and PushStop never block. Pop blocks until a job is available.
// Waiters always re-check the queue after waking, so a wakeup that races
// with another consumer is never mistaken for an available job.
//
// Thread safety: JobQueue is safe for concurrent use.
type JobQueue struct {
	mu   sync.Mutex
	cond *sync.Cond

	// jobs[head:] are the pending jobs.
	jobs []Job
	head int

	pushed int
	popped int
}

// NewJobQueue creates an empty queue with room for capacity jobs.
func NewJobQueue(capacity int) *JobQueue {
	q := &JobQueue{jobs: make([]Job, 0, max(capacity, 0))}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a tile and wakes one waiting consumer.
func (q *JobQueue) Push(t Tile) {
	q.mu.Lock()
	q.append(WorkJob(t))
	q.mu.Unlock()
	q.cond.Signal()
}

// PushStop appends n termination markers and wakes every waiting consumer.
func (q *JobQueue) PushStop(n int) {
	q.mu.Lock()
	for range n {
		q.append(StopJob())
	}
	q.mu.Unlock()
	q.cond.Broadcast()
}

// append adds a job. Caller must hold q.mu.
func (q *JobQueue) append(j Job) {
	// Reclaim the consumed prefix once it dominates the slice.
	if q.head > 0 && q.head >= len(q.jobs)/2 && len(q.jobs) == cap(q.jobs) {
		n := copy(q.jobs, q.jobs[q.head:])
		clear(q.jobs[n:])
		q.jobs = q.jobs[:n]
		q.head = 0
	}
	q.jobs = append(q.jobs, j)
	q.pushed++
}

// Pop removes and returns the oldest job, blocking while the queue is empty.
func (q *JobQueue) Pop() Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.jobs) {
		q.cond.Wait()
	}

	j := q.jobs[q.head]
	q.jobs[q.head] = Job{}
	q.head++
	q.popped++

	if q.head == len(q.jobs) {
		q.jobs = q.jobs[:0]
		q.head = 0
	}
	return j
}

// Len returns the number of pending jobs.
func (q *JobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs) - q.head
}

// Pushed returns the total number of jobs ever pushed.
func (q *JobQueue) Pushed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pushed
}

// Popped returns the total number of jobs ever popped.
func (q *JobQueue) Popped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popped
}
