package null

import "github.com/CellarCordial/FTS-Render-sub002/hal"

// Queue executes submitted lists synchronously on the caller's goroutine
// and signals fences immediately, since there is no native queue to hand
// work off to.
type Queue struct {
	queueType hal.QueueType
}

func (q *Queue) Type() hal.QueueType { return q.queueType }

func (q *Queue) Submit(lists []hal.CommandList) error {
	for _, l := range lists {
		if l.QueueType() != q.queueType {
			return errMismatchedQueueType
		}
	}
	return nil
}

func (q *Queue) Signal(fence hal.Fence, value uint64) error {
	fence.(*Fence).signal(value)
	return nil
}

func (q *Queue) Wait(fence hal.Fence, value uint64) error {
	// Submit already ran synchronously, so by the time Wait is called
	// the fence has already reached any value Signal requested.
	return nil
}

func (q *Queue) WaitOnQueue(fence hal.Fence, value uint64) error {
	return nil
}
