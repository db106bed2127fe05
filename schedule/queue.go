// This file is part of nhshield.
//
// nhshield is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// nhshield is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with nhshield.  If not, see <https://www.gnu.org/licenses/>.

// Package schedule queues regeneration work requested by parameter edits so
// that it can be run at a tick boundary of the host.
//
// Requests are Push()ed as they arise and executed by Drain(), which the host
// calls once per tick. Pushing a request that is already pending does not
// cause the work to happen twice. Requests pushed while the queue is draining
// are run by the next call to Drain().
package schedule

import (
	"slices"
	"sync"
)

// Request is a unit of work that can be pushed onto the Queue.
type Request int

// List of valid Request values.
const (
	HandMatrix Request = iota
	ScaleMatrix
	EquipChild
	EquipAdult
	ResetDefaults
)

func (r Request) String() string {
	switch r {
	case HandMatrix:
		return "hand matrix"
	case ScaleMatrix:
		return "scale matrix"
	case EquipChild:
		return "equip child"
	case EquipAdult:
		return "equip adult"
	case ResetDefaults:
		return "reset defaults"
	}
	return "unknown request"
}

// Queue of pending requests. The zero value is ready to use. Push() is safe
// to call from any goroutine.
type Queue struct {
	crit    sync.Mutex
	pending []Request
}

// Push request onto the queue. If the request is already pending it is moved
// to the back of the queue so that the most recent of two conflicting
// requests is run last.
func (q *Queue) Push(r Request) {
	q.crit.Lock()
	defer q.crit.Unlock()

	if i := slices.Index(q.pending, r); i >= 0 {
		q.pending = slices.Delete(q.pending, i, i+1)
	}
	q.pending = append(q.pending, r)
}

// More returns true if there are requests waiting to be drained.
func (q *Queue) More() bool {
	q.crit.Lock()
	defer q.crit.Unlock()
	return len(q.pending) > 0
}

// Pending returns a copy of the requests waiting to be drained, in the order
// they will be run.
func (q *Queue) Pending() []Request {
	q.crit.Lock()
	defer q.crit.Unlock()
	return slices.Clone(q.pending)
}

// Drain runs every pending request through the run function, in order. Only
// requests that were pending when Drain() was called are run.
//
// If run returns an error draining stops and the error is returned. The
// failed request is discarded but requests after it remain pending.
func (q *Queue) Drain(run func(Request) error) error {
	q.crit.Lock()
	batch := q.pending
	q.pending = nil
	q.crit.Unlock()

	for i, r := range batch {
		if err := run(r); err != nil {
			q.requeue(batch[i+1:])
			return err
		}
	}

	return nil
}

// requeue puts unrun requests in front of anything pushed during the drain.
func (q *Queue) requeue(unrun []Request) {
	if len(unrun) == 0 {
		return
	}

	q.crit.Lock()
	defer q.crit.Unlock()

	p := make([]Request, 0, len(unrun)+len(q.pending))
	for _, r := range unrun {
		if !slices.Contains(q.pending, r) {
			p = append(p, r)
		}
	}
	q.pending = append(p, q.pending...)
}
