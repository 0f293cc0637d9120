package remote

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/songiapp/songidb/pkg/types"
)

// Queue operation kinds.
const (
	OpDownload = "download"
	OpDelete   = "delete"
)

// Event states emitted on the queue's event channel.
const (
	EventStarted   = "started"
	EventDone      = "done"
	EventFailed    = "failed"
	EventCancelled = "cancelled"
)

// Event reports the progress of one queued operation.
type Event struct {
	ItemID      string
	Op          string
	DatabaseID  string
	Title       string
	State       string
	SongCount   int
	ArtistCount int
	Err         error
}

// task is one queued operation awaiting the worker.
type task struct {
	id   string
	op   string
	item types.CatalogItem
}

// Queue serializes downloads and deletions through a single worker so at
// most one destructive storage operation runs at a time. Pending items can
// be cancelled; the in-flight item cannot.
type Queue struct {
	client *Client
	store  Store
	logger *slog.Logger

	mu      sync.Mutex
	pending []task
	closed  bool

	wake   chan struct{}
	done   chan struct{}
	events chan Event
	wg     sync.WaitGroup
}

// NewQueue starts the worker goroutine and returns the queue.
func NewQueue(client *Client, store Store, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		client: client,
		store:  store,
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		events: make(chan Event, 64),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

// Events exposes progress events. The channel is buffered; events are
// dropped when no consumer keeps up.
func (q *Queue) Events() <-chan Event {
	return q.events
}

// EnqueueDownload queues a catalog item for download and returns the queue
// item id. Returns an empty id after Close.
func (q *Queue) EnqueueDownload(item types.CatalogItem) string {
	return q.enqueue(task{op: OpDownload, item: item})
}

// EnqueueDelete queues removal of an installed database.
func (q *Queue) EnqueueDelete(databaseID string) string {
	return q.enqueue(task{op: OpDelete, item: types.CatalogItem{ID: databaseID}})
}

func (q *Queue) enqueue(t task) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ""
	}

	t.id = newItemID()
	q.pending = append(q.pending, t)

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return t.id
}

// Cancel removes a pending item from the queue. Returns false when the item
// is unknown, finished, or already in flight. The cancelled event is emitted
// under the lock so a concurrent Close cannot close the event channel
// between the removal and the send.
func (q *Queue) Cancel(itemID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}

	for i, t := range q.pending {
		if t.id == itemID {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			q.emit(Event{
				ItemID:     t.id,
				Op:         t.op,
				DatabaseID: t.item.ID,
				Title:      t.item.Title,
				State:      EventCancelled,
			})
			return true
		}
	}
	return false
}

// Close stops the worker after the in-flight item finishes and closes the
// event channel. Remaining pending items are discarded.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.pending = nil
	q.mu.Unlock()

	close(q.done)
	q.wg.Wait()
	close(q.events)
}

func (q *Queue) run() {
	defer q.wg.Done()
	for {
		select {
		case <-q.done:
			return
		case <-q.wake:
			for {
				t, ok := q.pop()
				if !ok {
					break
				}
				q.process(t)

				select {
				case <-q.done:
					return
				default:
				}
			}
		}
	}
}

func (q *Queue) pop() (task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return task{}, false
	}
	t := q.pending[0]
	q.pending = q.pending[1:]
	return t, true
}

func (q *Queue) process(t task) {
	event := Event{
		ItemID:     t.id,
		Op:         t.op,
		DatabaseID: t.item.ID,
		Title:      t.item.Title,
	}
	event.State = EventStarted
	q.emit(event)

	ctx := context.Background()
	switch t.op {
	case OpDownload:
		parsed, err := q.client.Download(ctx, t.item, q.store)
		if err != nil {
			event.State = EventFailed
			event.Err = err
		} else {
			event.State = EventDone
			event.SongCount = len(parsed.Songs)
			event.ArtistCount = len(parsed.Artists)
		}
	case OpDelete:
		if err := q.store.DeleteDatabase(t.item.ID); err != nil {
			event.State = EventFailed
			event.Err = err
		} else {
			event.State = EventDone
		}
	}
	q.emit(event)
}

// emit sends without blocking; a full buffer drops the event.
func (q *Queue) emit(e Event) {
	select {
	case q.events <- e:
	default:
		q.logger.Warn("dropped queue event", "item", e.ItemID, "state", e.State)
	}
}

// newItemID generates a UUID v7 queue item id.
func newItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
