package presenter

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultToastDelay = 3 * time.Second

type Toast struct {
	ID      string
	Message string
	ShownAt time.Time
}

func ToastMessage(name string) string {
	return "✓ " + name + " added to list!"
}

type ToastSink interface {
	ShowToast(toast Toast)
	HideToast(id string)
}

// Toaster shows toasts on a sink and hides each one after a fixed delay.
// Pending dismissals are cancellable.
type Toaster struct {
	mu     sync.Mutex
	sink   ToastSink
	delay  time.Duration
	timers map[string]*time.Timer
	closed bool
}

func NewToaster(sink ToastSink, delay time.Duration) *Toaster {
	if delay <= 0 {
		delay = DefaultToastDelay
	}
	return &Toaster{
		sink:   sink,
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

func (t *Toaster) Show(name string) Toast {
	toast := Toast{
		ID:      uuid.NewString(),
		Message: ToastMessage(name),
		ShownAt: time.Now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return toast
	}

	// the sink sees the toast before its timer can fire
	t.sink.ShowToast(toast)
	t.timers[toast.ID] = time.AfterFunc(t.delay, func() {
		t.expire(toast.ID)
	})

	return toast
}

// Dismiss hides a toast early. It reports false if the toast already expired.
func (t *Toaster) Dismiss(id string) bool {
	t.mu.Lock()
	timer, ok := t.timers[id]
	if ok {
		timer.Stop()
		delete(t.timers, id)
	}
	t.mu.Unlock()

	if ok {
		t.sink.HideToast(id)
	}
	return ok
}

func (t *Toaster) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.timers)
}

// Close cancels every pending dismissal and hides the remaining toasts.
func (t *Toaster) Close() {
	t.mu.Lock()
	t.closed = true
	ids := make([]string, 0, len(t.timers))
	for id, timer := range t.timers {
		timer.Stop()
		ids = append(ids, id)
	}
	clear(t.timers)
	t.mu.Unlock()

	for _, id := range ids {
		t.sink.HideToast(id)
	}
}

func (t *Toaster) expire(id string) {
	t.mu.Lock()
	_, ok := t.timers[id]
	delete(t.timers, id)
	t.mu.Unlock()

	if ok {
		t.sink.HideToast(id)
	}
}

// ToastBoard is an in-memory sink listing the toasts currently on screen.
type ToastBoard struct {
	mu     sync.Mutex
	toasts []Toast
}

func NewToastBoard() *ToastBoard {
	return &ToastBoard{}
}

func (b *ToastBoard) ShowToast(toast Toast) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.toasts = append(b.toasts, toast)
}

func (b *ToastBoard) HideToast(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, toast := range b.toasts {
		if toast.ID == id {
			b.toasts = append(b.toasts[:i], b.toasts[i+1:]...)
			return
		}
	}
}

func (b *ToastBoard) Active() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Toast, len(b.toasts))
	copy(out, b.toasts)
	return out
}
