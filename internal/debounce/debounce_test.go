package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestBurstCollapsesToTrailingCall(t *testing.T) {
	rec := &recorder{}
	debounced := Debounce(rec.record, 50*time.Millisecond)

	for _, q := range []string{"g", "go", "gol", "golang"} {
		debounced(q)
	}

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	// Give any spurious extra run time to fire, then check again.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"golang"}, rec.snapshot())
}

func TestSpacedCallsEachExecute(t *testing.T) {
	rec := &recorder{}
	debounced := Debounce(rec.record, 20*time.Millisecond)

	debounced("first")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	debounced("second")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestRepeatedCallsPostponeExecution(t *testing.T) {
	rec := &recorder{}
	debounced := Debounce(rec.record, 60*time.Millisecond)

	// Keep poking inside the quiet window; nothing may fire meanwhile.
	for i := 0; i < 4; i++ {
		debounced("poke")
		time.Sleep(20 * time.Millisecond)
		assert.Empty(t, rec.snapshot())
	}

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
}
