package platform_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/LISSConsulting/reactea"
	"github.com/LISSConsulting/reactea/platform"
)

type counterMsg int

const (
	incr counterMsg = iota
	decr
)

func counterUpdate(msg counterMsg, m int) (int, tea.Cmd[counterMsg]) {
	switch msg {
	case incr:
		return m + 1, tea.None[counterMsg]()
	case decr:
		return m - 1, tea.None[counterMsg]()
	default:
		return m, tea.None[counterMsg]()
	}
}

func drainN[T any](t *testing.T, ch <-chan T, n int, timeout time.Duration) []T {
	t.Helper()
	var got []T
	deadline := time.After(timeout)
	for len(got) < n {
		select {
		case v, ok := <-ch:
			if !ok {
				t.Fatalf("model stream closed early after %d values", len(got))
			}
			got = append(got, v)
		case <-deadline:
			t.Fatalf("timed out waiting for %d values, got %d: %v", n, len(got), got)
		}
	}
	return got
}

func TestCounterScenario(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt := platform.Program(ctx,
		func() (int, tea.Cmd[counterMsg]) { return 0, tea.None[counterMsg]() },
		counterUpdate,
		func(int) tea.Sub[counterMsg] { return tea.NoneSub[counterMsg]() },
	)

	models := rt.Model()
	got := drainN(t, models, 1, time.Second)
	if got[0] != 0 {
		t.Fatalf("expected initial model 0, got %v", got)
	}

	rt.Dispatch(incr)
	rt.Dispatch(incr)
	rt.Dispatch(decr)

	got = drainN(t, models, 3, time.Second)
	if got[len(got)-1] != 1 {
		t.Fatalf("expected final model 1 after +1+1-1, got %v", got)
	}
}

func TestInitialCommandRunsBeforeAnyDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt := platform.Program(ctx,
		func() (int, tea.Cmd[counterMsg]) { return 0, tea.Of(incr) },
		counterUpdate,
		func(int) tea.Sub[counterMsg] { return tea.NoneSub[counterMsg]() },
	)

	models := rt.Model()
	got := drainN(t, models, 2, time.Second)
	if got[0] != 0 {
		t.Fatalf("expected initial model 0, got %v", got)
	}
	if got[1] != 1 {
		t.Fatalf("expected model 1 after the initial command's message, got %v", got)
	}
}

func TestBatchDeliversAllMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt := platform.Program(ctx,
		func() (int, tea.Cmd[counterMsg]) {
			return 0, tea.Batch(tea.Of(incr), tea.Of(incr), tea.Of(incr))
		},
		counterUpdate,
		func(int) tea.Sub[counterMsg] { return tea.NoneSub[counterMsg]() },
	)

	models := rt.Model()
	got := drainN(t, models, 4, 2*time.Second)
	if got[len(got)-1] != 3 {
		t.Fatalf("expected final model 3 after batch of three increments, got %v", got)
	}
}

type switchModel struct {
	active int
}

type switchMsg struct {
	from int
}

func TestSubscriptionSwitching(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var activeSubs []int
	var disposed []int

	rt := platform.Program(ctx,
		func() (switchModel, tea.Cmd[switchMsg]) { return switchModel{active: 1}, tea.None[switchMsg]() },
		func(msg switchMsg, m switchModel) (switchModel, tea.Cmd[switchMsg]) {
			return switchModel{active: m.active + 1}, tea.None[switchMsg]()
		},
		func(m switchModel) tea.Sub[switchMsg] {
			id := m.active
			return tea.NewSub(func(ctx context.Context, emit func(switchMsg)) error {
				mu.Lock()
				activeSubs = append(activeSubs, id)
				mu.Unlock()
				<-ctx.Done()
				mu.Lock()
				disposed = append(disposed, id)
				mu.Unlock()
				return nil
			})
		},
	)

	models := rt.Model()
	drainN(t, models, 1, time.Second)

	rt.Dispatch(switchMsg{})
	drainN(t, models, 1, time.Second)

	// The test's own model channel is independent of the subscription loop,
	// so seeing the second model does not mean the switch has happened yet.
	// Wait for the first Sub to be disposed and the second to be activated.
	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		n, a := len(disposed), len(activeSubs)
		mu.Unlock()
		if n >= 1 && a >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the first subscription to be disposed")
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(activeSubs) < 2 {
		t.Fatalf("expected at least 2 subscriptions activated, got %v", activeSubs)
	}
	if activeSubs[0] != 1 {
		t.Errorf("expected first active subscription for model 1, got %v", activeSubs)
	}
	if disposed[0] != 1 {
		t.Errorf("expected subscription for model 1 to be disposed first, got %v", disposed)
	}
}

func TestShutdownReleasesSubscriptionCallbacks(t *testing.T) {
	activated := make(chan struct{})
	released := make(chan struct{})

	rt := platform.Program(context.Background(),
		func() (int, tea.Cmd[counterMsg]) { return 0, tea.None[counterMsg]() },
		counterUpdate,
		func(int) tea.Sub[counterMsg] {
			return tea.NewSub(func(ctx context.Context, emit func(counterMsg)) error {
				close(activated)
				<-ctx.Done()
				close(released)
				return nil
			})
		},
	)

	// The initial subscription activates asynchronously; shut down only once
	// it is running, so there is an active subscription to release.
	select {
	case <-activated:
	case <-time.After(time.Second):
		t.Fatal("expected the initial subscription to activate")
	}

	rt.Shutdown()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("expected the active subscription's disposer to run on shutdown")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	rt := platform.Program(context.Background(),
		func() (int, tea.Cmd[counterMsg]) { return 0, tea.None[counterMsg]() },
		counterUpdate,
		func(int) tea.Sub[counterMsg] { return tea.NoneSub[counterMsg]() },
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		rt.Shutdown()
		rt.Shutdown()
		rt.Shutdown()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown should be safe to call multiple times")
	}
}

func TestDispatchAfterShutdownIsNoop(t *testing.T) {
	rt := platform.Program(context.Background(),
		func() (int, tea.Cmd[counterMsg]) { return 0, tea.None[counterMsg]() },
		counterUpdate,
		func(int) tea.Sub[counterMsg] { return tea.NoneSub[counterMsg]() },
	)

	rt.Shutdown()
	// Must not panic, block, or deadlock on a closed queue.
	rt.Dispatch(incr)
	rt.Dispatch(decr)
}

func TestReactivityEverySubscriberSeesEveryDistinctWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt := platform.Program(ctx,
		func() (int, tea.Cmd[counterMsg]) { return 0, tea.None[counterMsg]() },
		counterUpdate,
		func(int) tea.Sub[counterMsg] { return tea.NoneSub[counterMsg]() },
	)

	var wg sync.WaitGroup
	results := make([][]int, 3)
	for i := 0; i < 3; i++ {
		i := i
		ch := rt.Model()
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = drainN(t, ch, 4, 2*time.Second)
		}()
	}

	// Let every subscriber register before writes start. The dispatches below
	// are back to back; each subscriber has its own unbounded mailbox, so no
	// distinct write is coalesced even for a subscriber that reads slowly.
	time.Sleep(20 * time.Millisecond)
	rt.Dispatch(incr)
	rt.Dispatch(incr)
	rt.Dispatch(incr)

	wg.Wait()
	for i, got := range results {
		if got[len(got)-1] != 3 {
			t.Errorf("subscriber %d: expected final model 3, got %v", i, got)
		}
	}
}

func TestSingleConsumerObservesEachMessageOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	seen := map[counterMsg]int{}

	rt := platform.Program(ctx,
		func() (int, tea.Cmd[counterMsg]) { return 0, tea.None[counterMsg]() },
		func(msg counterMsg, m int) (int, tea.Cmd[counterMsg]) {
			mu.Lock()
			seen[msg]++
			mu.Unlock()
			return counterUpdate(msg, m)
		},
		func(int) tea.Sub[counterMsg] { return tea.NoneSub[counterMsg]() },
	)

	models := rt.Model()
	drainN(t, models, 1, time.Second)
	rt.Dispatch(incr)
	rt.Dispatch(incr)
	drainN(t, models, 2, time.Second)

	mu.Lock()
	defer mu.Unlock()
	if seen[incr] != 2 {
		t.Errorf("expected incr processed exactly twice, got %d", seen[incr])
	}
}

func TestErrReportsSubscriptionFailure(t *testing.T) {
	wantErr := errors.New("subscription exploded")
	rt := platform.Program(context.Background(),
		func() (int, tea.Cmd[counterMsg]) { return 0, tea.None[counterMsg]() },
		counterUpdate,
		func(int) tea.Sub[counterMsg] {
			return tea.NewSub(func(ctx context.Context, emit func(counterMsg)) error {
				return wantErr
			})
		},
	)

	select {
	case err := <-rt.Err():
		if !errors.Is(err, wantErr) {
			t.Errorf("got %v, want an error wrapping %v", err, wantErr)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the subscription error to be reported")
	}
}

func TestProgramWithFlagsSeedsModelFromFlags(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := platform.ProgramWithFlags(ctx,
		func(flags int) (int, tea.Cmd[counterMsg]) { return flags, tea.None[counterMsg]() },
		counterUpdate,
		func(int) tea.Sub[counterMsg] { return tea.NoneSub[counterMsg]() },
	)

	rt := start(42)
	models := rt.Model()
	got := drainN(t, models, 1, time.Second)
	if got[0] != 42 {
		t.Fatalf("expected the initial model to come from flags (42), got %v", got)
	}

	rt.Dispatch(incr)
	got = drainN(t, models, 1, time.Second)
	if got[0] != 43 {
		t.Fatalf("expected dispatch to still drive the runtime normally, got %v", got)
	}
}

func TestProgramWithFlagsProducesIndependentRuntimesPerCall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := platform.ProgramWithFlags(ctx,
		func(flags int) (int, tea.Cmd[counterMsg]) { return flags, tea.None[counterMsg]() },
		counterUpdate,
		func(int) tea.Sub[counterMsg] { return tea.NoneSub[counterMsg]() },
	)

	rtA := start(1)
	rtB := start(2)

	gotA := drainN(t, rtA.Model(), 1, time.Second)
	gotB := drainN(t, rtB.Model(), 1, time.Second)
	if gotA[0] != 1 || gotB[0] != 2 {
		t.Fatalf("expected independent runtimes seeded from their own flags, got %v and %v", gotA, gotB)
	}
}
