package cothread_test

import (
	"testing"

	"github.com/cothread-go/cothread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1: Basic join.
func TestBasicJoin(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	id, err := rt.New(func(args any, nbytes int) int {
		return 7
	}, nil, 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, id, 0)

	rc, err := rt.Join(id)
	require.NoError(t, err)
	assert.Equal(t, 7, rc)
}

// Scenario 2: Round-robin. Three threads each append their own id to a
// shared log then exit; main joins everyone with Join(0).
func TestRoundRobinVisitsEveryThread(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	var log []int
	var ids []int
	for i := 0; i < 3; i++ {
		var id int
		id, err = rt.New(func(args any, nbytes int) int {
			log = append(log, id)
			return 0
		}, nil, 0)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	rc, err := rt.Join(0)
	require.NoError(t, err)
	require.Equal(t, 0, rc)

	assert.ElementsMatch(t, ids, log)
	assert.Len(t, log, 3)
}

// Scenario 3: Join on an id that never existed.
func TestJoinUnknownThread(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	rc, err := rt.Join(999999)
	assert.Equal(t, -1, rc)
	assert.ErrorIs(t, err, cothread.ErrUnknownThread)
}

// Scenario 3b: Join on a tid that already exited returns -1, matching
// the RUNNING-only existence check flagged as an Open Question.
func TestJoinAlreadyExited(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	id, err := rt.New(func(args any, nbytes int) int { return 1 }, nil, 0)
	require.NoError(t, err)

	rc, err := rt.Join(id)
	require.NoError(t, err)
	require.Equal(t, 1, rc)

	rc, err = rt.Join(id)
	assert.Equal(t, -1, rc)
	assert.ErrorIs(t, err, cothread.ErrUnknownThread)
}

// Scenario 4: a thread cannot join itself.
func TestSelfJoinIsFatal(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	done := make(chan any, 1)
	id, err := rt.New(func(args any, nbytes int) int {
		defer func() { done <- recover() }()
		rt.Join(rt.Self())
		return 0
	}, nil, 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, id, 0)

	// Hand the baton to the spawned thread so it actually runs.
	rt.Pause()

	got := <-done
	require.NotNil(t, got)
	fe, ok := got.(*cothread.FatalError)
	require.True(t, ok, "expected *cothread.FatalError, got %T: %v", got, got)
	assert.Contains(t, fe.Error(), "self-join")
}

// Boundary: new() on a full table returns -1 and ErrTableFull.
func TestNewOnFullTableReturnsTableFull(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick(), cothread.WithMaxThreads(1))
	require.NoError(t, err)
	defer rt.Close()

	// Slot 0 is already occupied by the bootstrap thread.
	id, err := rt.New(func(args any, nbytes int) int { return 0 }, nil, 0)
	assert.Equal(t, -1, id)
	assert.ErrorIs(t, err, cothread.ErrTableFull)
}

// Boundary: join(0) with exactly one live thread returns immediately.
func TestJoinZeroAloneReturnsImmediately(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	rc, err := rt.Join(0)
	require.NoError(t, err)
	assert.Equal(t, 0, rc)
}

// Boundary: exit from the bootstrap thread, alone, terminates the
// runtime (observable via Done/ExitCode instead of killing the process).
func TestBootstrapExitAloneTerminates(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		rt.Exit(42)
	}()

	<-rt.Done()
	<-done
	assert.Equal(t, 42, rt.ExitCode())
}

// Scenario 5: binary semaphore serializes two threads' critical sections.
func TestSemaphoreBinaryMutualExclusion(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	sem := rt.NewSemaphore(1)
	inside := 0
	var violated bool

	worker := func(args any, nbytes int) int {
		sem.Wait()
		inside++
		if inside > 1 {
			violated = true
		}
		rt.Pause()
		inside--
		sem.Signal()
		return 0
	}

	a, err := rt.New(worker, nil, 0)
	require.NoError(t, err)
	b, err := rt.New(worker, nil, 0)
	require.NoError(t, err)

	_, err = rt.Join(a)
	require.NoError(t, err)
	_, err = rt.Join(b)
	require.NoError(t, err)

	assert.False(t, violated, "semaphore failed to serialize critical sections")
}

// Scenario 6: counting semaphore, one producer signaling three times, three
// consumers each waiting once.
func TestCountingSemaphoreProducerConsumers(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	sem := rt.NewSemaphore(0)

	producer, err := rt.New(func(args any, nbytes int) int {
		for i := 0; i < 3; i++ {
			sem.Signal()
			rt.Pause()
		}
		return 0
	}, nil, 0)
	require.NoError(t, err)

	consumerDone := 0
	var consumers []int
	for i := 0; i < 3; i++ {
		c, err := rt.New(func(args any, nbytes int) int {
			sem.Wait()
			consumerDone++
			return 0
		}, nil, 0)
		require.NoError(t, err)
		consumers = append(consumers, c)
	}

	_, err = rt.Join(producer)
	require.NoError(t, err)
	for _, c := range consumers {
		rt.Join(c)
	}

	assert.Equal(t, 3, consumerDone)
}

// Scenario 7: a thread blocked forever on a semaphore nobody signals
// causes the exiting bootstrap thread to hit the "no runnable successor"
// fatal branch.
func TestDeadlockNoRunnableSuccessorIsFatal(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	sem := rt.NewSemaphore(0)
	_, err = rt.New(func(args any, nbytes int) int {
		sem.Wait() // nobody ever signals this
		return 0
	}, nil, 0)
	require.NoError(t, err)

	// Let the waiter actually run once and park on the semaphore.
	rt.Pause()

	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "Exit should have panicked: no thread can run after the bootstrap exits")
			_, ok := r.(*cothread.FatalError)
			assert.True(t, ok, "expected *cothread.FatalError, got %T: %v", r, r)
		}()
		rt.Exit(0)
	}()
}

// Invariant 6 (semaphore conservation): final_count == c + S - W.
func TestSemaphoreConservation(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	const initial, signals, waits = 2, 2, 3
	sem := rt.NewSemaphore(initial)
	for i := 0; i < signals; i++ {
		sem.Signal()
	}
	for i := 0; i < waits; i++ {
		sem.Wait()
	}

	assert.Equal(t, initial+signals-waits, sem.Count())
}

// Round-trip law: new/exit pairs that return to quiescence restore
// existingThreads and slot INVALID-ness.
func TestRoundTripLawRestoresQuiescence(t *testing.T) {
	rt, err := cothread.New(cothread.WithNoTick())
	require.NoError(t, err)
	defer rt.Close()

	for i := 0; i < 5; i++ {
		id, err := rt.New(func(args any, nbytes int) int { return i }, nil, 0)
		require.NoError(t, err)
		rc, err := rt.Join(id)
		require.NoError(t, err)
		require.Equal(t, i, rc)
	}

	// Everything spawned above has since exited; only the bootstrap
	// thread remains live, same as at construction.
	rc, err := rt.Join(0)
	require.NoError(t, err)
	assert.Equal(t, 0, rc)
}
