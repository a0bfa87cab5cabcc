package predictor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/trainboard/feed"
)

func TestPassingWarning_ActiveUntilPassTime(t *testing.T) {
	clock := &fakeClock{now: testNow}
	opts := zeroOffsetOptions()
	opts.WarningLead = 60 * time.Second
	p := New(opts, clock)

	a := &Arrival{TripID: "X", Direction: feed.Inbound, PassTime: testNow.Add(30 * time.Second)}
	w := p.PassingWarning(a)
	require.NotNil(t, w)
	assert.Equal(t, feed.Inbound, w.Direction)
	assert.Equal(t, feed.TripID("X"), w.TripID)
	assert.False(t, w.ShouldStop())
	assert.Equal(t, 30*time.Second, w.Remaining())

	clock.Advance(29 * time.Second)
	assert.False(t, w.ShouldStop())

	clock.Advance(1 * time.Second)
	assert.True(t, w.ShouldStop())
	assert.Zero(t, w.Remaining())
}

func TestPassingWarning_Inactive(t *testing.T) {
	clock := &fakeClock{now: testNow}
	opts := zeroOffsetOptions()
	opts.WarningLead = 60 * time.Second
	p := New(opts, clock)

	// opens at pass - 60s - 2*10s = now+100s
	a := &Arrival{TripID: "X", PassTime: testNow.Add(3 * time.Minute), Uncertainty: 10 * time.Second}
	assert.Nil(t, p.PassingWarning(a))

	clock.Advance(99 * time.Second)
	assert.Nil(t, p.PassingWarning(a))

	clock.Advance(1 * time.Second)
	w := p.PassingWarning(a)
	require.NotNil(t, w)
	// closes at pass + 3*10s
	assert.True(t, w.Deadline.Equal(testNow.Add(3*time.Minute+30*time.Second)))
	assert.Equal(t, 110*time.Second, w.Remaining())
}

func TestPassingWarning_Expired(t *testing.T) {
	clock := &fakeClock{now: testNow}
	p := New(zeroOffsetOptions(), clock)

	a := &Arrival{TripID: "X", PassTime: testNow.Add(-time.Minute), Uncertainty: 5 * time.Second}
	w := p.PassingWarning(a)
	require.NotNil(t, w)
	assert.True(t, w.ShouldStop())
}

func TestPassingWarning_NilArrival(t *testing.T) {
	p := New(DefaultOptions(), &fakeClock{now: testNow})
	assert.Nil(t, p.PassingWarning(nil))
}

func TestPassingWarning_DeadlineUsesMonotonicClock(t *testing.T) {
	p := New(zeroOffsetOptions(), SystemClock{})
	a := &Arrival{TripID: "X", PassTime: time.Now().Add(30 * time.Second)}
	w := p.PassingWarning(a)
	require.NotNil(t, w)
	// Round(0) strips the monotonic reading; a deadline carrying one prints
	// differently from its stripped copy.
	assert.NotEqual(t, w.Deadline.String(), w.Deadline.Round(0).String())
	assert.False(t, w.ShouldStop())
}
