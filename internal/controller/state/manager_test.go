package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_StateAndData(t *testing.T) {
	sm := NewManager()
	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateLoginEmail)
	sm.SetData(1, "email", "anna@example.com")
	assert.Equal(t, StateLoginEmail, sm.GetState(1))

	sm.SetState(1, StateNone)
	v, ok := sm.GetData(1, "email")
	assert.True(t, ok)
	assert.Equal(t, "anna@example.com", v)

	sm.DeleteData(1, "email")
	_, ok = sm.GetData(1, "email")
	assert.False(t, ok)
}

func TestManager_ClearStateKeepsCounters(t *testing.T) {
	sm := NewManager()
	sm.SetState(1, StateBookingName)
	sm.SetData(1, "k", 1)
	assert.Equal(t, int64(1), sm.Bump(1, "schedule"))

	sm.ClearState(1)

	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Empty(t, sm.GetAllData(1))
	assert.Equal(t, int64(1), sm.Counter(1, "schedule"))
	assert.Equal(t, int64(2), sm.Bump(1, "schedule"))
}

func TestManager_ClearStateWithoutCounters(t *testing.T) {
	sm := NewManager()
	sm.SetData(1, "k", 1)
	sm.ClearState(1)
	assert.Nil(t, sm.GetAllData(1))
}

func TestManager_GetAllDataReturnsCopy(t *testing.T) {
	sm := NewManager()
	sm.SetData(1, "k", "v")

	data := sm.GetAllData(1)
	data["k"] = "changed"

	v, _ := sm.GetData(1, "k")
	assert.Equal(t, "v", v)
}

func TestManager_BumpIsAtomic(t *testing.T) {
	sm := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sm.Bump(7, "v")
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), sm.Counter(7, "v"))
}
