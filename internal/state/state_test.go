package state_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"reelguard/internal/state"
)

func TestRecommendedSet_AddContainsSnapshot(t *testing.T) {
	set := state.NewRecommendedSet()

	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Contains("Inception"))

	set.Add("Inception")
	set.Add("Titanic")
	set.Add("Inception")

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("Inception"))
	assert.Equal(t, []string{"Inception", "Titanic"}, set.Snapshot())
}

func TestRecommendedSet_ExactMatchSemantics(t *testing.T) {
	set := state.NewRecommendedSet()
	set.Add("Inception")

	// Membership is exact string equality; phrasing drift is a distinct entry.
	assert.False(t, set.Contains("inception"))
	assert.False(t, set.Contains("Inception."))

	set.Add("Inception.")
	assert.Equal(t, 2, set.Len())
}

func TestRecommendedSet_Clear(t *testing.T) {
	set := state.NewRecommendedSet()
	set.Add("Inception")
	set.Add("Titanic")

	set.Clear()

	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Snapshot())

	set.Add("The Matrix")
	assert.Equal(t, []string{"The Matrix"}, set.Snapshot())
}

func TestRecommendedSet_ConcurrentAdds(t *testing.T) {
	set := state.NewRecommendedSet()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set.Add("Inception")
			set.Add("Titanic")
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, set.Len())
}

func TestMovieRegistry_ListIncludesBaseline(t *testing.T) {
	registry := state.NewMovieRegistry([]string{"Inception", "Titanic"})

	assert.Equal(t, []string{"Inception", "Titanic"}, registry.List())
	assert.Empty(t, registry.Session())
}

func TestMovieRegistry_AddUnionsAndDeduplicates(t *testing.T) {
	registry := state.NewMovieRegistry([]string{"Inception"})

	registry.Add("The Iron Giant", "Inception", "", "The Iron Giant", "Paddington")

	assert.Equal(t, []string{"The Iron Giant", "Inception", "Paddington"}, registry.Session())
	// Baseline first; session titles already in the baseline are not repeated.
	assert.Equal(t, []string{"Inception", "The Iron Giant", "Paddington"}, registry.List())
}

func TestMovieRegistry_AddIsAppendOnly(t *testing.T) {
	registry := state.NewMovieRegistry(nil)

	registry.Add("A")
	registry.Add("B")
	registry.Add("A")

	assert.Equal(t, []string{"A", "B"}, registry.Session())
}
