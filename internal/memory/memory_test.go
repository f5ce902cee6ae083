package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sandevgo/provostbot/internal/core"
	"github.com/stretchr/testify/assert"
)

func turn(role, content string) core.Turn {
	return core.Turn{Role: role, Content: content}
}

func TestWindowCapacity(t *testing.T) {
	w := NewWindow(4)

	for i := 0; i < 10; i++ {
		w.Append(turn(core.RoleUser, fmt.Sprintf("q%d", i)), turn(core.RoleAssistant, fmt.Sprintf("a%d", i)))
		assert.LessOrEqual(t, w.Len(), 4)
	}

	// Only the two most recent exchanges survive, in order.
	assert.Equal(t, []core.Turn{
		turn(core.RoleUser, "q8"),
		turn(core.RoleAssistant, "a8"),
		turn(core.RoleUser, "q9"),
		turn(core.RoleAssistant, "a9"),
	}, w.Turns())
}

func TestWindowEvictsOldestExactlyOnce(t *testing.T) {
	w := NewWindow(3)
	w.Append(turn(core.RoleUser, "one"))
	w.Append(turn(core.RoleAssistant, "two"))
	w.Append(turn(core.RoleUser, "three"))
	w.Append(turn(core.RoleAssistant, "four"))

	assert.Equal(t, []core.Turn{
		turn(core.RoleAssistant, "two"),
		turn(core.RoleUser, "three"),
		turn(core.RoleAssistant, "four"),
	}, w.Turns())
}

func TestTurnsIsASnapshot(t *testing.T) {
	w := NewWindow(4)
	w.Append(turn(core.RoleUser, "hello"))

	snap := w.Turns()
	snap[0].Content = "mutated"

	assert.Equal(t, "hello", w.Turns()[0].Content)
}

func TestWindowMinimumCapacity(t *testing.T) {
	w := NewWindow(0)
	w.Append(turn(core.RoleUser, "q"), turn(core.RoleAssistant, "a"))
	assert.Equal(t, 2, w.Len())
}

func TestWindowConcurrentAppend(t *testing.T) {
	w := NewWindow(6)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w.Append(turn(core.RoleUser, fmt.Sprintf("q%d", i)), turn(core.RoleAssistant, fmt.Sprintf("a%d", i)))
		}(i)
	}
	wg.Wait()

	turns := w.Turns()
	assert.Len(t, turns, 6)
	// Appends are atomic per exchange: a User turn is always followed by its
	// Assistant turn.
	for i := 0; i < len(turns); i += 2 {
		assert.Equal(t, core.RoleUser, turns[i].Role)
		assert.Equal(t, core.RoleAssistant, turns[i+1].Role)
		assert.Equal(t, turns[i].Content[1:], turns[i+1].Content[1:])
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, "", Render(nil))

	got := Render([]core.Turn{
		turn(core.RoleUser, "who is the provost?"),
		turn(core.RoleAssistant, "James Glaser."),
	})
	assert.Equal(t, "User: who is the provost?\nAssistant: James Glaser.", got)
}
