package conversation_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/convergencelab/sabius/internal/conversation"
	"github.com/google/go-cmp/cmp"
)

func TestAppend_BelowBoundKeepsEverything(t *testing.T) {
	w := conversation.NewWindow(15)

	w.Append(conversation.RoleUser, "hola")
	w.Append(conversation.RoleAssistant, "¡Hola! Soy Sabius.")

	want := []conversation.Turn{
		{Role: conversation.RoleUser, Content: "hola", Seq: 1},
		{Role: conversation.RoleAssistant, Content: "¡Hola! Soy Sabius.", Seq: 2},
	}
	if diff := cmp.Diff(want, w.Turns()); diff != "" {
		t.Errorf("Turns() mismatch (-want +got):\n%s", diff)
	}
}

func TestAppend_EvictsOldestFirst(t *testing.T) {
	w := conversation.NewWindow(15)

	for i := 1; i <= 20; i++ {
		w.Append(conversation.RoleUser, fmt.Sprintf("turno %d", i))
	}

	turns := w.Turns()
	if len(turns) != 15 {
		t.Fatalf("Len() = %d, want 15", len(turns))
	}
	// Turns 1-5 are gone; 6-20 remain in append order.
	for i, turn := range turns {
		if want := i + 6; turn.Seq != want {
			t.Errorf("turns[%d].Seq = %d, want %d", i, turn.Seq, want)
		}
	}
}

func TestAppend_ReturnsAssignedSequence(t *testing.T) {
	w := conversation.NewWindow(2)

	w.Append(conversation.RoleUser, "uno")
	w.Append(conversation.RoleAssistant, "dos")
	third := w.Append(conversation.RoleUser, "tres")

	// Sequence numbers keep counting across evictions.
	if third.Seq != 3 {
		t.Errorf("Seq = %d, want 3", third.Seq)
	}
	if w.Len() != 2 {
		t.Errorf("Len() = %d, want 2", w.Len())
	}
}

func TestNewWindow_ClampsNonPositiveBound(t *testing.T) {
	w := conversation.NewWindow(0)

	if w.Max() != 1 {
		t.Fatalf("Max() = %d, want 1", w.Max())
	}
	w.Append(conversation.RoleUser, "uno")
	w.Append(conversation.RoleUser, "dos")
	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1", w.Len())
	}
}

func TestTurns_ReturnsCopy(t *testing.T) {
	w := conversation.NewWindow(5)
	w.Append(conversation.RoleUser, "original")

	turns := w.Turns()
	turns[0].Content = "mutado"

	if got := w.Turns()[0].Content; got != "original" {
		t.Errorf("window content = %q after mutating the returned slice", got)
	}
}

func TestAppend_ConcurrentKeepsBoundAndSequences(t *testing.T) {
	w := conversation.NewWindow(15)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				w.Append(conversation.RoleUser, "concurrente")
			}
		}()
	}
	wg.Wait()

	turns := w.Turns()
	if len(turns) != 15 {
		t.Fatalf("Len() = %d, want 15", len(turns))
	}
	for i := 1; i < len(turns); i++ {
		if turns[i].Seq <= turns[i-1].Seq {
			t.Fatalf("sequence not strictly increasing at %d: %d then %d", i, turns[i-1].Seq, turns[i].Seq)
		}
	}
	if last := turns[len(turns)-1].Seq; last != 200 {
		t.Errorf("last Seq = %d, want 200", last)
	}
}

func TestRole_Valid(t *testing.T) {
	for _, tc := range []struct {
		role conversation.Role
		want bool
	}{
		{conversation.RoleUser, true},
		{conversation.RoleAssistant, true},
		{conversation.Role("system"), false},
		{conversation.Role(""), false},
	} {
		if got := tc.role.Valid(); got != tc.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", tc.role, got, tc.want)
		}
	}
}
