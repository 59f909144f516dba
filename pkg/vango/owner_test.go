package vango

import (
	"sync"
	"testing"
)

func TestOwnerBasic(t *testing.T) {
	owner := NewOwner(nil)

	if owner.ID() == 0 {
		t.Error("owner should have non-zero ID")
	}

	if owner.Parent() != nil {
		t.Error("root owner should have nil parent")
	}

	if owner.IsDisposed() {
		t.Error("new owner should not be disposed")
	}
}

func TestOwnerDisposeHierarchy(t *testing.T) {
	root := NewOwner(nil)
	child1 := NewOwner(root)
	child2 := NewOwner(root)
	grandchild := NewOwner(child1)

	var order []string
	grandchild.OnCleanup(func() { order = append(order, "grandchild") })
	child1.OnCleanup(func() { order = append(order, "child1") })
	child2.OnCleanup(func() { order = append(order, "child2") })
	root.OnCleanup(func() { order = append(order, "root") })

	root.Dispose()

	for name, o := range map[string]*Owner{"root": root, "child1": child1, "child2": child2, "grandchild": grandchild} {
		if !o.IsDisposed() {
			t.Errorf("%s should be disposed", name)
		}
	}

	want := []string{"child2", "grandchild", "child1", "root"}
	if len(order) != len(want) {
		t.Fatalf("disposal order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("disposal order = %v, want %v", order, want)
		}
	}
}

func TestOwnerOnCleanupMultiple(t *testing.T) {
	owner := NewOwner(nil)

	order := []int{}
	owner.OnCleanup(func() { order = append(order, 1) })
	owner.OnCleanup(func() { order = append(order, 2) })
	owner.OnCleanup(func() { order = append(order, 3) })

	owner.Dispose()

	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("expected reverse order [3,2,1], got %v", order)
	}
}

func TestOwnerOnCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	cleanupRan := false
	owner.OnCleanup(func() {
		cleanupRan = true
	})

	if !cleanupRan {
		t.Error("cleanup should run immediately on disposed owner")
	}
}

func TestOwnerDoubleDispose(t *testing.T) {
	owner := NewOwner(nil)

	cleanupCount := 0
	owner.OnCleanup(func() {
		cleanupCount++
	})

	owner.Dispose()
	owner.Dispose()

	if cleanupCount != 1 {
		t.Errorf("cleanup should only run once, got %d", cleanupCount)
	}
}

func TestOwnerDisposeRemovesFromParent(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)

	childCleanups := 0
	child.OnCleanup(func() { childCleanups++ })

	child.Dispose()
	root.Dispose()

	if childCleanups != 1 {
		t.Errorf("child cleanup ran %d times, want 1", childCleanups)
	}
}

func TestOwnerRunPendingEffects(t *testing.T) {
	owner := NewOwner(nil)

	effectRan := false
	effect := &Effect{
		id:    nextID(),
		owner: owner,
		fn: func() Cleanup {
			effectRan = true
			return nil
		},
	}
	effect.pending.Store(true)

	owner.scheduleEffect(effect)
	if !owner.HasPendingEffects() {
		t.Fatal("owner should report pending effects")
	}
	owner.RunPendingEffects()

	if !effectRan {
		t.Error("effect should have run")
	}
	if effect.pending.Load() {
		t.Error("effect should not be pending after run")
	}
	if owner.HasPendingEffects() {
		t.Error("owner should have no pending effects after run")
	}
}

func TestOwnerHookSlots(t *testing.T) {
	owner := NewOwner(nil)

	owner.StartRender()
	if slot := owner.UseHookSlot(); slot != nil {
		t.Fatalf("first render slot = %v, want nil", slot)
	}
	owner.SetHookSlot("a")
	owner.EndRender()

	owner.StartRender()
	if slot := owner.UseHookSlot(); slot != "a" {
		t.Fatalf("second render slot = %v, want a", slot)
	}
	owner.EndRender()
}

func TestOwnerHookOrderValidation(t *testing.T) {
	DebugMode = true
	defer func() { DebugMode = false }()

	owner := NewOwner(nil)

	owner.StartRender()
	owner.TrackHook(HookRef)
	owner.TrackHook(HookEffect)
	owner.EndRender()

	defer func() {
		if recover() == nil {
			t.Error("changing hook order should panic in debug mode")
		}
	}()

	owner.StartRender()
	owner.TrackHook(HookEffect)
}

func TestOwnerConcurrent(t *testing.T) {
	root := NewOwner(nil)
	var wg sync.WaitGroup
	const numGoroutines = 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			child := NewOwner(root)
			child.OnCleanup(func() {})
		}()
	}
	wg.Wait()

	root.Dispose()
}
