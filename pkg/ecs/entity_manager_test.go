package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTransformComponent struct {
	X, Y, Z float64
}

type testBurstComponent struct {
	Life float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount: got %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testTransformComponent{X: 1, Y: 1.45, Z: 0})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testTransformComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	if got := comp.(*testTransformComponent); got.Y != 1.45 {
		t.Errorf("Y: got %v, want 1.45", got.Y)
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testBurstComponent{Life: 1})

	burst, ok := GetComponent[*testBurstComponent](em, id)
	if !ok || burst.Life != 1 {
		t.Fatalf("GetComponent: got (%v, %v), want Life=1", burst, ok)
	}
	if !HasComponent[*testBurstComponent](em, id) {
		t.Error("HasComponent should be true")
	}
	if HasComponent[*testTransformComponent](em, id) {
		t.Error("HasComponent should be false for missing type")
	}

	RemoveComponent[*testBurstComponent](em, id)
	if _, ok := GetComponent[*testBurstComponent](em, id); ok {
		t.Error("component should be removed")
	}
}

// TestDestroyEntityMarkAndSweep 标记后实体仍可访问，清理后消失
func TestDestroyEntityMarkAndSweep(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testBurstComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记不应重复计数

	if !em.IsMarkedForDestroy(id) {
		t.Error("entity should be marked")
	}
	if !HasComponent[*testBurstComponent](em, id) {
		t.Error("Entity should still exist before cleanup")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("RemoveMarkedEntities: got %d, want 1", removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
}

// TestDestroyDuringIteration 遍历查询结果时销毁实体是安全的
func TestDestroyDuringIteration(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testBurstComponent{Life: float64(i) - 2})
	}

	for _, id := range GetEntitiesWith1[*testBurstComponent](em) {
		burst, _ := GetComponent[*testBurstComponent](em, id)
		if burst.Life <= 0 {
			em.DestroyEntity(id)
		}
	}
	em.RemoveMarkedEntities()

	if got := len(GetEntitiesWith1[*testBurstComponent](em)); got != 2 {
		t.Errorf("remaining bursts: got %d, want 2", got)
	}
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	AddComponent(em, id1, &testTransformComponent{})
	AddComponent(em, id1, &testBurstComponent{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testTransformComponent{})

	id3 := em.CreateEntity()
	AddComponent(em, id3, &testBurstComponent{})

	both := GetEntitiesWith2[*testTransformComponent, *testBurstComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("query both: got %v, want [%d]", both, id1)
	}

	transforms := GetEntitiesWith1[*testTransformComponent](em)
	if len(transforms) != 2 || transforms[0] != id1 || transforms[1] != id2 {
		t.Errorf("query transforms: got %v, want [%d %d]", transforms, id1, id2)
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 500; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testTransformComponent{})
		if i%2 == 0 {
			AddComponent(em, id, &testBurstComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testTransformComponent, *testBurstComponent](em)
	}
}
