package data

import (
	"testing"
)

// --- Loading benchmarks ---

// BenchmarkLoad benchmarks loading all four tables concurrently.
func BenchmarkLoad(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		if _, err := Load("../../data"); err != nil {
			b.Fatalf("Load: %v", err)
		}
	}
}

// BenchmarkLoadTree benchmarks tree loading alone, including in-edge
// derivation and validation.
func BenchmarkLoadTree(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		if _, err := LoadTree("../../data/tree.yaml"); err != nil {
			b.Fatalf("LoadTree: %v", err)
		}
	}
}

// --- Lookup benchmarks (after loading) ---

func BenchmarkNode_Hit(b *testing.B) {
	tree, err := LoadTree("../../data/tree.yaml")
	if err != nil {
		b.Fatalf("LoadTree: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = tree.Node(12)
	}
}

func BenchmarkMonster_Capped(b *testing.B) {
	tables, err := Load("../../data")
	if err != nil {
		b.Fatalf("Load: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_, _ = tables.Monster(100)
	}
}
