package modifier

import "testing"

var benchLines = []string{
	"50% increased melee physical damage per level",
	"+12% to all elemental resistances",
	"4% increased damage per frenzy charge with attack skills while fortified",
	"adds 3 to 7 physical damage to attacks",
	"grants level 20 summon stone golem skill",
}

func BenchmarkParseCold(b *testing.B) {
	p := NewParser(nil)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.Parse(benchLines[i%len(benchLines)], Innate)
	}
}

func BenchmarkParseCached(b *testing.B) {
	p := NewParser(NewCache())
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			p.Parse(benchLines[i%len(benchLines)], Innate)
			i++
		}
	})
}
