package cave

// SampleStart is the entrance of the Sample cave.
const SampleStart = "AA"

// Sample returns a small hand-written cave:
//
//	AA(0) ── BB(13) ── CC(9) ── DD(7)
//
// Hop counts between its valves are AA-BB=1, BB-CC=1, CC-DD=1, AA-CC=2,
// AA-DD=3 and BB-DD=2.
func Sample() *Graph {
	g := NewGraph(WithUndirected())
	// the IDs are constant and unique; errors are impossible here
	_ = g.AddValve("AA", 0, "BB")
	_ = g.AddValve("BB", 13, "CC")
	_ = g.AddValve("CC", 9, "DD")
	_ = g.AddValve("DD", 7)

	return g
}
