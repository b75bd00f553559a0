// Package valveflow plans which valves to open in a cave of tunnels, and in
// what order, so that the most pressure is released before time runs out.
//
// Opening a valve takes one minute and walking a tunnel takes one minute.
// An open valve releases its flow rate every remaining minute, so the
// payoff of a move is rate × (budget − minute the valve opens).
//
// Layout:
//
//	cave/      thread-safe tunnel graph: valves, flow rates, tunnels
//	bfs/       unit-cost flood fill over a cave.Graph
//	distance/  dense shortest-distance matrix over the points of interest
//	search/    exhaustive depth-first search over opening orders
//	config/    YAML run configuration with VALVES_* env overrides
//	cmd/valves command-line front end
//
// Typical flow:
//
//	g := cave.Sample()
//	s, m, err := search.FromCave(g, cave.SampleStart, search.WithTimeBudget(30))
//	if err != nil { ... }
//	res, err := s.Run(m.Start())
//	fmt.Println(res.Score) // 766
package valveflow
