// Package pkg holds the beltroute libraries.
//
// # Overview
//
// Beltroute lays out Factorio-style transport belts: every net connects a
// start tile to an end tile on a grid with obstacles, and belts of different
// nets may cross by tunnelling underneath each other. The packages split
// into three groups:
//
//  1. Core: [grid] (the occupancy map) and [route] (cost propagation,
//     retrace and the multi-ordering netlist search)
//  2. Formats: [problem] (TOML/JSON problem files and JSON results) and
//     [render] (ASCII, colored terminal, DOT and SVG output)
//  3. Services: [pipeline] (load → route → render with caching), [cache],
//     [store], [api], [errors] and [observability]
//
// # Data flow
//
//	problem.toml
//	     ↓
//	[problem] Build → grid.Map + grid.Netlist
//	     ↓
//	[route] Route (cheapest ordering wins)
//	     ↓
//	[render] text / json / dot / svg
//
// # Quick Start
//
//	m, _ := grid.New(5, 5)
//	nets := grid.Netlist{{Start: grid.Point{X: 0, Y: 0}, End: grid.Point{X: 4, Y: 4}}}
//	cost, err := route.Route(m, nets, 0)
//	fmt.Println(cost, err)   // 9 <nil>
//	fmt.Print(render.ASCII(m))
//
// [grid]: https://pkg.go.dev/github.com/McKayRansom/auto-factorio/pkg/grid
// [route]: https://pkg.go.dev/github.com/McKayRansom/auto-factorio/pkg/route
// [problem]: https://pkg.go.dev/github.com/McKayRansom/auto-factorio/pkg/problem
// [render]: https://pkg.go.dev/github.com/McKayRansom/auto-factorio/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/McKayRansom/auto-factorio/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/McKayRansom/auto-factorio/pkg/cache
// [store]: https://pkg.go.dev/github.com/McKayRansom/auto-factorio/pkg/store
// [api]: https://pkg.go.dev/github.com/McKayRansom/auto-factorio/pkg/api
// [errors]: https://pkg.go.dev/github.com/McKayRansom/auto-factorio/pkg/errors
// [observability]: https://pkg.go.dev/github.com/McKayRansom/auto-factorio/pkg/observability
package pkg
