// Package problem reads routing problems from TOML files and writes routing
// results as JSON.
//
// # Problem Format
//
// A problem describes the map and the netlist:
//
//	name = "starting tunnels"
//	width = 5
//	height = 5
//	attempts = 1                  # optional, 0 routes once per net
//	obstacles = [[1, 4], [2, 4]]  # optional
//
//	[[nets]]
//	name = "iron"                 # optional
//	start = [1, 0]
//	end = [1, 4]
//
// Coordinates are [x, y] with the origin in the top-left corner. [Parse]
// validates dimensions and bounds; [Problem.Build] turns a problem into a
// [grid.Map] and a [grid.Netlist].
//
// # Result Format
//
// A [Result] records the outcome of one routing job: an ID, the total cost
// (-1 on failure), the problem it was computed from and every committed belt.
// [ReadResult] and [Result.Map] rebuild the routed map so it can be rendered
// again without routing.
package problem
