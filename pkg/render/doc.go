// Package render draws routed maps.
//
// # Formats
//
//   - [ASCII]: the plain text map used in logs and results. Each tile takes
//     two columns: the net id and a direction glyph (^ > v < for surface
//     belts, - ] _ [ for tunnel entrances and exits), "N!" for an endpoint
//     of net N, "+ " for an obstacle.
//   - [Costs]: the per-direction cost table left by the last propagation,
//     for debugging the router.
//   - [Styled]: the map colored per net with lipgloss, for terminals.
//   - [Summary]: a lipgloss table of per-net belt and tunnel counts.
//   - [ToDOT] and [RenderSVG]: a Graphviz rendering of the map as a grid of
//     colored cells.
//
// All renderers read the map through [grid.Map.All] and never modify it.
package render
