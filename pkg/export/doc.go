// Package export serializes positioned diagram graphs into target markup.
//
// Exporters sit at the output boundary: they translate the geometry and
// routes the engine computed into a concrete format, but contain no layout
// logic of their own. Supported formats:
//
//   - draw.io mxGraph XML ([DrawioExporter]) - the only format that carries
//     the full computed geometry: swimlane cells, group-relative child
//     positions, anchor fractions and waypoint arrays.
//   - Mermaid flowchart ([MermaidExporter]) - structure and lane grouping;
//     Mermaid lays out on its own.
//   - Plain text ([TextExporter]) - box drawing for terminal preview.
//   - Graphviz DOT ([DOTExporter]), optionally rendered to SVG or PNG.
//
// Labels are escaped per format (encoding/xml for draw.io, HTML entities
// for Mermaid), so arbitrary input text is safe everywhere.
//
// Lane colors come from an immutable [Palette] passed into the exporter -
// never from package-level mutable state.
package export
