// Package benchtab flattens benchmark suite documents into tables and
// renders them to a console.
//
// The central entry point is [Generator.Generate], which takes a
// [SuiteDocument], a [Definition], a [RenderConfig] and [Parameters]:
//
//	console := benchtab.NewConsole(os.Stdout)
//	gen, err := benchtab.NewGenerator(console)
//	if err != nil { ... }
//	err = gen.Generate(doc, def, benchtab.RenderConfig{Title: "Hashing"}, nil)
//
// # Definitions
//
// A [Definition] selects row contexts with a jq expression and derives one
// cell per [Column] with either a jq expression or a JSONPath:
//
//	name: aggregate
//	rows: '.subjects[] | .name as $s | .variants[] | {subject: $s, revs: .revs}'
//	columns:
//	  - name: subject
//	    expr: .subject
//	  - name: revs
//	    path: $.revs
//
// Definitions load from YAML, JSON or HCL with [LoadDefinition]. Parameters
// are referenced as {{ .name }} anywhere, as $name inside jq, and as
// param.name inside HCL expressions.
//
// # Rows and Headers
//
// A column whose expression yields nothing is left out of that row, so rows
// may differ in shape. [ExtractRows] drops excluded columns and takes the
// header from the last row. [Align] lays each row out under that header,
// using empty cells for missing names.
//
// # Backends
//
// Two renderers draw the table:
//
//   - [BackendModern]: tablewriter, bound to the console when created
//   - [BackendLegacy]: [Table], which receives the destination at draw time
//
// [BackendAuto] is resolved once in [NewGenerator]: terminals get the modern
// renderer, everything else the legacy one.
//
// # Styles
//
// A [Console] owns the styles registered on one output stream. Text written
// through it may use <name>text</name> markup; unregistered names are left
// as they are. [NewGenerator] registers "title" and "description".
//
// # Diagnostics
//
// With [RenderConfig.Debug] set, the document and the tabular result are sent
// as [DiagnosticEvent] values to a [DiagnosticSink], separate from the
// console: [ConsoleSink] writes framed blocks, [LogSink] writes slog records.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidDefinition]: malformed definition or expression
//   - [ErrMissingParameter]: placeholder without a parameter
//   - [ErrInvalidStyle]: bad style name or color
//   - [ErrUnsupportedBackend]: unknown backend name
//   - [ErrUnsupportedFormat]: unknown file, border, color or dump format
//
// Tabulation failures are reported as [*TabulationError], style failures as
// [*StyleError].
package benchtab
