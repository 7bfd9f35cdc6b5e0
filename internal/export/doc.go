// Package export implements the measurement feed transform: it turns raw
// per-image capture records into the fixed 25-column CSV consumed by the
// downstream ERP system.
//
// The pipeline is pure and synchronous: records are grouped by part number,
// one representative capture per part supplies the measurements, values are
// unit-converted and formatted, each row is structurally validated, and the
// result is written line by line to a caller-supplied sink. The package holds
// no state between invocations; concurrent exports are safe as long as each
// gets its own sink.
package export
