// Package convert contains the format-conversion orchestration layer.
//
// A Converter drives one conversion batch: given an input media blob, a
// requested set of output formats and the account tier, it dispatches each
// format to the image or video strategy, isolates per-format failures, and
// packages successful outputs as Results with embed snippets. A single
// failing format never aborts the batch; it is logged, counted, and omitted
// from the returned slice.
package convert
