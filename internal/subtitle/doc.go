// Package subtitle decodes blank-line delimited subtitle files into Records.
//
// Decoding is an explicit state machine: each line moves a Decoder value from
// one State to the next and may emit a finalized Record. Unparseable ids and
// empty cues are reported as warnings; a missing or malformed time range
// aborts the file.
package subtitle
