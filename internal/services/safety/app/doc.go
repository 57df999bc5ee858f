// Package server composes and runs the safety process boundary.
//
// It hosts the gRPC endpoint over the shared SQLite store so admission and
// report-triage decisions are made from one source of truth.
package server
