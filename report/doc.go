// Package report turns a caught error into a Report: a flat, serializable snapshot
// that a service boundary can return to its caller.
//
// New walks the error and its causes, root first, producing one ChainEntry per node.
// Nodes that carry their own identifier (contract.Identified) contribute it as the
// correlation id; for any other node the first UUID v4 shaped token found in its
// message is used. The resulting Builder is then enriched with transport fields and
// materialised with Build.
//
//	r := report.New("billing", err).
//		WithHTTPStatus(http.StatusConflict, "Conflict").
//		WithPath(req.URL.Path).
//		Build()
//
// Walks stop after DefaultMaxDepth nodes unless WithMaxDepth says otherwise, so a
// cyclic cause chain cannot hang the caller.
package report
