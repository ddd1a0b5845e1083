// Package ingest exposes the indexer over HTTP.
//
//   - POST /blocks delivers one block (JSON chain.Block). The response lists
//     the actions taken. Blocks are indexed one at a time and archived only
//     after they are stored. In dry-run mode nothing is persisted or archived.
//   - GET /entities/:kind/:key returns a stored entity.
//   - GET /healthz and GET /metrics are public.
//
// Attribute errors are answered with 422 so the delivery layer can tell a
// rejected block from a transient failure, which is a 500 and safe to retry.
package ingest
