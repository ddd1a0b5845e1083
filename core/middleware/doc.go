// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header. Health and
//     metrics endpoints are skipped with Config.Next.
//   - rayid: assigns each request a ray id, stores it in the Fiber locals for
//     logger.WithRayID and echoes it in the X-Ray-ID response header.
package middleware
