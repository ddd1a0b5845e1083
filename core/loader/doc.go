// Package loader registers HTTP features with the Fiber application.
//
// Each feature implements Feature. The Manager keeps them in registration
// order and LoadAll mounts the routes of every enabled one.
//
//	mgr := loader.NewManager()
//	mgr.Register(ingest.NewFeature(...))
//	loaded, err := mgr.LoadAll(app)
package loader
