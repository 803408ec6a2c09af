// Package engine defines the boundary between session orchestration and the
// execution backend that actually reasons over tools. The orchestrator
// builds engines through a Factory and consumes their event streams; it
// never depends on a concrete backend.
package engine
