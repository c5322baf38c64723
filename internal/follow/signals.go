package follow

import "github.com/zoobzio/capitan"

// Engine lifecycle signals.
var (
	EngineInitiated = capitan.NewSignal(
		"follow.engine.initiated",
		"Engine discovered its elements and attached listeners",
	)

	EngineDestroyed = capitan.NewSignal(
		"follow.engine.destroyed",
		"Engine dropped its elements and detached listeners",
	)

	EngineRefreshed = capitan.NewSignal(
		"follow.engine.refreshed",
		"Engine re-discovered its elements",
	)
)

// Field keys for engine signals.
var (
	KeyElements  = capitan.NewIntKey("elements")
	KeyAttribute = capitan.NewStringKey("attribute")
)
