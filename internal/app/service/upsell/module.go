package upsell

import "go.uber.org/fx"

// Module exposes the upsell lifecycle service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
