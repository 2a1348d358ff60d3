// Package boundary contains render failures raised by a component subtree.
//
// A Trap wraps a templ.Component. While healthy it renders its children
// unchanged. When a descendant returns an error or panics, the trap trips:
// it records the failure, sends one user-facing notification, hands the
// failure to the configured Reporter and renders a fallback card instead of
// the children. Five seconds after the latest trip the trap resets itself and
// the next render mounts the children again.
//
// Subtrees wrapped with Named contribute their name to the component stack
// shown in the development diagnostics:
//
//	page := boundary.Named("PricingPage", views.Pricing())
//	trap := boundary.New(
//	    boundary.WithNotifier(broker),
//	    boundary.WithReporter(boundary.NewSentryReporter(nil)),
//	    boundary.WithDevelopment(cfg.IsDevelopment()),
//	)
//	err := trap.Wrap(page).Render(ctx, w)
//
// Only descendants are trapped. A failure while rendering the fallback itself
// is returned to the caller.
package boundary
