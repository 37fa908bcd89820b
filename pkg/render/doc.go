// Package render mounts composed route output onto a display surface.
//
// A Renderer implements router.Renderer. It collects what the router mounts
// for one navigation into a Frame (the search bar chrome plus the route's
// controls) and presents it to a Surface:
//
//	surface := render.NewMemorySurface(80, 24)
//	r := router.New(table, render.NewRenderer(surface))
//	r.Navigate("/")
//	fmt.Print(surface.Frame().Plain())
//
// MemorySurface keeps the latest frame and fans it out to subscribers. The
// terminal shell and the inspector both read frames from it.
//
// # UI Thread
//
// The router is single-threaded. Surfaces that are driven from other
// goroutines, such as HTTP handlers, run every router call through a Loop:
//
//	loop := render.NewLoop()
//	loop.Start(ctx)
//	defer loop.Stop()
//	err := loop.Do(ctx, func() { r.Navigate("/items/a") })
//
// # HTML
//
// WriteHTML renders a frame as a standalone HTML document for browsers
// pointed at the inspector.
package render
