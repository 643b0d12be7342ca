// Package server runs a single HTTP handler with graceful shutdown, sized for
// side endpoints like Prometheus scraping next to a DDS application.
//
//	srv := server.New(":9090", server.WithLogger(log))
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, metrics.Handler(participant)))
//	g.Go(publishLoop(ctx))
//	if err := g.Wait(); err != nil {
//		return err
//	}
//
// Run treats context cancellation as a normal stop. Bind ":0" and call Listen
// before Run to obtain a free port in tests.
package server
