// Package async provides small goroutine helpers.
//
// Coalescer moves work off a caller's goroutine. The caller only signals; a
// dedicated goroutine runs the configured function, and signals that arrive
// while it runs collapse into one follow-up run:
//
//	c := async.NewCoalescer(func() {
//		for {
//			s, _, ok := reader.Take()
//			if !ok {
//				return
//			}
//			handle(s)
//		}
//	})
//	if err := c.Start(); err != nil {
//		return err
//	}
//	defer c.Stop()
//
//	c.Signal() // never blocks
//
// Run adapts a Coalescer to errgroup:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(c.Run(ctx))
//
// Exec starts a function in its own goroutine and returns an ExecFuture:
//
//	f := async.Exec(ctx, 10, publishN)
//	if err := f.AwaitWithTimeout(time.Second); errors.Is(err, async.ErrTimeout) {
//		log.Println("still publishing")
//	}
//
// A context that is already done when Exec is called short-circuits without
// calling the function.
package async
