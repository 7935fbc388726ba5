// Package platform connects waysurface sessions to a real compositor.
//
// A Connection owns the wl_display, a private event queue and the
// registry. It binds globals for a Session and turns native callbacks into
// waysurface events:
//
//	conn, err := platform.Connect("")
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//	stop := context.AfterFunc(ctx, conn.Wake)
//	defer stop()
//
// Every object created through the connection is destroyed by Close in
// reverse creation order.
package platform
