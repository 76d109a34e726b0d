// Package eventsource is a client-side Server-Sent Events engine.
//
// An EventSource maintains one long-lived streaming HTTP connection,
// reconstructs discrete events from the text/event-stream wire format,
// and fans them out to registered consumers. Connection failures are
// retried indefinitely with a fixed backoff; the persisted last-event-id
// is replayed via the Last-Event-ID header so the server can resume.
//
// Synthetic "open" and "error" events are surfaced through the same
// channel as data events: "open" when a connection starts delivering
// bytes, "error" with the decimal HTTP status as data when an attempt
// fails with an obtainable status.
//
// # Usage
//
//	es, err := eventsource.New("https://api.example.com/stream", &eventsource.Options{
//	    Headers: map[string]string{"X-Tenant": "acme"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer es.Close()
//
//	sub := es.AddEventListener("ticket", func(ev eventsource.Event) {
//	    fmt.Println(ev.Data)
//	})
//	_ = sub // keep for exact removal via Unsubscribe
//
// Close blocks until the background connection loop has fully stopped;
// once it returns, no further callback can fire.
package eventsource
