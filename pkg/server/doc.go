// Package server exposes a translations engine as a small JSON HTTP API
// built on chi.
//
//	srv := server.New(tr,
//	    server.WithLogger(log),
//	    server.WithCheck("redis", cache.Healthcheck(client)),
//	)
//	http.ListenAndServe(":8080", srv)
//
// Namespaces are loaded on first request. GET /namespaces/{namespace}
// negotiates the locale from Accept-Language against the registered locales
// and reports the choice in Content-Language.
//
// Every request gets an id (X-Request-ID, reused when the client sends one)
// that is attached to log records through logger.WithAttrs.
package server
