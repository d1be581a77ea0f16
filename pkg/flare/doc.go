// Package flare provides lightweight, embeddable error telemetry for host
// applications: it captures a raised exception plus its request environment,
// shapes that into a fixed JSON payload, and hands the payload to a sink for
// delivery to the collection endpoint.
//
// # Core Components
//
// The library is organized around these concepts:
//
//   - Settings: layered configuration, fixed defaults with host overrides
//     and override winning on read
//   - Exception: the narrow view of a raised error any host type adapts to
//   - Builder: transforms (exception, environment) into the wire payload,
//     redacting sensitive form parameters along the way
//   - Sink: destination for built reports (api, stderr, async, multi, noop)
//   - Client: ties the above together and guarantees that reporting an
//     error never raises one
//
// # Quick Start
//
//	settings := flare.NewSettings()
//	settings.SetAPIKey(os.Getenv("FLARE_API_KEY"))
//
//	client, err := flare.NewClient(settings,
//	    flare.WithSink(api.NewAPISink(settings)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := doWork(); err != nil {
//	    _ = client.ReportError(ctx, err, flare.EnvFromRequest(r))
//	}
//
// For panic capture in handlers or goroutines:
//
//	defer flare.Recover(ctx, client, flare.EnvFromRequest(r))
//
// # Design Principles
//
//   - Reporting never aborts the host: all per-report failures degrade to
//     empty payload fields or are swallowed into the failsafe logger
//   - Redaction before transmission: filtered parameter values never leave
//     the process
//   - The only hard failure is the missing-API-key check at construction
package flare
