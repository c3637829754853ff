// Package timemap loads the events, sources and associations a timemap
// deployment serves.
//
// # Data Sources
//
// Two Fetcher implementations exist:
//
//   - Client: GETs the deployment endpoints under SERVER_ROOT
//   - BundleFile: reads a single JSON document from disk
//
// Both return a Domain. Only the events endpoint is required; an empty
// associations or sources path is skipped and leaves that part empty.
//
// # Client Usage
//
//	client, err := timemap.NewClient("localhost:4040", timemap.Endpoints{
//		Events:  "/api/example/export_events/deeprows",
//		Sources: "/api/example/export_sources/deepids",
//	})
//	if err != nil {
//		return err
//	}
//	domain, err := client.FetchDomain(ctx)
//
// A server root without a scheme is treated as http. Requests time out
// after ten seconds.
//
// # Tolerant Decoding
//
// Event fields that arrive with an unexpected JSON type decode to their
// zero value instead of failing the whole load. Unknown event keys are kept
// and reachable through Event.Attr, which is how a per-event "card"
// declaration reaches the card package. Sources may be served either as an
// object keyed by id or as a list.
package timemap
