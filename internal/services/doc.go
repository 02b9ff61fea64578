// Package services assembles employability metrics into the response
// bundles the HTTP layer serves. Each service reads one immutable snapshot
// from the dataset store per request, narrows it with the caller's filter
// selection and fans out to the metric engine; nothing here mutates state
// except DatasetService.Reload, which delegates to the store and announces
// the new snapshot over the websocket hub.
package services
